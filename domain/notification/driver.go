package notification

import "context"

// Message is what a driver delivers. Reference travels with the message so the
// channel can echo it back in a delivery receipt.
type Message struct {
	To        string
	Subject   string
	Body      string
	Reference string
}

// Driver is a delivery channel: e-mail server, cloud mail API, message broker.
type Driver interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}
