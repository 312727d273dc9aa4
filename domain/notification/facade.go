/*
Package notification is the public contract of the notification module.

Other modules depend only on this package:
  - Facade is the outbound side, used to ask for a message to be delivered.
  - ResourceDeliveredEvent is the inbound side, published once the delivery
    channel confirms that a message reached its recipient.

The module knows nothing about invoices; the resource id is opaque to it.
*/
package notification

import "context"

// NotifyRequest describes a single outbound notification.
type NotifyRequest struct {
	ResourceID string
	ToEmail    string
	Subject    string
	Message    string
}

// Facade sends notifications on behalf of other modules.
type Facade interface {
	Notify(ctx context.Context, req NotifyRequest) error
}
