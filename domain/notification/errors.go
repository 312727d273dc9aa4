package notification

import "errors"

var (
	// ErrNotificationFailed the delivery driver could not hand the message over
	ErrNotificationFailed = errors.New("notification failed")

	// ErrInvalidReference a delivery receipt carried a reference that is not a resource id
	ErrInvalidReference = errors.New("invalid notification reference")
)
