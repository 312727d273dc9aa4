/*
Package notification holds the delivery drivers behind the notification facade
and the Kafka consumer for delivery receipts.

	log    writes the message to the application log and reports success
	smtp   sends an e-mail through an SMTP relay (gomail)
	ses    sends an e-mail through AWS SES v2
	kafka  publishes the message for an external mailer

Every driver carries the resource id as the message reference so that the
receipt coming back can be routed to Service.Delivered.
*/
package notification

import (
	"context"

	"invoicing/domain/notification"
	"invoicing/pkg/logger"

	"go.uber.org/zap"
)

// LogDriver does not deliver anything. Used in development and tests.
type LogDriver struct{}

func NewLogDriver() *LogDriver { return &LogDriver{} }

func (d *LogDriver) Name() string { return "log" }

func (d *LogDriver) Send(ctx context.Context, msg notification.Message) error {
	logger.FromContext(ctx).Info("notification delivered to log",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("reference", msg.Reference),
		zap.Int("body_length", len(msg.Body)))
	return nil
}

var _ notification.Driver = (*LogDriver)(nil)
