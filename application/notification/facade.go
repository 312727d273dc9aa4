/*
Package notification implements the notification module behind the
domain/notification contract.

Outbound: Facade turns a NotifyRequest into a driver Message.
Inbound: Service.Delivered turns a delivery receipt into a ResourceDeliveredEvent.
*/
package notification

import (
	"context"
	"fmt"

	"invoicing/domain/notification"
	"invoicing/pkg/logger"

	"go.uber.org/zap"
)

// Facade notification.Facade implementation dispatching to a single driver
type Facade struct {
	driver notification.Driver
}

func NewFacade(driver notification.Driver) *Facade {
	return &Facade{driver: driver}
}

// Notify hands the request to the driver. Any driver failure is wrapped with
// notification.ErrNotificationFailed.
func (f *Facade) Notify(ctx context.Context, req notification.NotifyRequest) error {
	msg := notification.Message{
		To:        req.ToEmail,
		Subject:   req.Subject,
		Body:      req.Message,
		Reference: req.ResourceID,
	}

	log := logger.FromContext(ctx).With(
		zap.String("driver", f.driver.Name()),
		zap.String("reference", req.ResourceID),
	)

	if err := f.driver.Send(ctx, msg); err != nil {
		log.Warn("notification not sent", zap.Error(err))
		return fmt.Errorf("%w: %s driver: %v", notification.ErrNotificationFailed, f.driver.Name(), err)
	}

	log.Info("notification sent")
	return nil
}

var _ notification.Facade = (*Facade)(nil)
