package invoice

import (
	"context"
	"errors"
	"fmt"

	"invoicing/domain/invoice"
	"invoicing/domain/notification"
	"invoicing/domain/shared"
	"invoicing/pkg/logger"

	"go.uber.org/zap"
)

// DeliveredListener marks invoices as sent to the client once the notification
// module reports that the message was delivered. It is the only place where
// that transition is triggered.
type DeliveredListener struct {
	invoiceRepo invoice.Repository
}

func NewDeliveredListener(invoiceRepo invoice.Repository) *DeliveredListener {
	return &DeliveredListener{invoiceRepo: invoiceRepo}
}

func (l *DeliveredListener) Name() string { return "invoice.delivered_listener" }

// Handle ignores ids that do not belong to an invoice, the delivery channel is
// shared with other modules.
func (l *DeliveredListener) Handle(ctx context.Context, event shared.DomainEvent) error {
	delivered, ok := event.(*notification.ResourceDeliveredEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	ctx = logger.ContextWithInvoiceID(ctx, delivered.ResourceID())

	inv, err := l.invoiceRepo.FindByID(ctx, delivered.ResourceID())
	if errors.Is(err, invoice.ErrInvoiceNotFound) {
		logger.FromContext(ctx).Debug("delivered resource is not an invoice")
		return nil
	}
	if err != nil {
		return err
	}

	previous := inv.Status()
	inv.MarkAsSentToClient()

	if err := l.invoiceRepo.Save(ctx, inv); err != nil {
		return fmt.Errorf("save invoice: %w", err)
	}

	logger.FromContext(ctx).Info("invoice delivery confirmed",
		zap.Stringer("from", previous),
		zap.Stringer("to", inv.Status()))
	return nil
}

// Subscribe registers the listener on publisher.
func (l *DeliveredListener) Subscribe(publisher shared.DomainEventPublisher) error {
	return publisher.Subscribe(notification.ResourceDeliveredEventName, l)
}

var _ shared.EventHandler = (*DeliveredListener)(nil)
