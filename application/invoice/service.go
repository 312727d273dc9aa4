/*
Package invoice Application Layer - invoice use cases

The service orchestrates; the aggregate decides:
 1. Load or build the aggregate.
 2. Call the aggregate method that enforces the rule.
 3. Save the aggregate once.
 4. Trigger side effects (notification) only after the save succeeded.

Domain errors are returned unchanged so the API layer can map them.
*/
package invoice

import (
	"context"
	"fmt"

	"invoicing/domain/invoice"
	"invoicing/domain/notification"
	"invoicing/pkg/logger"

	"go.uber.org/zap"
)

const invoiceMessage = "Please find your invoice attached."

// ApplicationService invoice application service
type ApplicationService struct {
	invoiceRepo invoice.Repository
	notifier    notification.Facade
}

// NewApplicationService Create invoice application service
func NewApplicationService(invoiceRepo invoice.Repository, notifier notification.Facade) *ApplicationService {
	return &ApplicationService{
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
	}
}

// CreateInvoice builds a draft with the requested lines, in order, and saves it once.
func (s *ApplicationService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := invoice.NewInvoice(req.CustomerName, req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	ctx = logger.ContextWithInvoiceID(ctx, inv.ID())

	for _, line := range req.ProductLines {
		if err := inv.AddProductLine(line.Name, line.Quantity, line.Price); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	logger.FromContext(ctx).Info("invoice created",
		zap.Int("product_lines", len(req.ProductLines)))

	return toInvoiceResponse(inv), nil
}

// GetInvoice returns the invoice or an error matching invoice.ErrInvoiceNotFound.
func (s *ApplicationService) GetInvoice(ctx context.Context, id string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// SendInvoice moves a draft to Sending, saves it and asks the notification module
// to deliver it. A notification failure is returned wrapped with
// notification.ErrNotificationFailed; the Sending status stays persisted.
func (s *ApplicationService) SendInvoice(ctx context.Context, id string) (*InvoiceResponse, error) {
	ctx = logger.ContextWithInvoiceID(ctx, id)

	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.MarkAsSending(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	err = s.notifier.Notify(ctx, notification.NotifyRequest{
		ResourceID: inv.ID(),
		ToEmail:    inv.CustomerEmail(),
		Subject:    "Invoice for " + inv.CustomerName(),
		Message:    invoiceMessage,
	})
	if err != nil {
		logger.FromContext(ctx).Error("invoice marked as sending but notification failed", zap.Error(err))
		return nil, err
	}

	logger.FromContext(ctx).Info("invoice sent")

	return toInvoiceResponse(inv), nil
}
