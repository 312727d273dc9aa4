package invoice

import "context"

// Repository Invoice repository interface
type Repository interface {
	// Save persists the root and all of its product lines as one atomic operation,
	// inserting or replacing whatever was stored before.
	Save(ctx context.Context, invoice *Invoice) error

	// FindByID returns the invoice with its lines in insertion order.
	// A missing invoice is reported as an error matching ErrInvoiceNotFound.
	FindByID(ctx context.Context, id string) (*Invoice, error)
}
