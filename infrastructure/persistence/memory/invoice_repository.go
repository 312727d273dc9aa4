/*
Package memory keeps invoices in process memory.

It backs database.type=memory and the application tests. Aggregates are
stored as snapshots, so a caller mutating an invoice after Save does not
change what the repository holds until the next Save.
*/
package memory

import (
	"context"
	"sync"

	"invoicing/domain/invoice"
)

// InvoiceRepository invoice.Repository backed by a map
type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]invoice.ReconstructionDTO
	saves    int
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		invoices: make(map[string]invoice.ReconstructionDTO),
	}
}

func (r *InvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.invoices[inv.ID()] = snapshot(inv)
	r.saves++
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.invoices[id]
	if !ok {
		return nil, invoice.NewInvoiceNotFoundError(id)
	}
	return invoice.RebuildFromDTO(dto), nil
}

// SaveCount reports how many times Save succeeded.
func (r *InvoiceRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func snapshot(inv *invoice.Invoice) invoice.ReconstructionDTO {
	return invoice.ReconstructionDTO{
		ID:            inv.ID(),
		CustomerName:  inv.CustomerName(),
		CustomerEmail: inv.CustomerEmail(),
		Status:        inv.Status(),
		ProductLines:  inv.ProductLines(),
		CreatedAt:     inv.CreatedAt(),
		UpdatedAt:     inv.UpdatedAt(),
	}
}

var _ invoice.Repository = (*InvoiceRepository)(nil)
