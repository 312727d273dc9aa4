package po

import (
	"fmt"
	"time"

	"invoicing/domain/invoice"
)

// InvoicePO Invoice persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
type InvoicePO struct {
	ID            string    `gorm:"primaryKey;size:36"`
	CustomerName  string    `gorm:"size:255;not null"`
	CustomerEmail string    `gorm:"size:255;not null"`
	Status        string    `gorm:"size:50;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (InvoicePO) TableName() string {
	return "invoices"
}

// ProductLinePO product line persistence object; Position keeps insertion order
type ProductLinePO struct {
	ID        string `gorm:"primaryKey;size:36"`
	InvoiceID string `gorm:"size:36;index;not null"` // Only store ID, no GORM association
	Position  int    `gorm:"not null"`
	Name      string `gorm:"size:255;not null"`
	Quantity  int    `gorm:"not null"`
	Price     int64  `gorm:"not null"`
}

func (ProductLinePO) TableName() string {
	return "invoice_product_lines"
}

// FromInvoiceDomain Convert domain model to persistence objects
func FromInvoiceDomain(inv *invoice.Invoice) (*InvoicePO, []ProductLinePO) {
	invoicePO := &InvoicePO{
		ID:            inv.ID(),
		CustomerName:  inv.CustomerName(),
		CustomerEmail: inv.CustomerEmail(),
		Status:        inv.Status().String(),
		CreatedAt:     inv.CreatedAt(),
		UpdatedAt:     inv.UpdatedAt(),
	}

	lines := inv.ProductLines()
	linePOs := make([]ProductLinePO, len(lines))
	for i, line := range lines {
		linePOs[i] = ProductLinePO{
			ID:        line.ID(),
			InvoiceID: inv.ID(),
			Position:  i,
			Name:      line.Name(),
			Quantity:  line.Quantity(),
			Price:     line.Price(),
		}
	}

	return invoicePO, linePOs
}

// ToDomain rebuilds the aggregate. linePOs must already be sorted by Position.
func (p *InvoicePO) ToDomain(linePOs []ProductLinePO) (*invoice.Invoice, error) {
	status, err := invoice.ParseStatus(p.Status)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", p.ID, err)
	}

	lines := make([]invoice.ProductLine, len(linePOs))
	for i, l := range linePOs {
		lines[i] = invoice.RebuildProductLineFromDTO(invoice.ProductLineReconstructionDTO{
			ID:       l.ID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
		})
	}

	return invoice.RebuildFromDTO(invoice.ReconstructionDTO{
		ID:            p.ID,
		CustomerName:  p.CustomerName,
		CustomerEmail: p.CustomerEmail,
		Status:        status,
		ProductLines:  lines,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}), nil
}
