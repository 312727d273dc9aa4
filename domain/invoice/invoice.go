/*
Package invoice Invoice subdomain - core of the invoicing service

The Invoice aggregate root owns its product lines and guards the lifecycle:

	Draft --MarkAsSending (valid)--> Sending --MarkAsSentToClient--> SentToClient

Rules:
 1. A new invoice is a Draft without lines.
 2. Lines may be added freely while drafting; they are validated only when the invoice is sent.
 3. Status only moves forward. MarkAsSending fails from any state but Draft,
    MarkAsSentToClient silently ignores any state but Sending.
 4. The total price is derived from the lines on every call and never stored.

All fields are private; repositories rebuild aggregates through RebuildFromDTO.
*/
package invoice

import (
	"fmt"
	"time"

	"invoicing/domain/shared"

	"github.com/google/uuid"
)

// Invoice aggregate root
type Invoice struct {
	id            string
	customerName  string
	customerEmail string
	status        Status
	productLines  []ProductLine
	createdAt     time.Time
	updatedAt     time.Time
}

// NewInvoice creates a draft invoice with a fresh identifier.
// Name and email format are the presentation layer's concern and are not checked here.
func NewInvoice(customerName, customerEmail string) (*Invoice, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice ID: %w", err)
	}

	now := time.Now()
	return &Invoice{
		id:            id.String(),
		customerName:  customerName,
		customerEmail: customerEmail,
		status:        StatusDraft,
		productLines:  make([]ProductLine, 0),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructionDTO Invoice reconstruction data, for repository implementations only.
type ReconstructionDTO struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Status        Status
	ProductLines  []ProductLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO restores a persisted invoice without re-running any business rule.
// ⚠️ Repository use only; application code creates invoices with NewInvoice.
func RebuildFromDTO(dto ReconstructionDTO) *Invoice {
	lines := make([]ProductLine, len(dto.ProductLines))
	copy(lines, dto.ProductLines)

	return &Invoice{
		id:            dto.ID,
		customerName:  dto.CustomerName,
		customerEmail: dto.CustomerEmail,
		status:        dto.Status,
		productLines:  lines,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}

// AddProductLine appends a line owned by this invoice.
// Non-positive quantity or price is accepted here and rejected by MarkAsSending.
func (i *Invoice) AddProductLine(name string, quantity int, price int64) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate product line ID: %w", err)
	}

	i.productLines = append(i.productLines, ProductLine{
		id:       id.String(),
		name:     name,
		quantity: quantity,
		price:    price,
	})
	i.updatedAt = time.Now()

	return nil
}

// TotalPrice sums the line totals; zero for an invoice without lines.
func (i *Invoice) TotalPrice() int64 {
	var total int64
	for _, line := range i.productLines {
		total += line.Total()
	}
	return total
}

// MarkAsSending moves a valid draft to Sending.
// Checks run in order: status, presence of lines, validity of every line.
func (i *Invoice) MarkAsSending() error {
	if i.status != StatusDraft {
		return NewInvalidInvoiceStateError(i.status)
	}

	if len(i.productLines) == 0 {
		return NewEmptyProductLinesError()
	}

	for pos, line := range i.productLines {
		if !line.IsValid() {
			return NewInvalidProductLinesError(pos, line)
		}
	}

	i.status = StatusSending
	i.updatedAt = time.Now()
	return nil
}

// MarkAsSentToClient confirms delivery. Only a Sending invoice changes;
// duplicate or out-of-order confirmations are absorbed.
func (i *Invoice) MarkAsSentToClient() {
	if i.status != StatusSending {
		return
	}
	i.status = StatusSentToClient
	i.updatedAt = time.Now()
}

func (i *Invoice) ID() string            { return i.id }
func (i *Invoice) CustomerName() string  { return i.customerName }
func (i *Invoice) CustomerEmail() string { return i.customerEmail }
func (i *Invoice) Status() Status        { return i.status }
func (i *Invoice) CreatedAt() time.Time  { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time  { return i.updatedAt }

// ProductLines returns a copy in insertion order.
func (i *Invoice) ProductLines() []ProductLine {
	lines := make([]ProductLine, len(i.productLines))
	copy(lines, i.productLines)
	return lines
}

var _ shared.AggregateRoot = (*Invoice)(nil)
