/*
Package invoice - invoice domain errors

Design:
 1. Sentinel errors classify failures so callers can use errors.Is().
 2. Constructors capture the stack where the error was raised.
 3. ErrEmptyProductLines and ErrInvalidProductLines both wrap ErrInvoiceValidation,
    so a caller can match either the specific reason or the whole category.
 4. No HTTP status codes here; the API layer maps codes.
*/
package invoice

import (
	"errors"
	"fmt"

	"invoicing/domain/shared"
)

var (
	// ErrInvoiceNotFound the id does not resolve to an invoice
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidInvoiceState transition not allowed from the current status
	ErrInvalidInvoiceState = errors.New("invalid invoice state")

	// ErrInvoiceValidation invoice content fails the send preconditions
	ErrInvoiceValidation = errors.New("invoice validation failed")

	// ErrEmptyProductLines invoice has no product lines
	ErrEmptyProductLines = fmt.Errorf("%w: invoice must have product lines to be sent", ErrInvoiceValidation)

	// ErrInvalidProductLines some line has non-positive quantity or price
	ErrInvalidProductLines = fmt.Errorf("%w: all product lines must have positive quantity and price", ErrInvoiceValidation)
)

// NewInvoiceNotFoundError returns an error matching ErrInvoiceNotFound and shared.ErrNotFound.
func NewInvoiceNotFoundError(invoiceID string) error {
	return &invoiceDomainError{
		sentinel: ErrInvoiceNotFound,
		category: shared.ErrNotFound,
		message:  "invoice not found with id: " + invoiceID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidInvoiceStateError reports a send attempt from a status other than draft.
func NewInvalidInvoiceStateError(current Status) error {
	return &invoiceDomainError{
		sentinel: ErrInvalidInvoiceState,
		category: shared.ErrInvalidState,
		message:  "invoice must be in draft status to be sent, current status: " + current.String(),
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptyProductLinesError reports a send attempt on an invoice without lines.
func NewEmptyProductLinesError() error {
	return &invoiceDomainError{
		sentinel: ErrEmptyProductLines,
		category: shared.ErrInvalidInput,
		field:    "product_lines",
		message:  "invoice must have product lines to be sent",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidProductLinesError reports the first offending line by position.
func NewInvalidProductLinesError(position int, line ProductLine) error {
	return &invoiceDomainError{
		sentinel: ErrInvalidProductLines,
		category: shared.ErrInvalidInput,
		field:    fmt.Sprintf("product_lines[%d]", position),
		message: fmt.Sprintf("all product lines must have positive quantity and price, line %d (%s) has quantity %d and price %d",
			position, line.Name(), line.Quantity(), line.Price()),
		stack: shared.CaptureStack(3),
	}
}

// invoiceDomainError implements error, Unwrap and shared.Stacker.
type invoiceDomainError struct {
	sentinel error
	category error
	field    string
	message  string
	stack    []uintptr
}

func (e *invoiceDomainError) Error() string {
	return e.message
}

func (e *invoiceDomainError) Unwrap() []error {
	return []error{e.sentinel, e.category}
}

// Field names the offending input, empty when not applicable.
func (e *invoiceDomainError) Field() string {
	return e.field
}

func (e *invoiceDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
