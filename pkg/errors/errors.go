package errors

import (
	"errors"
	"fmt"

	"invoicing/domain/invoice"
	"invoicing/domain/notification"
	"invoicing/domain/shared"
)

// ErrorCode machine readable error code returned to API clients
type ErrorCode string

const (
	// generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"

	// invoicing codes
	CodeInvoiceNotFound         ErrorCode = "INVOICE_NOT_FOUND"
	CodeInvalidInvoiceState     ErrorCode = "INVALID_INVOICE_STATE"
	CodeInvoiceValidationFailed ErrorCode = "INVOICE_VALIDATION_FAILED"
	CodeNotificationFailed      ErrorCode = "NOTIFICATION_FAILED"
	CodeInvalidReference        ErrorCode = "INVALID_REFERENCE"
)

// AppError application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest wraps a request decoding or binding failure.
func BadRequest(err error, message string) *AppError {
	return Wrap(err, CodeBadRequest, message)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternal, "internal server error")
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// FromDomainError translates domain and application errors to an AppError.
// The domain message is kept since it is written for API clients; unknown
// errors become INTERNAL_ERROR with a generic message.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		return Wrap(err, CodeInvoiceNotFound, err.Error())
	case errors.Is(err, invoice.ErrInvalidInvoiceState):
		return Wrap(err, CodeInvalidInvoiceState, err.Error())
	case errors.Is(err, invoice.ErrInvoiceValidation):
		return Wrap(err, CodeInvoiceValidationFailed, err.Error())
	case errors.Is(err, notification.ErrNotificationFailed):
		return Wrap(err, CodeNotificationFailed, "invoice is being sent but the notification could not be delivered")
	case errors.Is(err, notification.ErrInvalidReference):
		return Wrap(err, CodeInvalidReference, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvalidState):
		return Wrap(err, CodeBadRequest, err.Error())
	default:
		return Internal(err)
	}
}
