package logger

import (
	"context"

	"go.uber.org/zap"
)

type (
	requestIDKey struct{}
	invoiceIDKey struct{}
)

// ContextWithRequestID tags every log line written with ctx, SQL included.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id set by the HTTP middleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey{})
}

// ContextWithInvoiceID tags log lines with the invoice being worked on.
func ContextWithInvoiceID(ctx context.Context, invoiceID string) context.Context {
	return context.WithValue(ctx, invoiceIDKey{}, invoiceID)
}

func InvoiceIDFromContext(ctx context.Context) string {
	return stringValue(ctx, invoiceIDKey{})
}

func stringValue(ctx context.Context, key any) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// contextFields lists the correlation fields carried by ctx.
func contextFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := InvoiceIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("invoice_id", id))
	}
	return fields
}
