package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"invoicing/domain/invoice"
	"invoicing/domain/notification"
	apperrors "invoicing/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandler(t *testing.T, handle func(c *gin.Context)) (int, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/invoices/x", nil)
	c.Set(RequestIDKey, "req-1")

	handle(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", invoice.NewInvoiceNotFoundError("x"), http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{"invalid state", invoice.NewInvalidInvoiceStateError(invoice.StatusSending), http.StatusBadRequest, "INVALID_INVOICE_STATE"},
		{"validation", invoice.NewEmptyProductLinesError(), http.StatusBadRequest, "INVOICE_VALIDATION_FAILED"},
		{"notification", fmt.Errorf("%w: down", notification.ErrNotificationFailed), http.StatusBadGateway, "NOTIFICATION_FAILED"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"rate limited", apperrors.TooManyRequests("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := runHandler(t, func(c *gin.Context) { HandleAppError(c, tt.err) })

			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, "req-1", body.RequestID)
		})
	}
}

func TestHandleAppError_HidesInternalDetails(t *testing.T) {
	_, body := runHandler(t, func(c *gin.Context) {
		HandleAppError(c, errors.New("dial tcp 10.0.0.7:3306: i/o timeout"))
	})

	assert.Equal(t, "internal server error", body.Message)
}

func TestHandleAppError_BindingFailure(t *testing.T) {
	status, body := runHandler(t, func(c *gin.Context) {
		HandleAppError(c, apperrors.BadRequest(errors.New("json: cannot unmarshal"), "invalid request parameters"))
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body.Error)
	assert.Equal(t, "invalid request parameters", body.Message)
}

func TestHandleAppError_AbortsChain(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAppError(c, apperrors.TooManyRequests("slow down"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestHandleCreated(t *testing.T) {
	status, body := runHandler(t, func(c *gin.Context) {
		HandleCreated(c, map[string]string{"id": "inv-1"}, "created")
	})

	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, body.Success)
	assert.Equal(t, map[string]interface{}{"id": "inv-1"}, body.Data)
}
