/*
Package response - unified API responses

 1. HTTP status mapping lives here only; domain and application layers never see it.
 2. Error responses never expose internals; INTERNAL_ERROR always says "internal server error".
 3. Every response carries the request id for log correlation.

Format:

	success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }
*/
package response

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Response unified response envelope
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"` // error code, not details
	Code      int         `json:"code"`            // HTTP status
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}
