/*
Package invoice invoice API controller

Binding errors are wrapped with errors.BadRequest; they and everything the
application layer returns go through response.HandleAppError, which maps
errors to codes and HTTP statuses.
*/
package invoice

import (
	"invoicing/api/response"
	invoiceapp "invoicing/application/invoice"
	"invoicing/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller invoice controller
type Controller struct {
	invoiceService *invoiceapp.ApplicationService
}

// NewController Create invoice controller
func NewController(invoiceService *invoiceapp.ApplicationService) *Controller {
	return &Controller{
		invoiceService: invoiceService,
	}
}

// RegisterRoutes Register invoice routes
func (c *Controller) RegisterRoutes(router gin.IRouter) {
	invoiceGroup := router.Group("/invoices")
	{
		invoiceGroup.POST("", c.CreateInvoice)
		invoiceGroup.GET("/:id", c.GetInvoice)
		invoiceGroup.POST("/:id/send", c.SendInvoice)
	}
}

// CreateInvoice POST /invoices
func (c *Controller) CreateInvoice(ctx *gin.Context) {
	var req invoiceapp.CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleAppError(ctx, errors.BadRequest(err, "invalid request parameters"))
		return
	}

	inv, err := c.invoiceService.CreateInvoice(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, inv, "invoice created successfully")
}

// GetInvoice GET /invoices/:id
func (c *Controller) GetInvoice(ctx *gin.Context) {
	inv, err := c.invoiceService.GetInvoice(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, inv, "invoice retrieved successfully")
}

// SendInvoice POST /invoices/:id/send
//
//	invoice.ErrInvoiceNotFound           -> 404
//	invoice.ErrInvalidInvoiceState       -> 400
//	invoice.ErrInvoiceValidation         -> 400
//	notification.ErrNotificationFailed   -> 502
func (c *Controller) SendInvoice(ctx *gin.Context) {
	inv, err := c.invoiceService.SendInvoice(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, inv, "invoice sent")
}
