// Package notification exposes the delivery hook called by notification providers.
package notification

import (
	"net/http"

	"invoicing/api/response"
	notificationapp "invoicing/application/notification"
	"invoicing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActionDelivered is the only hook action acted upon.
const ActionDelivered = "delivered"

// Controller notification hook controller
type Controller struct {
	notificationService *notificationapp.Service
}

func NewController(notificationService *notificationapp.Service) *Controller {
	return &Controller{notificationService: notificationService}
}

// RegisterRoutes Register notification routes
func (c *Controller) RegisterRoutes(router gin.IRouter) {
	router.GET("/notifications/hook/:action/:reference", c.Hook)
}

// Hook GET /notifications/hook/:action/:reference
//
// Always answers 200 so providers do not retry; failures are only logged.
func (c *Controller) Hook(ctx *gin.Context) {
	action := ctx.Param("action")
	reference := ctx.Param("reference")
	log := logger.FromContext(ctx.Request.Context()).With(
		zap.String("action", action),
		zap.String("reference", reference))

	switch action {
	case ActionDelivered:
		if err := c.notificationService.Delivered(ctx.Request.Context(), reference); err != nil {
			log.Warn("delivery hook not applied", zap.Error(err))
		}
	default:
		log.Debug("ignoring notification hook action")
	}

	ctx.JSON(http.StatusOK, &response.Response{
		Success:   true,
		Code:      http.StatusOK,
		Message:   "ok",
		RequestID: response.GetRequestID(ctx),
	})
}
