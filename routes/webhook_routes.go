package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
)

// Webhook endpoints are authenticated by HMAC signature, not by JWT,
// so they are registered outside the auth middleware chain.
func RegisterWebhookRoutes(router *gin.Engine, webhook *controllers.WebhookHandler) {
	router.GET("/api/webhooks/bookings", webhook.Liveness)
	router.POST("/api/webhooks/bookings", webhook.Receive)
}
