package routes

import (
	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all route groups.
func RegisterRoutes(router *gin.Engine, webhook *controllers.WebhookHandler) {
	RegisterAuthRoutes(router)
	RegisterChildRoutes(router)
	RegisterGuardianRoutes(router)
	RegisterAttendanceRoutes(router)
	RegisterStaffRoutes(router)
	RegisterServiceRoutes(router)
	RegisterAssignmentRoutes(router)
	RegisterDashboardRoutes(router)
	RegisterFileRoutes(router)
	RegisterWebhookRoutes(router, webhook)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "db status check failed: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})
}
