package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterDashboardRoutes(router *gin.Engine) {
	dashboardGroup := router.Group("/api/dashboard")
	dashboardGroup.Use(middleware.AuthMiddleware())

	dashboardGroup.GET("/stats", middleware.PermissionMiddleware("dashboard", "read"), controllers.GetDashboardStats)
}
