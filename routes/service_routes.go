package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterServiceRoutes(router *gin.Engine) {
	serviceGroup := router.Group("/api/services")
	serviceGroup.Use(middleware.AuthMiddleware())

	serviceGroup.GET("", middleware.PermissionMiddleware("services", "read"), controllers.GetServiceList)
	serviceGroup.PUT("/:id", middleware.PermissionMiddleware("services", "update"), controllers.UpdateService)
}
