package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterChildRoutes(router *gin.Engine) {
	childGroup := router.Group("/api/children")
	childGroup.Use(middleware.AuthMiddleware())

	childGroup.GET("", middleware.PermissionMiddleware("children", "read"), controllers.GetChildList)
	childGroup.GET("/:id", middleware.PermissionMiddleware("children", "read"), controllers.GetChild)
	childGroup.POST("", middleware.PermissionMiddleware("children", "create"), controllers.CreateChild)
	childGroup.PUT("/:id", middleware.PermissionMiddleware("children", "update"), controllers.UpdateChild)
	childGroup.DELETE("/:id", middleware.PermissionMiddleware("children", "delete"), controllers.DeleteChild)
}
