package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterStaffRoutes(router *gin.Engine) {
	staffGroup := router.Group("/api/staff")
	staffGroup.Use(middleware.AuthMiddleware())

	staffGroup.GET("", middleware.PermissionMiddleware("staff", "read"), controllers.GetStaffList)
	staffGroup.POST("", middleware.PermissionMiddleware("staff", "create"), controllers.CreateStaff)
	staffGroup.PUT("/:id", middleware.PermissionMiddleware("staff", "update"), controllers.UpdateStaff)
	staffGroup.DELETE("/:id", middleware.PermissionMiddleware("staff", "delete"), controllers.DeleteStaff)
}
