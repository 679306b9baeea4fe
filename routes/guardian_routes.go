package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterGuardianRoutes(router *gin.Engine) {
	guardianGroup := router.Group("/api/guardians")
	guardianGroup.Use(middleware.AuthMiddleware())

	guardianGroup.GET("", middleware.PermissionMiddleware("guardians", "read"), controllers.GetGuardianList)
	guardianGroup.GET("/:id", middleware.PermissionMiddleware("guardians", "read"), controllers.GetGuardian)
	guardianGroup.POST("", middleware.PermissionMiddleware("guardians", "create"), controllers.CreateGuardian)
	guardianGroup.PUT("/:id", middleware.PermissionMiddleware("guardians", "update"), controllers.UpdateGuardian)
	guardianGroup.DELETE("/:id", middleware.PermissionMiddleware("guardians", "update"), controllers.DeleteGuardian)
}
