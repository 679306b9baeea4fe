package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterAuthRoutes(router *gin.Engine) {
	authGroup := router.Group("/api/auth")

	authGroup.POST("/login", controllers.Login)
	authGroup.POST("/register", controllers.Register)

	authGroup.GET("/profile", middleware.AuthMiddleware(), controllers.GetProfile)

	userGroup := router.Group("/api/users")
	userGroup.Use(middleware.AuthMiddleware())

	userGroup.GET("", middleware.PermissionMiddleware("users", "read"), controllers.ListUsers)
	userGroup.POST("/:id/approve", middleware.PermissionMiddleware("users", "approve"), controllers.ApproveUser)
}
