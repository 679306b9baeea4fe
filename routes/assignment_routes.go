package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterAssignmentRoutes(router *gin.Engine) {
	assignmentGroup := router.Group("/api/assignments")
	assignmentGroup.Use(middleware.AuthMiddleware())

	assignmentGroup.GET("", middleware.PermissionMiddleware("assignments", "read"), controllers.GetAssignmentList)
	assignmentGroup.POST("", middleware.PermissionMiddleware("assignments", "create"), controllers.CreateAssignment)
	assignmentGroup.DELETE("/:id", middleware.PermissionMiddleware("assignments", "delete"), controllers.DeleteAssignment)
	assignmentGroup.POST("/sync", middleware.PermissionMiddleware("assignments", "sync"), controllers.TriggerBookingSync)
}
