package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterAttendanceRoutes(router *gin.Engine) {
	attendanceGroup := router.Group("/api/attendance")
	attendanceGroup.Use(middleware.AuthMiddleware())

	attendanceGroup.GET("", middleware.PermissionMiddleware("attendance", "read"), controllers.GetAttendanceList)
	attendanceGroup.POST("/check-in", middleware.PermissionMiddleware("attendance", "create"), controllers.CheckIn)
	attendanceGroup.POST("/check-out", middleware.PermissionMiddleware("attendance", "update"), controllers.CheckOut)
}
