package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Auguzcht/NextGen-sub001/controllers"
	"github.com/Auguzcht/NextGen-sub001/middleware"
)

func RegisterFileRoutes(router *gin.Engine) {
	fileGroup := router.Group("/api/files")
	fileGroup.Use(middleware.AuthMiddleware())

	fileGroup.POST("/upload", middleware.PermissionMiddleware("files", "create"), controllers.UploadFile)
	fileGroup.GET("/:fileId", middleware.PermissionMiddleware("files", "read"), controllers.GetFile)
	fileGroup.GET("", middleware.PermissionMiddleware("files", "read"), controllers.GetFileList)
}
