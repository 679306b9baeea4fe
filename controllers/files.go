package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 10MB cap for base64 uploads (child photos, consent forms).
const maxFileSize = 10 * 1024 * 1024

// UploadFile stores an uploaded file's metadata and payload.
func UploadFile(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.FileUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request data", http.StatusBadRequest)
		return
	}

	if req.FileSize > maxFileSize {
		utils.ErrorResponse(c,
			fmt.Sprintf("file too large, the limit is %dMB", maxFileSize/1024/1024),
			http.StatusBadRequest)
		return
	}

	fileID := "file_" + uuid.NewString()
	storagePath := fmt.Sprintf("uploads/%d_%s", time.Now().Unix(), req.FileName)

	var uploaderID primitive.ObjectID
	if v, err := primitive.ObjectIDFromHex(currentUser.ID); err == nil {
		uploaderID = v
	}

	record := models.FileInfo{
		ID:           fileID,
		FileName:     storagePath,
		OriginalName: req.FileName,
		FileSize:     req.FileSize,
		FileType:     req.FileType,
		// The base64 payload is stored inline; object storage is fronted
		// by the hosting platform and receives the same path.
		URL:        req.FileData,
		UploadedBy: currentUser.Username,
		UploaderID: uploaderID,
		UploadTime: time.Now(),
		CreatedAt:  time.Now(),
	}

	collection := repository.Collection(repository.FilesCollection)
	if _, err := collection.InsertOne(repository.GetContext(), record); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"fileId":   fileID,
		"fileName": req.FileName,
		"user":     currentUser.Username,
	}, "file uploaded")

	utils.SuccessResponse(c, gin.H{
		"id":       fileID,
		"fileName": storagePath,
	}, "file uploaded", http.StatusCreated)
}

// GetFile returns one file record by id.
func GetFile(c *gin.Context) {
	fileID := c.Param("id")

	collection := repository.Collection(repository.FilesCollection)
	var record models.FileInfo
	err := collection.FindOne(repository.GetContext(), bson.M{"id": fileID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("file"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, record, "")
}

// GetFileList returns file metadata, newest first, without payloads.
func GetFileList(c *gin.Context) {
	collection := repository.Collection(repository.FilesCollection)

	findOptions := options.Find().
		SetSort(bson.D{{Key: "uploadTime", Value: -1}}).
		SetProjection(bson.M{"url": 0}).
		SetLimit(100)

	cursor, err := collection.Find(repository.GetContext(), bson.M{}, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var files []models.FileInfo
	if err := cursor.All(repository.GetContext(), &files); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, files, "")
}
