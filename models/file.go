package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileInfo is stored metadata for an uploaded file (child photos, forms).
type FileInfo struct {
	ID           string             `json:"id" bson:"id"`
	FileName     string             `json:"fileName" bson:"fileName"`
	OriginalName string             `json:"originalName" bson:"originalName"`
	FileSize     int64              `json:"fileSize" bson:"fileSize"`
	FileType     string             `json:"fileType" bson:"fileType"`
	URL          string             `json:"url" bson:"url"`
	UploadedBy   string             `json:"uploadedBy" bson:"uploadedBy"`
	UploaderID   primitive.ObjectID `json:"uploaderId,omitempty" bson:"uploaderId,omitempty"`
	UploadTime   time.Time          `json:"uploadTime" bson:"uploadTime"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// FileUploadRequest carries a base64-encoded upload.
type FileUploadRequest struct {
	FileData string `json:"fileData" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}
