package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CheckIn records a child's arrival at a service and returns the security
// code for pickup.
func CheckIn(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	childID, err := primitive.ObjectIDFromHex(req.ChildID)
	if err != nil {
		utils.ErrorResponse(c, "invalid child id", http.StatusBadRequest)
		return
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	children := repository.Collection(repository.ChildrenCollection)
	var child models.Child
	err = children.FindOne(repository.GetContext(), bson.M{"_id": childID, "active": true}).Decode(&child)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("child"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	attendance := repository.Collection(repository.AttendanceCollection)

	// Reject a duplicate open check-in for the same child/service/date.
	count, err := attendance.CountDocuments(repository.GetContext(), bson.M{
		"childId":   childID,
		"serviceId": req.ServiceID,
		"date":      date,
		"status":    models.AttendanceCheckedIn,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "child is already checked in for this service", http.StatusConflict)
		return
	}

	// Short uppercase code, printed on the pickup tag.
	code := strings.ToUpper(utils.RandomString(8))

	record := models.AttendanceRecord{
		ChildID:      childID,
		ChildName:    child.FirstName + " " + child.LastName,
		ServiceID:    req.ServiceID,
		Date:         date,
		SecurityCode: code,
		Status:       models.AttendanceCheckedIn,
		CheckedInBy:  user.Username,
		CheckedInAt:  time.Now(),
	}

	result, err := attendance.InsertOne(repository.GetContext(), record)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"childId":   req.ChildID,
		"serviceId": req.ServiceID,
		"date":      date,
	}, "child checked in")

	utils.SuccessResponse(c, gin.H{
		"_id":          result.InsertedID,
		"securityCode": code,
	}, "checked in", http.StatusCreated)
}

// CheckOut closes an attendance record after verifying the security code.
func CheckOut(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	recordID, err := primitive.ObjectIDFromHex(req.RecordID)
	if err != nil {
		utils.ErrorResponse(c, "invalid record id", http.StatusBadRequest)
		return
	}

	attendance := repository.Collection(repository.AttendanceCollection)

	var record models.AttendanceRecord
	err = attendance.FindOne(repository.GetContext(), bson.M{"_id": recordID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("attendance record"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if record.Status == models.AttendanceCheckedOut {
		utils.ErrorResponse(c, "child is already checked out", http.StatusConflict)
		return
	}

	if !strings.EqualFold(record.SecurityCode, strings.TrimSpace(req.SecurityCode)) {
		utils.Logger.Warn().
			Str("recordId", req.RecordID).
			Msg("check-out rejected: security code mismatch")
		utils.ErrorResponse(c, "security code does not match", http.StatusForbidden)
		return
	}

	now := time.Now()
	_, err = attendance.UpdateOne(repository.GetContext(),
		bson.M{"_id": recordID},
		bson.M{"$set": bson.M{
			"status":       models.AttendanceCheckedOut,
			"checkedOutBy": user.Username,
			"checkedOutAt": now,
		}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "checked out")
}

// GetAttendanceList returns attendance records filtered by date and
// service.
func GetAttendanceList(c *gin.Context) {
	query := bson.M{}
	if date := c.Query("date"); date != "" {
		query["date"] = date
	}
	if serviceID := c.Query("serviceId"); serviceID != "" {
		query["serviceId"] = serviceID
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	attendance := repository.Collection(repository.AttendanceCollection)
	findOptions := options.Find().SetSort(bson.D{{Key: "checkedInAt", Value: -1}})

	cursor, err := attendance.Find(repository.GetContext(), query, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var records []models.AttendanceRecord
	if err := cursor.All(repository.GetContext(), &records); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, records, "")
}
