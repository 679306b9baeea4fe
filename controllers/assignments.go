package controllers

import (
	"net/http"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/service"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// syncer is set at startup; the manual sync endpoint uses it.
var syncer *service.BookingSyncer

// SetSyncer injects the booking backfill service.
func SetSyncer(s *service.BookingSyncer) {
	syncer = s
}

// GetAssignmentList returns staff assignments filtered by date range,
// staff member and service.
func GetAssignmentList(c *gin.Context) {
	query := bson.M{}

	if from := c.Query("from"); from != "" {
		to := c.Query("to")
		if to == "" {
			to = from
		}
		query["date"] = bson.M{"$gte": from, "$lte": to}
	}
	if staffID := c.Query("staffId"); staffID != "" {
		objID, err := primitive.ObjectIDFromHex(staffID)
		if err != nil {
			utils.ErrorResponse(c, "invalid staff id", http.StatusBadRequest)
			return
		}
		query["staffId"] = objID
	}
	if serviceID := c.Query("serviceId"); serviceID != "" {
		query["serviceId"] = serviceID
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	collection := repository.Collection(repository.AssignmentsCollection)
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})

	cursor, err := collection.Find(repository.GetContext(), query, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var assignments []models.StaffAssignment
	if err := cursor.All(repository.GetContext(), &assignments); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, assignments, "")
}

// CreateAssignment creates an assignment manually from the admin UI and
// emails the staff member. Manual rows get a locally generated booking id
// so they share the webhook rows' unique key.
func CreateAssignment(c *gin.Context) {
	var req models.AssignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	staffID, err := primitive.ObjectIDFromHex(req.StaffID)
	if err != nil {
		utils.ErrorResponse(c, "invalid staff id", http.StatusBadRequest)
		return
	}

	staffColl := repository.Collection(repository.StaffCollection)
	var staff models.Staff
	err = staffColl.FindOne(repository.GetContext(), bson.M{"_id": staffID}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("staff member"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = "Volunteer"
	}

	now := time.Now()
	assignment := models.StaffAssignment{
		BookingID:     "manual-" + uuid.NewString(),
		StaffID:       &staff.ID,
		StaffName:     staff.FirstName + " " + staff.LastName,
		AttendeeEmail: staff.Email,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Role:          role,
		Status:        models.AssignmentAccepted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	collection := repository.Collection(repository.AssignmentsCollection)
	result, err := collection.InsertOne(repository.GetContext(), assignment)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if mailer != nil && staff.Email != "" {
		serviceName := req.ServiceID
		var svc models.Service
		servicesColl := repository.Collection(repository.ServicesCollection)
		if err := servicesColl.FindOne(repository.GetContext(), bson.M{"serviceId": req.ServiceID}).Decode(&svc); err == nil {
			serviceName = svc.Name
		}
		go mailer.SendAssignmentNotice(repository.GetContext(),
			staff.Email, assignment.StaffName, serviceName, req.Date, role)
	}

	utils.SuccessResponse(c, gin.H{"_id": result.InsertedID}, "assignment created", http.StatusCreated)
}

// DeleteAssignment removes an assignment by document id.
func DeleteAssignment(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid assignment id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.AssignmentsCollection)
	result, err := collection.DeleteOne(repository.GetContext(), bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("assignment"))
		return
	}

	utils.SuccessResponse(c, nil, "assignment removed")
}

// TriggerBookingSync runs the provider backfill for a requested range,
// defaulting to the next two weeks.
func TriggerBookingSync(c *gin.Context) {
	if syncer == nil {
		utils.ErrorResponse(c, "booking sync is not configured", http.StatusServiceUnavailable)
		return
	}

	now := time.Now()
	from := utils.ParseDateParam(c.Query("from"), now.AddDate(0, 0, -1))
	to := utils.ParseDateParam(c.Query("to"), now.AddDate(0, 0, 14))

	if err := syncer.SyncRange(repository.GetContext(), from, to); err != nil {
		utils.HandleError(c, utils.NewAppError("booking sync failed", http.StatusBadGateway, err))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
	}, "booking sync complete")
}
