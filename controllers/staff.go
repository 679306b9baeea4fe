package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetStaffList returns staff members; activeOnly=true filters to the set
// the booking mapper resolves against.
func GetStaffList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	skip := (page - 1) * limit

	query := bson.M{}
	if c.Query("activeOnly") == "true" {
		query["isActive"] = true
	}
	if keyword := c.Query("keyword"); keyword != "" {
		query["$or"] = []bson.M{
			{"firstName": bson.M{"$regex": keyword, "$options": "i"}},
			{"lastName": bson.M{"$regex": keyword, "$options": "i"}},
			{"email": bson.M{"$regex": keyword, "$options": "i"}},
		}
	}

	collection := repository.Collection(repository.StaffCollection)

	totalCount, err := collection.CountDocuments(repository.GetContext(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(repository.GetContext(), query, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var staff []models.Staff
	if err := cursor.All(repository.GetContext(), &staff); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, staff, totalCount, int64(page), int64(limit))
}

// CreateStaff registers a staff member.
func CreateStaff(c *gin.Context) {
	var req models.StaffCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.StaffCollection)

	count, err := collection.CountDocuments(repository.GetContext(), bson.M{"email": req.Email})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "a staff member with this email already exists", http.StatusConflict)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	staff := models.Staff{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(repository.GetContext(), staff)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"_id": result.InsertedID}, "staff member created", http.StatusCreated)
}

// UpdateStaff updates a staff member.
func UpdateStaff(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid staff id", http.StatusBadRequest)
		return
	}

	var req models.StaffCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	update := bson.M{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"email":     req.Email,
		"phone":     req.Phone,
		"role":      req.Role,
		"updatedAt": time.Now(),
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}

	collection := repository.Collection(repository.StaffCollection)
	result, err := collection.UpdateOne(repository.GetContext(),
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("staff member"))
		return
	}

	utils.SuccessResponse(c, nil, "staff member updated")
}

// DeleteStaff removes a staff member. Existing assignments keep their
// snapshot fields.
func DeleteStaff(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid staff id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.StaffCollection)
	result, err := collection.DeleteOne(repository.GetContext(), bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("staff member"))
		return
	}

	utils.SuccessResponse(c, nil, "staff member removed")
}
