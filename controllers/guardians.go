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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetGuardianList returns guardians with search and pagination.
func GetGuardianList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	skip := (page - 1) * limit

	searchQuery := bson.M{}
	if keyword := c.Query("keyword"); keyword != "" {
		searchQuery["$or"] = []bson.M{
			{"firstName": bson.M{"$regex": keyword, "$options": "i"}},
			{"lastName": bson.M{"$regex": keyword, "$options": "i"}},
			{"phone": bson.M{"$regex": keyword, "$options": "i"}},
		}
	}

	collection := repository.Collection(repository.GuardiansCollection)

	totalCount, err := collection.CountDocuments(repository.GetContext(), searchQuery)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(repository.GetContext(), searchQuery, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var guardians []models.Guardian
	if err := cursor.All(repository.GetContext(), &guardians); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, guardians, totalCount, int64(page), int64(limit))
}

// GetGuardian returns one guardian by id.
func GetGuardian(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid guardian id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.GuardiansCollection)
	var guardian models.Guardian
	err = collection.FindOne(repository.GetContext(), bson.M{"_id": objID}).Decode(&guardian)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("guardian"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, guardian, "")
}

// CreateGuardian registers a guardian and links the listed children.
func CreateGuardian(c *gin.Context) {
	var req models.GuardianCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	childIDs, err := parseObjectIDs(req.ChildIDs)
	if err != nil {
		utils.ErrorResponse(c, "invalid child id", http.StatusBadRequest)
		return
	}

	now := time.Now()
	guardian := models.Guardian{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		ChildIDs:     childIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	collection := repository.Collection(repository.GuardiansCollection)
	result, err := collection.InsertOne(repository.GetContext(), guardian)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	guardianID := result.InsertedID.(primitive.ObjectID)

	if len(childIDs) > 0 {
		children := repository.Collection(repository.ChildrenCollection)
		_, err = children.UpdateMany(repository.GetContext(),
			bson.M{"_id": bson.M{"$in": childIDs}},
			bson.M{"$addToSet": bson.M{"guardianIds": guardianID}},
		)
		if err != nil {
			utils.Logger.Error().Err(err).Str("guardianId", guardianID.Hex()).Msg("child back-reference failed")
		}
	}

	utils.SuccessResponse(c, gin.H{"_id": guardianID.Hex()}, "guardian registered", http.StatusCreated)
}

// UpdateGuardian updates a guardian's record.
func UpdateGuardian(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid guardian id", http.StatusBadRequest)
		return
	}

	var req models.GuardianCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	childIDs, err := parseObjectIDs(req.ChildIDs)
	if err != nil {
		utils.ErrorResponse(c, "invalid child id", http.StatusBadRequest)
		return
	}

	update := bson.M{
		"firstName":    req.FirstName,
		"lastName":     req.LastName,
		"relationship": req.Relationship,
		"phone":        req.Phone,
		"email":        req.Email,
		"address":      req.Address,
		"childIds":     childIDs,
		"updatedAt":    time.Now(),
	}

	collection := repository.Collection(repository.GuardiansCollection)
	result, err := collection.UpdateOne(repository.GetContext(),
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("guardian"))
		return
	}

	utils.SuccessResponse(c, nil, "guardian updated")
}

// DeleteGuardian removes a guardian and its back-references.
func DeleteGuardian(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid guardian id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.GuardiansCollection)
	result, err := collection.DeleteOne(repository.GetContext(), bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("guardian"))
		return
	}

	children := repository.Collection(repository.ChildrenCollection)
	_, err = children.UpdateMany(repository.GetContext(),
		bson.M{"guardianIds": objID},
		bson.M{"$pull": bson.M{"guardianIds": objID}},
	)
	if err != nil {
		utils.Logger.Error().Err(err).Str("guardianId", objID.Hex()).Msg("guardian unlink failed")
	}

	utils.SuccessResponse(c, nil, "guardian removed")
}
