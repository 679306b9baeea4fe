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

// GetChildList returns registered children with search and pagination.
func GetChildList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	skip := (page - 1) * limit

	searchQuery := bson.M{"active": true}
	if keyword := c.Query("keyword"); keyword != "" {
		searchQuery["$or"] = []bson.M{
			{"firstName": bson.M{"$regex": keyword, "$options": "i"}},
			{"lastName": bson.M{"$regex": keyword, "$options": "i"}},
		}
	}
	if ageGroup := c.Query("ageGroup"); ageGroup != "" {
		searchQuery["ageGroup"] = ageGroup
	}

	collection := repository.Collection(repository.ChildrenCollection)

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

	var children []models.Child
	if err := cursor.All(repository.GetContext(), &children); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PaginatedResponse(c, children, totalCount, int64(page), int64(limit))
}

// GetChild returns one child by id.
func GetChild(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid child id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.ChildrenCollection)
	var child models.Child
	err = collection.FindOne(repository.GetContext(), bson.M{"_id": objID}).Decode(&child)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("child"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, child, "")
}

// CreateChild registers a child and links the listed guardians.
func CreateChild(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.ChildCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	guardianIDs, err := parseObjectIDs(req.GuardianIDs)
	if err != nil {
		utils.ErrorResponse(c, "invalid guardian id", http.StatusBadRequest)
		return
	}

	now := time.Now()
	child := models.Child{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Birthdate:    req.Birthdate,
		Gender:       req.Gender,
		AgeGroup:     req.AgeGroup,
		GuardianIDs:  guardianIDs,
		Allergies:    req.Allergies,
		MedicalNotes: req.MedicalNotes,
		RegisteredBy: user.Username,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	collection := repository.Collection(repository.ChildrenCollection)
	result, err := collection.InsertOne(repository.GetContext(), child)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	childID := result.InsertedID.(primitive.ObjectID)

	// Back-reference the child on each guardian.
	if len(guardianIDs) > 0 {
		guardians := repository.Collection(repository.GuardiansCollection)
		_, err = guardians.UpdateMany(repository.GetContext(),
			bson.M{"_id": bson.M{"$in": guardianIDs}},
			bson.M{"$addToSet": bson.M{"childIds": childID}},
		)
		if err != nil {
			utils.Logger.Error().Err(err).Str("childId", childID.Hex()).Msg("guardian back-reference failed")
		}
	}

	utils.SuccessResponse(c, gin.H{"_id": childID.Hex()}, "child registered", http.StatusCreated)
}

// UpdateChild updates a child's record.
func UpdateChild(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid child id", http.StatusBadRequest)
		return
	}

	var req models.ChildCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	guardianIDs, err := parseObjectIDs(req.GuardianIDs)
	if err != nil {
		utils.ErrorResponse(c, "invalid guardian id", http.StatusBadRequest)
		return
	}

	update := bson.M{
		"firstName":    req.FirstName,
		"lastName":     req.LastName,
		"birthdate":    req.Birthdate,
		"gender":       req.Gender,
		"ageGroup":     req.AgeGroup,
		"guardianIds":  guardianIDs,
		"allergies":    req.Allergies,
		"medicalNotes": req.MedicalNotes,
		"updatedAt":    time.Now(),
	}

	collection := repository.Collection(repository.ChildrenCollection)
	result, err := collection.UpdateOne(repository.GetContext(),
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("child"))
		return
	}

	utils.SuccessResponse(c, nil, "child updated")
}

// DeleteChild deactivates a child record. Attendance history is kept.
func DeleteChild(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid child id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.ChildrenCollection)
	result, err := collection.UpdateOne(repository.GetContext(),
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("child"))
		return
	}

	utils.SuccessResponse(c, nil, "child removed")
}

// parseObjectIDs converts hex ids, rejecting malformed entries.
func parseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		objIDs = append(objIDs, objID)
	}
	return objIDs, nil
}
