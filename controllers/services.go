package controllers

import (
	"net/http"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetServiceList returns the seeded service slots.
func GetServiceList(c *gin.Context) {
	collection := repository.Collection(repository.ServicesCollection)

	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := collection.Find(repository.GetContext(), bson.M{}, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var services []models.Service
	if err := cursor.All(repository.GetContext(), &services); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, services, "")
}

// UpdateService updates display fields only; slot times come from
// configuration and are reseeded at startup.
func UpdateService(c *gin.Context) {
	serviceID := c.Param("id")

	var req models.ServiceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.Location != "" {
		update["location"] = req.Location
	}

	collection := repository.Collection(repository.ServicesCollection)
	result, err := collection.UpdateOne(repository.GetContext(),
		bson.M{"serviceId": serviceID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("service"))
		return
	}

	utils.SuccessResponse(c, nil, "service updated")
}
