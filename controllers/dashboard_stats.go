package controllers

import (
	"net/http"
	"time"

	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetDashboardStats aggregates registration, attendance and assignment
// numbers for the admin dashboard.
func GetDashboardStats(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	from := c.Query("from")
	to := c.Query("to")
	if from == "" {
		from = now.AddDate(0, -1, 0).Format("2006-01-02")
	}
	if to == "" {
		to = now.Format("2006-01-02")
	}

	utils.LogInfo(map[string]interface{}{
		"username": user.Username,
		"from":     from,
		"to":       to,
	}, "dashboard stats requested")

	ctx := repository.GetContext()

	childCount, err := repository.Collection(repository.ChildrenCollection).
		CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	guardianCount, err := repository.Collection(repository.GuardiansCollection).
		CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	staffCount, err := repository.Collection(repository.StaffCollection).
		CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	dateRange := bson.M{"$gte": from, "$lte": to}

	// Attendance per service and date.
	attendancePipeline := []bson.M{
		{"$match": bson.M{"date": dateRange}},
		{"$group": bson.M{
			"_id":   bson.M{"serviceId": "$serviceId", "date": "$date"},
			"count": bson.M{"$sum": 1},
		}},
		{"$project": bson.M{
			"_id":       0,
			"serviceId": "$_id.serviceId",
			"date":      "$_id.date",
			"count":     1,
		}},
		{"$sort": bson.M{"date": 1, "serviceId": 1}},
	}

	attendanceCursor, err := repository.Collection(repository.AttendanceCollection).
		Aggregate(ctx, attendancePipeline)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer attendanceCursor.Close(ctx)

	var attendanceByService []bson.M
	if err := attendanceCursor.All(ctx, &attendanceByService); err != nil {
		utils.HandleError(c, err)
		return
	}

	// Assignment counts per service and status.
	assignmentPipeline := []bson.M{
		{"$match": bson.M{"date": dateRange}},
		{"$group": bson.M{
			"_id":   bson.M{"serviceId": "$serviceId", "status": "$status"},
			"count": bson.M{"$sum": 1},
		}},
		{"$project": bson.M{
			"_id":       0,
			"serviceId": "$_id.serviceId",
			"status":    "$_id.status",
			"count":     1,
		}},
	}

	assignmentCursor, err := repository.Collection(repository.AssignmentsCollection).
		Aggregate(ctx, assignmentPipeline)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer assignmentCursor.Close(ctx)

	var assignmentsByService []bson.M
	if err := assignmentCursor.All(ctx, &assignmentsByService); err != nil {
		utils.HandleError(c, err)
		return
	}

	// Unresolved webhook assignments still needing a staff match.
	unresolvedCount, err := repository.Collection(repository.AssignmentsCollection).
		CountDocuments(ctx, bson.M{"staffId": nil, "date": dateRange})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"totals": gin.H{
			"children":  childCount,
			"guardians": guardianCount,
			"staff":     staffCount,
		},
		"attendanceByService":   attendanceByService,
		"assignmentsByService":  assignmentsByService,
		"unresolvedAssignments": unresolvedCount,
		"range":                 gin.H{"from": from, "to": to},
	}, "")
}
