package controllers

import (
	"net/http"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/service"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mailer is shared by the handlers that send notifications.
var mailer *service.Mailer

// SetMailer injects the transactional mail client.
func SetMailer(m *service.Mailer) {
	mailer = m
}

// Login authenticates a user and issues a JWT.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	usersCollection := repository.Collection(repository.UsersCollection)
	var user models.User
	err := usersCollection.FindOne(repository.GetContext(), bson.M{"username": req.Username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Logger.Info().Str("username", req.Username).Msg("login failed: unknown username")
			utils.ErrorResponse(c, "unknown username or wrong password", http.StatusUnauthorized)
			return
		}
		utils.Logger.Error().Err(err).Msg("user lookup failed")
		utils.ErrorResponse(c, "login failed: database error", http.StatusInternalServerError)
		return
	}

	switch user.Status {
	case models.UserStatusPENDING:
		utils.ErrorResponse(c, "account is pending approval", http.StatusForbidden)
		return
	case models.UserStatusREJECTED:
		utils.ErrorResponse(c, "account has been rejected", http.StatusForbidden)
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.Logger.Info().Str("username", req.Username).Msg("login failed: wrong password")
		utils.ErrorResponse(c, "unknown username or wrong password", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("token generation failed")
		utils.ErrorResponse(c, "could not issue login token", http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Str("username", user.Username).Msg("login succeeded")
	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user": gin.H{
			"_id":      user.ID.Hex(),
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	}, "")
}

// Register creates a pending account awaiting admin approval.
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Role == models.UserRoleSUPER_ADMIN {
		utils.ErrorResponse(c, "cannot self-register as administrator", http.StatusBadRequest)
		return
	}

	usersCollection := repository.Collection(repository.UsersCollection)

	count, err := usersCollection.CountDocuments(repository.GetContext(), bson.M{"username": req.Username})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		utils.ErrorResponse(c, "username already taken", http.StatusConflict)
		return
	}

	now := time.Now()
	user := models.User{
		Username:  req.Username,
		Password:  utils.HashPassword(req.Password),
		Email:     req.Email,
		Role:      req.Role,
		Status:    models.UserStatusPENDING,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := usersCollection.InsertOne(repository.GetContext(), user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("username", req.Username).Msg("account registered, pending approval")
	utils.SuccessResponse(c, gin.H{"_id": result.InsertedID}, "account created, awaiting approval", http.StatusCreated)
}

// GetProfile returns the authenticated user's record.
func GetProfile(c *gin.Context) {
	loginUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := repository.FindUserByID(loginUser.ID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("user"))
		return
	}

	utils.SuccessResponse(c, user, "")
}

// ListUsers returns accounts, optionally filtered by status.
func ListUsers(c *gin.Context) {
	query := bson.M{}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	usersCollection := repository.Collection(repository.UsersCollection)
	cursor, err := usersCollection.Find(repository.GetContext(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var users []models.User
	if err := cursor.All(repository.GetContext(), &users); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, users, "")
}

// ApproveUser approves or rejects a pending account and notifies the
// applicant by email on approval.
func ApproveUser(c *gin.Context) {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.ErrorResponse(c, "invalid user id", http.StatusBadRequest)
		return
	}

	var req models.ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Approved {
		update["status"] = models.UserStatusAPPROVED
	} else {
		update["status"] = models.UserStatusREJECTED
		update["rejectionReason"] = req.RejectionReason
	}

	usersCollection := repository.Collection(repository.UsersCollection)
	// FindOneAndUpdate returns the pre-update document, so user.Status here
	// is the status before this request took effect.
	var user models.User
	err = usersCollection.FindOneAndUpdate(repository.GetContext(),
		bson.M{"_id": objID},
		bson.M{"$set": update},
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("user"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if approvalEmailDue(req.Approved, user.Status) && mailer != nil && user.Email != "" {
		// Mail failures are logged inside the mailer and never fail the
		// approval.
		go mailer.SendAccountApproved(repository.GetContext(), user.Email, user.Username)
	}

	utils.SuccessResponse(c, nil, "user updated")
}

// approvalEmailDue reports whether this request newly approved the
// account. prev is the status before the update was applied, so a repeat
// approval of an already-approved user sends nothing.
func approvalEmailDue(approved bool, prev models.UserStatus) bool {
	return approved && prev != models.UserStatusAPPROVED
}
