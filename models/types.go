package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole enumerates application roles.
type UserRole string

const (
	UserRoleSUPER_ADMIN UserRole = "SUPER_ADMIN" // ministry administrator
	UserRoleCOORDINATOR UserRole = "COORDINATOR" // service coordinator
	UserRoleSTAFF       UserRole = "STAFF"       // check-in staff / volunteer
)

// UserStatus enumerates account approval states.
type UserStatus string

const (
	UserStatusPENDING  UserStatus = "pending"
	UserStatusAPPROVED UserStatus = "approved"
	UserStatusREJECTED UserStatus = "rejected"
)

// User is an application account.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username        string             `bson:"username" json:"username"`
	Password        string             `bson:"password" json:"-"`
	Email           string             `bson:"email" json:"email"`
	Role            UserRole           `bson:"role" json:"role"`
	Status          UserStatus         `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

type (
	// LoginRequest is the login form.
	LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// RegisterRequest is the account registration form.
	RegisterRequest struct {
		Username string   `json:"username" binding:"required"`
		Password string   `json:"password" binding:"required,min=6"`
		Email    string   `json:"email" binding:"required,email"`
		Role     UserRole `json:"role" binding:"required"`
	}

	// ApproveUserRequest approves or rejects a pending account.
	ApproveUserRequest struct {
		Approved        bool   `json:"approved"`
		RejectionReason string `json:"rejectionReason,omitempty"`
	}
)
