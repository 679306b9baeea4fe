package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff is a ministry staff member or volunteer. Email is the key used to
// resolve booking attendees against the directory.
type Staff struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FirstName string             `json:"firstName" bson:"firstName" binding:"required"`
	LastName  string             `json:"lastName" bson:"lastName" binding:"required"`
	Email     string             `json:"email" bson:"email" binding:"required"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      string             `json:"role" bson:"role"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// StaffCreateRequest is the staff registration form.
type StaffCreateRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"isActive,omitempty"`
}
