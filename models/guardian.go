package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Guardian is a parent or guardian of one or more children.
type Guardian struct {
	ID           primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	FirstName    string               `json:"firstName" bson:"firstName" binding:"required"`
	LastName     string               `json:"lastName" bson:"lastName" binding:"required"`
	Relationship string               `json:"relationship" bson:"relationship"`
	Phone        string               `json:"phone" bson:"phone"`
	Email        string               `json:"email,omitempty" bson:"email,omitempty"`
	Address      string               `json:"address,omitempty" bson:"address,omitempty"`
	ChildIDs     []primitive.ObjectID `json:"childIds" bson:"childIds"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// GuardianCreateRequest is the guardian registration form.
type GuardianCreateRequest struct {
	FirstName    string   `json:"firstName" binding:"required"`
	LastName     string   `json:"lastName" binding:"required"`
	Relationship string   `json:"relationship"`
	Phone        string   `json:"phone" binding:"required"`
	Email        string   `json:"email,omitempty" binding:"omitempty,email"`
	Address      string   `json:"address,omitempty"`
	ChildIDs     []string `json:"childIds"`
}
