package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Child is a registered child.
type Child struct {
	ID            primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	FirstName     string               `json:"firstName" bson:"firstName" binding:"required"`
	LastName      string               `json:"lastName" bson:"lastName" binding:"required"`
	Birthdate     string               `json:"birthdate" bson:"birthdate"` // YYYY-MM-DD
	Gender        string               `json:"gender" bson:"gender"`
	AgeGroup      string               `json:"ageGroup" bson:"ageGroup"`
	GuardianIDs   []primitive.ObjectID `json:"guardianIds" bson:"guardianIds"`
	Allergies     string               `json:"allergies,omitempty" bson:"allergies,omitempty"`
	MedicalNotes  string               `json:"medicalNotes,omitempty" bson:"medicalNotes,omitempty"`
	PhotoFileID   string               `json:"photoFileId,omitempty" bson:"photoFileId,omitempty"`
	RegisteredBy  string               `json:"registeredBy" bson:"registeredBy"`
	Active        bool                 `json:"active" bson:"active"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ChildCreateRequest is the registration form for a child.
type ChildCreateRequest struct {
	FirstName    string   `json:"firstName" binding:"required"`
	LastName     string   `json:"lastName" binding:"required"`
	Birthdate    string   `json:"birthdate"`
	Gender       string   `json:"gender"`
	AgeGroup     string   `json:"ageGroup"`
	GuardianIDs  []string `json:"guardianIds"`
	Allergies    string   `json:"allergies,omitempty"`
	MedicalNotes string   `json:"medicalNotes,omitempty"`
}
