package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceStatus enumerates check-in states.
type AttendanceStatus string

const (
	AttendanceCheckedIn  AttendanceStatus = "checked_in"
	AttendanceCheckedOut AttendanceStatus = "checked_out"
)

// AttendanceRecord is one child's presence at one service on one date.
// The security code printed at check-in must be presented at check-out.
type AttendanceRecord struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ChildID      primitive.ObjectID `json:"childId" bson:"childId"`
	ChildName    string             `json:"childName" bson:"childName"`
	ServiceID    string             `json:"serviceId" bson:"serviceId"`
	Date         string             `json:"date" bson:"date"` // YYYY-MM-DD
	SecurityCode string             `json:"securityCode" bson:"securityCode"`
	Status       AttendanceStatus   `json:"status" bson:"status"`
	CheckedInBy  string             `json:"checkedInBy" bson:"checkedInBy"`
	CheckedInAt  time.Time          `json:"checkedInAt" bson:"checkedInAt"`
	CheckedOutBy string             `json:"checkedOutBy,omitempty" bson:"checkedOutBy,omitempty"`
	CheckedOutAt *time.Time         `json:"checkedOutAt,omitempty" bson:"checkedOutAt,omitempty"`
}

type (
	// CheckInRequest checks a child into a service.
	CheckInRequest struct {
		ChildID   string `json:"childId" binding:"required"`
		ServiceID string `json:"serviceId" binding:"required"`
		Date      string `json:"date"` // defaults to today
	}

	// CheckOutRequest checks a child out; code must match the record.
	CheckOutRequest struct {
		RecordID     string `json:"recordId" binding:"required"`
		SecurityCode string `json:"securityCode" binding:"required"`
	}
)
