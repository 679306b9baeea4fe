package models

import "time"

// Service is one of the named ministry service slots. The canonical slot
// times live in configuration; these documents mirror them for the UI and
// carry display-only fields.
type Service struct {
	ServiceID   string    `json:"serviceId" bson:"serviceId"`
	Name        string    `json:"name" bson:"name"`
	StartTime   string    `json:"startTime" bson:"startTime"` // "15:04"
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ServiceUpdateRequest updates display fields of a service.
type ServiceUpdateRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}
