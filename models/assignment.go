package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus mirrors the scheduling provider's booking status.
type AssignmentStatus string

const (
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentCancelled AssignmentStatus = "cancelled"
	AssignmentRejected  AssignmentStatus = "rejected"
)

// StaffAssignment links a staff member (or an unresolved attendee) to a
// service slot on a date. Exactly one document exists per external booking
// id; webhook deliveries upsert against that key.
type StaffAssignment struct {
	ID              primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	BookingID       string              `json:"bookingId" bson:"bookingId"`
	StaffID         *primitive.ObjectID `json:"staffId" bson:"staffId"`
	StaffName       string              `json:"staffName,omitempty" bson:"staffName,omitempty"`
	AttendeeEmail   string              `json:"attendeeEmail" bson:"attendeeEmail"`
	ServiceID       string              `json:"serviceId" bson:"serviceId"`
	Date            string              `json:"date" bson:"date"` // YYYY-MM-DD
	Role            string              `json:"role" bson:"role"`
	Status          AssignmentStatus    `json:"status" bson:"status"`
	StartTime       time.Time           `json:"startTime" bson:"startTime"`
	EndTime         time.Time           `json:"endTime" bson:"endTime"`
	DurationMinutes int                 `json:"durationMinutes" bson:"durationMinutes"`
	EventTypeID     int                 `json:"eventTypeId,omitempty" bson:"eventTypeId,omitempty"`
	Location        string              `json:"location,omitempty" bson:"location,omitempty"`
	Notes           string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// AssignmentCreateRequest creates an assignment manually from the admin UI.
type AssignmentCreateRequest struct {
	StaffID   string `json:"staffId" binding:"required"`
	ServiceID string `json:"serviceId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Role      string `json:"role"`
}

// Booking webhook wire types.

// BookingTrigger enumerates the provider's webhook event tags.
const (
	TriggerBookingCreated     = "BOOKING_CREATED"
	TriggerBookingRescheduled = "BOOKING_RESCHEDULED"
	TriggerBookingCancelled   = "BOOKING_CANCELLED"
	TriggerBookingRejected    = "BOOKING_REJECTED"
	TriggerPing               = "PING"
)

// BookingEvent is the webhook envelope.
type BookingEvent struct {
	TriggerEvent string         `json:"triggerEvent"`
	Payload      BookingPayload `json:"payload"`
}

// BookingPerson is an attendee, host or organizer on a booking.
type BookingPerson struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	TimeZone string `json:"timeZone,omitempty"`
}

// ResponseField is a provider custom-field value. The provider emits both
// the object form {"value":"x"} and the bare string form "x".
type ResponseField struct {
	Value string
}

// UnmarshalJSON accepts either form.
func (f *ResponseField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Value = s
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Non-string values (arrays, numbers) are not roles; ignore them.
		f.Value = ""
		return nil
	}
	f.Value = obj.Value
	return nil
}

// BookingPayload is the provider's event body. Field pairs like
// start/startTime exist because the provider renamed fields between
// webhook versions; both are accepted.
type BookingPayload struct {
	UID                 string                   `json:"uid"`
	Start               string                   `json:"start,omitempty"`
	StartTime           string                   `json:"startTime,omitempty"`
	End                 string                   `json:"end,omitempty"`
	EndTime             string                   `json:"endTime,omitempty"`
	Length              int                      `json:"length,omitempty"`
	Status              string                   `json:"status,omitempty"`
	EventTypeID         int                      `json:"eventTypeId,omitempty"`
	Location            string                   `json:"location,omitempty"`
	AdditionalNotes     string                   `json:"additionalNotes,omitempty"`
	Attendees           []BookingPerson          `json:"attendees,omitempty"`
	Hosts               []BookingPerson          `json:"hosts,omitempty"`
	Organizer           *BookingPerson           `json:"organizer,omitempty"`
	UserFieldsResponses map[string]ResponseField `json:"userFieldsResponses,omitempty"`
	Responses           map[string]ResponseField `json:"responses,omitempty"`
}

// StartAt returns the booking start, preferring the newer field name.
func (p *BookingPayload) StartAt() (time.Time, error) {
	raw := p.Start
	if raw == "" {
		raw = p.StartTime
	}
	return time.Parse(time.RFC3339, raw)
}

// EndAt returns the booking end, or the zero time when absent.
func (p *BookingPayload) EndAt() (time.Time, error) {
	raw := p.End
	if raw == "" {
		raw = p.EndTime
	}
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// OrganizerEmail returns the organizer's address, falling back to the
// first host.
func (p *BookingPayload) OrganizerEmail() string {
	if p.Organizer != nil && p.Organizer.Email != "" {
		return p.Organizer.Email
	}
	if len(p.Hosts) > 0 {
		return p.Hosts[0].Email
	}
	return ""
}
