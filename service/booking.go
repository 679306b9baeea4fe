package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Auguzcht/NextGen-sub001/config"
	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/repository"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssignmentStore is the slice of collection operations the mapper
// writes through. *mongo.Collection satisfies it.
type AssignmentStore interface {
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// StaffFinder looks staff documents up. *mongo.Collection satisfies it.
type StaffFinder interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// BookingMapper turns scheduling-provider booking events into staff
// assignment writes. One instance is shared by the webhook handler and
// the nightly backfill.
type BookingMapper struct {
	cfg         config.BookingConfig
	loc         *time.Location
	assignments AssignmentStore
	staff       StaffFinder
}

// NewBookingMapper resolves the configured timezone. Slot matching uses
// plain wall-clock conversion; a start falling inside a DST transition of
// the configured zone resolves to whatever the zone database says, with
// no disambiguation.
func NewBookingMapper(cfg config.BookingConfig, assignments AssignmentStore, staff StaffFinder) (*BookingMapper, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load booking timezone %q: %w", cfg.Timezone, err)
	}
	return &BookingMapper{cfg: cfg, loc: loc, assignments: assignments, staff: staff}, nil
}

// ResolveServiceSlot maps a booking start to a service id and calendar
// date in the booking timezone. ok is false when no slot matches.
func (m *BookingMapper) ResolveServiceSlot(start time.Time) (serviceID string, date string, ok bool) {
	local := start.In(m.loc)
	hhmm := local.Format("15:04")

	for _, slot := range m.cfg.Slots {
		if slot.Time == hhmm {
			return slot.ServiceID, local.Format("2006-01-02"), true
		}
	}
	return "", "", false
}

// ExtractRole pulls the volunteer role out of the provider's custom-field
// structure, checking the response locations in priority order.
func (m *BookingMapper) ExtractRole(p *models.BookingPayload) string {
	if f, ok := p.UserFieldsResponses["role"]; ok && f.Value != "" {
		return f.Value
	}
	if f, ok := p.Responses["role"]; ok && f.Value != "" {
		return f.Value
	}
	return m.cfg.DefaultRole
}

// ComputeDuration returns the booking length in minutes, preferring the
// provider's explicit length over the end-start difference.
func ComputeDuration(p *models.BookingPayload, start, end time.Time) int {
	if p.Length > 0 {
		return p.Length
	}
	if end.IsZero() || !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// IsSelfBooking reports whether the attendee is the organizer or the
// administrative account booking against itself.
func (m *BookingMapper) IsSelfBooking(attendeeEmail, organizerEmail string) bool {
	attendee := strings.ToLower(strings.TrimSpace(attendeeEmail))
	if attendee == "" {
		return false
	}
	if organizerEmail != "" && attendee == strings.ToLower(strings.TrimSpace(organizerEmail)) {
		return true
	}
	return attendee == strings.ToLower(strings.TrimSpace(m.cfg.AdminEmail))
}

// NormalizeStatus lowercases the provider booking status, defaulting new
// bookings to accepted.
func NormalizeStatus(raw string) models.AssignmentStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return models.AssignmentAccepted
	}
	return models.AssignmentStatus(s)
}

// HandleEvent dispatches one webhook event. A non-nil error means a
// datastore write failed and the delivery should be retried by the
// provider; every other outcome is logged and acknowledged.
func (m *BookingMapper) HandleEvent(ctx context.Context, event *models.BookingEvent) error {
	switch event.TriggerEvent {
	case models.TriggerBookingCreated:
		return m.handleCreated(ctx, &event.Payload)
	case models.TriggerBookingRescheduled:
		return m.handleRescheduled(ctx, &event.Payload)
	case models.TriggerBookingCancelled:
		return m.handleCancelled(ctx, &event.Payload)
	case models.TriggerBookingRejected:
		return m.handleRejected(ctx, &event.Payload)
	default:
		utils.LogWarn(map[string]interface{}{
			"triggerEvent": event.TriggerEvent,
			"bookingId":    event.Payload.UID,
		}, "ignoring unrecognized booking event")
		return nil
	}
}

// handleCreated writes one assignment row keyed by the external booking
// id. An existing row with the same id is fully overwritten.
func (m *BookingMapper) handleCreated(ctx context.Context, p *models.BookingPayload) error {
	if len(p.Attendees) == 0 {
		utils.LogWarn(map[string]interface{}{"bookingId": p.UID}, "booking has no attendees, discarding")
		return nil
	}
	attendee := p.Attendees[0]

	if m.IsSelfBooking(attendee.Email, p.OrganizerEmail()) {
		utils.LogInfo(map[string]interface{}{
			"bookingId": p.UID,
			"email":     attendee.Email,
		}, "skipping self-booking")
		return nil
	}

	start, err := p.StartAt()
	if err != nil {
		utils.LogWarn(map[string]interface{}{
			"bookingId": p.UID,
			"error":     err.Error(),
		}, "booking has unparseable start time, discarding")
		return nil
	}

	serviceID, date, ok := m.ResolveServiceSlot(start)
	if !ok {
		utils.LogWarn(map[string]interface{}{
			"bookingId": p.UID,
			"start":     start.In(m.loc).Format(time.RFC3339),
		}, "booking start matches no service slot, discarding")
		return nil
	}

	end, err := p.EndAt()
	if err != nil {
		end = time.Time{}
	}

	staffID, staffName := m.resolveStaff(ctx, attendee.Email)
	if staffID == nil {
		utils.LogWarn(map[string]interface{}{
			"bookingId": p.UID,
			"email":     attendee.Email,
		}, "no active staff matches attendee email, writing unresolved assignment")
	}

	now := time.Now()
	assignment := models.StaffAssignment{
		BookingID:       p.UID,
		StaffID:         staffID,
		StaffName:       staffName,
		AttendeeEmail:   attendee.Email,
		ServiceID:       serviceID,
		Date:            date,
		Role:            m.ExtractRole(p),
		Status:          NormalizeStatus(p.Status),
		StartTime:       start.UTC(),
		EndTime:         end.UTC(),
		DurationMinutes: ComputeDuration(p, start, end),
		EventTypeID:     p.EventTypeID,
		Location:        p.Location,
		Notes:           p.AdditionalNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := repository.ExecuteDbOperation(func() (interface{}, error) {
		return m.assignments.ReplaceOne(ctx,
			bson.M{"bookingId": p.UID},
			assignment,
			options.Replace().SetUpsert(true),
		)
	}, 3)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"bookingId": p.UID}, "assignment upsert failed")
		return fmt.Errorf("upsert assignment %s: %w", p.UID, err)
	}
	utils.LogDbOperation("replaceOne", repository.AssignmentsCollection, bson.M{"bookingId": p.UID}, result)

	utils.LogInfo(map[string]interface{}{
		"bookingId": p.UID,
		"serviceId": serviceID,
		"date":      date,
	}, "assignment upserted")
	return nil
}

// handleRescheduled patches only the temporal and service fields; a
// missing row is a silent zero-row update.
func (m *BookingMapper) handleRescheduled(ctx context.Context, p *models.BookingPayload) error {
	start, err := p.StartAt()
	if err != nil {
		utils.LogWarn(map[string]interface{}{
			"bookingId": p.UID,
			"error":     err.Error(),
		}, "reschedule has unparseable start time, discarding")
		return nil
	}

	serviceID, date, ok := m.ResolveServiceSlot(start)
	if !ok {
		utils.LogWarn(map[string]interface{}{
			"bookingId": p.UID,
			"start":     start.In(m.loc).Format(time.RFC3339),
		}, "rescheduled start matches no service slot, discarding")
		return nil
	}

	end, err := p.EndAt()
	if err != nil {
		end = time.Time{}
	}

	result, err := m.assignments.UpdateOne(ctx,
		bson.M{"bookingId": p.UID},
		bson.M{"$set": bson.M{
			"serviceId":       serviceID,
			"date":            date,
			"startTime":       start.UTC(),
			"endTime":         end.UTC(),
			"durationMinutes": ComputeDuration(p, start, end),
			"updatedAt":       time.Now(),
		}},
	)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"bookingId": p.UID}, "assignment reschedule failed")
		return fmt.Errorf("reschedule assignment %s: %w", p.UID, err)
	}

	utils.LogInfo(map[string]interface{}{
		"bookingId": p.UID,
		"matched":   result.MatchedCount,
		"serviceId": serviceID,
		"date":      date,
	}, "assignment rescheduled")
	return nil
}

// handleCancelled hard-deletes the row; absence is a no-op.
func (m *BookingMapper) handleCancelled(ctx context.Context, p *models.BookingPayload) error {
	result, err := m.assignments.DeleteOne(ctx, bson.M{"bookingId": p.UID})
	if err != nil {
		utils.LogError(err, map[string]interface{}{"bookingId": p.UID}, "assignment delete failed")
		return fmt.Errorf("delete assignment %s: %w", p.UID, err)
	}

	utils.LogInfo(map[string]interface{}{
		"bookingId": p.UID,
		"deleted":   result.DeletedCount,
	}, "assignment cancelled")
	return nil
}

// handleRejected patches the status field only.
func (m *BookingMapper) handleRejected(ctx context.Context, p *models.BookingPayload) error {
	status := NormalizeStatus(p.Status)
	if p.Status == "" {
		status = models.AssignmentRejected
	}

	result, err := m.assignments.UpdateOne(ctx,
		bson.M{"bookingId": p.UID},
		bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"bookingId": p.UID}, "assignment status patch failed")
		return fmt.Errorf("patch assignment status %s: %w", p.UID, err)
	}

	utils.LogInfo(map[string]interface{}{
		"bookingId": p.UID,
		"matched":   result.MatchedCount,
		"status":    status,
	}, "assignment rejected")
	return nil
}

// resolveStaff looks up an active staff member by case-insensitive email.
func (m *BookingMapper) resolveStaff(ctx context.Context, email string) (*primitive.ObjectID, string) {
	if email == "" {
		return nil, ""
	}

	pattern := "^" + regexp.QuoteMeta(strings.TrimSpace(email)) + "$"

	var staff models.Staff
	err := m.staff.FindOne(ctx, bson.M{
		"email":    bson.M{"$regex": pattern, "$options": "i"},
		"isActive": true,
	}).Decode(&staff)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			utils.LogError(err, map[string]interface{}{"email": email}, "staff lookup failed")
		}
		return nil, ""
	}

	return &staff.ID, staff.FirstName + " " + staff.LastName
}
