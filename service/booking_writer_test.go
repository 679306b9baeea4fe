package service

import (
	"context"
	"testing"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeAssignmentStore keeps rows by booking id and records every $set
// document it receives.
type fakeAssignmentStore struct {
	rows    map[string]models.StaffAssignment
	updates []bson.M
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{rows: map[string]models.StaffAssignment{}}
}

func (f *fakeAssignmentStore) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	id := filter.(bson.M)["bookingId"].(string)
	_, existed := f.rows[id]
	f.rows[id] = replacement.(models.StaffAssignment)
	if existed {
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
}

func (f *fakeAssignmentStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	id := filter.(bson.M)["bookingId"].(string)
	set := update.(bson.M)["$set"].(bson.M)
	f.updates = append(f.updates, set)

	row, ok := f.rows[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	for k, v := range set {
		switch k {
		case "status":
			row.Status = v.(models.AssignmentStatus)
		case "serviceId":
			row.ServiceID = v.(string)
		case "date":
			row.Date = v.(string)
		case "startTime":
			row.StartTime = v.(time.Time)
		case "endTime":
			row.EndTime = v.(time.Time)
		case "durationMinutes":
			row.DurationMinutes = v.(int)
		case "updatedAt":
			row.UpdatedAt = v.(time.Time)
		}
	}
	f.rows[id] = row
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeAssignmentStore) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	id := filter.(bson.M)["bookingId"].(string)
	if _, ok := f.rows[id]; !ok {
		return &mongo.DeleteResult{}, nil
	}
	delete(f.rows, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

type fakeStaffFinder struct {
	staff *models.Staff
}

func (f fakeStaffFinder) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	if f.staff == nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(f.staff, nil, nil)
}

func newWriterMapper(t *testing.T, store *fakeAssignmentStore, staff StaffFinder) *BookingMapper {
	t.Helper()
	mapper, err := NewBookingMapper(testBookingConfig(), store, staff)
	require.NoError(t, err)
	return mapper
}

func createdEvent(uid string) *models.BookingEvent {
	return &models.BookingEvent{
		TriggerEvent: models.TriggerBookingCreated,
		Payload: models.BookingPayload{
			UID:       uid,
			Start:     "2025-01-05T10:00:00+08:00",
			End:       "2025-01-05T11:00:00+08:00",
			Attendees: []models.BookingPerson{{Email: "vol@example.com"}},
		},
	}
}

func seedAssignment(store *fakeAssignmentStore, uid string) models.StaffAssignment {
	row := models.StaffAssignment{
		BookingID:       uid,
		AttendeeEmail:   "vol@example.com",
		ServiceID:       "svc-first",
		Date:            "2025-01-05",
		Role:            "Teacher",
		Status:          models.AssignmentAccepted,
		DurationMinutes: 60,
	}
	store.rows[uid] = row
	return row
}

func TestCreatedUpsertIsIdempotent(t *testing.T) {
	store := newFakeAssignmentStore()
	mapper := newWriterMapper(t, store, fakeStaffFinder{})

	require.NoError(t, mapper.HandleEvent(context.Background(), createdEvent("bk-10")))

	second := createdEvent("bk-10")
	second.Payload.AdditionalNotes = "bring supplies"
	require.NoError(t, mapper.HandleEvent(context.Background(), second))

	require.Len(t, store.rows, 1)
	row := store.rows["bk-10"]
	assert.Equal(t, "svc-first", row.ServiceID)
	assert.Equal(t, "2025-01-05", row.Date)
	assert.Equal(t, 60, row.DurationMinutes)
	// Last delivery wins.
	assert.Equal(t, "bring supplies", row.Notes)
	// No active staff matched, so the row stays unresolved.
	assert.Nil(t, row.StaffID)
}

func TestCreatedResolvesStaffByEmail(t *testing.T) {
	store := newFakeAssignmentStore()
	staffID := primitive.NewObjectID()
	finder := fakeStaffFinder{staff: &models.Staff{
		ID:        staffID,
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "vol@example.com",
		IsActive:  true,
	}}
	mapper := newWriterMapper(t, store, finder)

	require.NoError(t, mapper.HandleEvent(context.Background(), createdEvent("bk-11")))

	row := store.rows["bk-11"]
	require.NotNil(t, row.StaffID)
	assert.Equal(t, staffID, *row.StaffID)
	assert.Equal(t, "Ana Reyes", row.StaffName)
	assert.Equal(t, models.AssignmentAccepted, row.Status)
	assert.Equal(t, "Volunteer", row.Role)
}

func TestRejectedPatchesOnlyStatus(t *testing.T) {
	store := newFakeAssignmentStore()
	mapper := newWriterMapper(t, store, fakeStaffFinder{})
	before := seedAssignment(store, "bk-12")

	event := &models.BookingEvent{
		TriggerEvent: models.TriggerBookingRejected,
		Payload:      models.BookingPayload{UID: "bk-12"},
	}
	require.NoError(t, mapper.HandleEvent(context.Background(), event))

	require.Len(t, store.updates, 1)
	keys := make([]string, 0, len(store.updates[0]))
	for k := range store.updates[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"status", "updatedAt"}, keys)

	row := store.rows["bk-12"]
	assert.Equal(t, models.AssignmentRejected, row.Status)
	assert.Equal(t, before.ServiceID, row.ServiceID)
	assert.Equal(t, before.Date, row.Date)
	assert.Equal(t, before.Role, row.Role)
	assert.Equal(t, before.DurationMinutes, row.DurationMinutes)
}

func TestCancelledRemovesRow(t *testing.T) {
	store := newFakeAssignmentStore()
	mapper := newWriterMapper(t, store, fakeStaffFinder{})
	seedAssignment(store, "bk-13")

	event := &models.BookingEvent{
		TriggerEvent: models.TriggerBookingCancelled,
		Payload:      models.BookingPayload{UID: "bk-13"},
	}
	require.NoError(t, mapper.HandleEvent(context.Background(), event))
	assert.Empty(t, store.rows)

	// A repeated cancel finds nothing and is still acknowledged.
	require.NoError(t, mapper.HandleEvent(context.Background(), event))
	assert.Empty(t, store.rows)
}

func TestRescheduledPatchesTemporalFields(t *testing.T) {
	store := newFakeAssignmentStore()
	mapper := newWriterMapper(t, store, fakeStaffFinder{})
	before := seedAssignment(store, "bk-14")

	event := &models.BookingEvent{
		TriggerEvent: models.TriggerBookingRescheduled,
		Payload: models.BookingPayload{
			UID:   "bk-14",
			Start: "2025-01-12T15:30:00+08:00",
			End:   "2025-01-12T17:00:00+08:00",
		},
	}
	require.NoError(t, mapper.HandleEvent(context.Background(), event))

	row := store.rows["bk-14"]
	assert.Equal(t, "svc-third", row.ServiceID)
	assert.Equal(t, "2025-01-12", row.Date)
	assert.Equal(t, 90, row.DurationMinutes)
	// Status and role survive a reschedule.
	assert.Equal(t, before.Status, row.Status)
	assert.Equal(t, before.Role, row.Role)
}

func TestRescheduledMissingRowIsSilent(t *testing.T) {
	store := newFakeAssignmentStore()
	mapper := newWriterMapper(t, store, fakeStaffFinder{})

	event := &models.BookingEvent{
		TriggerEvent: models.TriggerBookingRescheduled,
		Payload: models.BookingPayload{
			UID:   "bk-ghost",
			Start: "2025-01-12T13:00:00+08:00",
		},
	}
	require.NoError(t, mapper.HandleEvent(context.Background(), event))
	assert.Empty(t, store.rows)
}
