package service

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/Auguzcht/NextGen-sub001/config"
	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func testBookingConfig() config.BookingConfig {
	return config.BookingConfig{
		Timezone:    "Asia/Manila",
		Slots:       config.DefaultServiceSlots,
		AdminEmail:  "admin@nextgenministry.org",
		DefaultRole: "Volunteer",
	}
}

func newTestMapper(t *testing.T) *BookingMapper {
	t.Helper()
	mapper, err := NewBookingMapper(testBookingConfig(), nil, nil)
	require.NoError(t, err)
	return mapper
}

func TestNewBookingMapperBadTimezone(t *testing.T) {
	cfg := testBookingConfig()
	cfg.Timezone = "Not/AZone"
	_, err := NewBookingMapper(cfg, nil, nil)
	require.Error(t, err)
}

func TestResolveServiceSlot(t *testing.T) {
	mapper := newTestMapper(t)

	tests := []struct {
		name        string
		start       string
		wantService string
		wantDate    string
		wantOK      bool
	}{
		{"first service local offset", "2025-01-05T10:00:00+08:00", "svc-first", "2025-01-05", true},
		{"second service", "2025-01-05T13:00:00+08:00", "svc-second", "2025-01-05", true},
		{"third service", "2025-01-05T15:30:00+08:00", "svc-third", "2025-01-05", true},
		{"utc converted to local wall clock", "2025-01-05T02:00:00Z", "svc-first", "2025-01-05", true},
		{"utc crossing the date line", "2025-01-04T17:00:00-09:00", "svc-first", "2025-01-05", true},
		{"no matching slot", "2025-01-05T11:15:00+08:00", "", "", false},
		{"near miss by one minute", "2025-01-05T10:01:00+08:00", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := time.Parse(time.RFC3339, tt.start)
			require.NoError(t, err)

			serviceID, date, ok := mapper.ResolveServiceSlot(start)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantService, serviceID)
			assert.Equal(t, tt.wantDate, date)
		})
	}
}

func TestExtractRole(t *testing.T) {
	mapper := newTestMapper(t)

	t.Run("user fields win", func(t *testing.T) {
		p := &models.BookingPayload{
			UserFieldsResponses: map[string]models.ResponseField{"role": {Value: "Teacher"}},
			Responses:           map[string]models.ResponseField{"role": {Value: "Helper"}},
		}
		assert.Equal(t, "Teacher", mapper.ExtractRole(p))
	})

	t.Run("falls back to responses", func(t *testing.T) {
		p := &models.BookingPayload{
			Responses: map[string]models.ResponseField{"role": {Value: "Helper"}},
		}
		assert.Equal(t, "Helper", mapper.ExtractRole(p))
	})

	t.Run("empty value falls through", func(t *testing.T) {
		p := &models.BookingPayload{
			UserFieldsResponses: map[string]models.ResponseField{"role": {Value: ""}},
			Responses:           map[string]models.ResponseField{"role": {Value: "Helper"}},
		}
		assert.Equal(t, "Helper", mapper.ExtractRole(p))
	})

	t.Run("default when absent", func(t *testing.T) {
		assert.Equal(t, "Volunteer", mapper.ExtractRole(&models.BookingPayload{}))
	})
}

func TestResponseFieldUnmarshal(t *testing.T) {
	var p models.BookingPayload
	raw := `{
		"uid": "abc",
		"responses": {"role": "Greeter", "extra": {"value": "x"}, "numeric": 7}
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "Greeter", p.Responses["role"].Value)
	assert.Equal(t, "x", p.Responses["extra"].Value)
	assert.Equal(t, "", p.Responses["numeric"].Value)
}

func TestComputeDuration(t *testing.T) {
	start, _ := time.Parse(time.RFC3339, "2025-01-05T10:00:00+08:00")
	end, _ := time.Parse(time.RFC3339, "2025-01-05T11:30:00+08:00")

	t.Run("explicit length wins", func(t *testing.T) {
		p := &models.BookingPayload{Length: 45}
		assert.Equal(t, 45, ComputeDuration(p, start, end))
	})

	t.Run("derived from end minus start", func(t *testing.T) {
		assert.Equal(t, 90, ComputeDuration(&models.BookingPayload{}, start, end))
	})

	t.Run("zero end time", func(t *testing.T) {
		assert.Equal(t, 0, ComputeDuration(&models.BookingPayload{}, start, time.Time{}))
	})

	t.Run("end before start", func(t *testing.T) {
		assert.Equal(t, 0, ComputeDuration(&models.BookingPayload{}, end, start))
	})
}

func TestIsSelfBooking(t *testing.T) {
	mapper := newTestMapper(t)

	tests := []struct {
		name      string
		attendee  string
		organizer string
		want      bool
	}{
		{"matches organizer", "host@example.com", "host@example.com", true},
		{"matches organizer case insensitive", "Host@Example.COM", "host@example.com", true},
		{"matches admin account", "Admin@NextGenMinistry.org", "other@example.com", true},
		{"regular attendee", "volunteer@example.com", "host@example.com", false},
		{"empty attendee", "", "host@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapper.IsSelfBooking(tt.attendee, tt.organizer))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, models.AssignmentAccepted, NormalizeStatus(""))
	assert.Equal(t, models.AssignmentAccepted, NormalizeStatus("ACCEPTED"))
	assert.Equal(t, models.AssignmentCancelled, NormalizeStatus("Cancelled"))
	assert.Equal(t, models.AssignmentRejected, NormalizeStatus("rejected"))
	assert.Equal(t, models.AssignmentStatus("pending"), NormalizeStatus("PENDING"))
}

func TestHandleEventUnknownTrigger(t *testing.T) {
	mapper := newTestMapper(t)

	event := &models.BookingEvent{
		TriggerEvent: "MEETING_ENDED",
		Payload:      models.BookingPayload{UID: "booking-1"},
	}
	assert.NoError(t, mapper.HandleEvent(context.Background(), event))
}

func TestPayloadTimeAccessors(t *testing.T) {
	t.Run("start prefers newer field", func(t *testing.T) {
		p := &models.BookingPayload{
			Start:     "2025-01-05T10:00:00+08:00",
			StartTime: "2025-01-05T13:00:00+08:00",
		}
		start, err := p.StartAt()
		require.NoError(t, err)
		assert.Equal(t, "2025-01-05T10:00:00+08:00", start.Format(time.RFC3339))
	})

	t.Run("start falls back to legacy field", func(t *testing.T) {
		p := &models.BookingPayload{StartTime: "2025-01-05T13:00:00+08:00"}
		start, err := p.StartAt()
		require.NoError(t, err)
		assert.Equal(t, "2025-01-05T13:00:00+08:00", start.Format(time.RFC3339))
	})

	t.Run("missing start is an error", func(t *testing.T) {
		_, err := (&models.BookingPayload{}).StartAt()
		assert.Error(t, err)
	})

	t.Run("missing end is zero time", func(t *testing.T) {
		end, err := (&models.BookingPayload{}).EndAt()
		require.NoError(t, err)
		assert.True(t, end.IsZero())
	})
}

func TestOrganizerEmailFallback(t *testing.T) {
	t.Run("organizer preferred", func(t *testing.T) {
		p := &models.BookingPayload{
			Organizer: &models.BookingPerson{Email: "organizer@example.com"},
			Hosts:     []models.BookingPerson{{Email: "host@example.com"}},
		}
		assert.Equal(t, "organizer@example.com", p.OrganizerEmail())
	})

	t.Run("first host fallback", func(t *testing.T) {
		p := &models.BookingPayload{
			Hosts: []models.BookingPerson{{Email: "host@example.com"}, {Email: "second@example.com"}},
		}
		assert.Equal(t, "host@example.com", p.OrganizerEmail())
	})

	t.Run("empty when neither present", func(t *testing.T) {
		assert.Equal(t, "", (&models.BookingPayload{}).OrganizerEmail())
	})
}
