package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotsDefaults(t *testing.T) {
	assert.Equal(t, DefaultServiceSlots, parseSlots(""))
	assert.Equal(t, DefaultServiceSlots, parseSlots("garbage-with-no-separator"))
}

func TestParseSlots(t *testing.T) {
	slots := parseSlots("09:00=svc-early:Early Service, 18:00=svc-evening")
	require.Len(t, slots, 2)

	assert.Equal(t, ServiceSlot{Time: "09:00", ServiceID: "svc-early", Name: "Early Service"}, slots[0])
	// A missing name falls back to the id.
	assert.Equal(t, ServiceSlot{Time: "18:00", ServiceID: "svc-evening", Name: "svc-evening"}, slots[1])
}

func TestParseSlotsSkipsMalformedEntries(t *testing.T) {
	slots := parseSlots("bad-entry,10:00=svc-first:First Service")
	require.Len(t, slots, 1)
	assert.Equal(t, "svc-first", slots[0].ServiceID)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "Asia/Manila", cfg.Booking.Timezone)
	assert.Equal(t, "Volunteer", cfg.Booking.DefaultRole)
	assert.Len(t, cfg.Booking.Slots, 3)
}
