package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Auguzcht/NextGen-sub001/config"
	"github.com/Auguzcht/NextGen-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerForStatus(t *testing.T) {
	assert.Equal(t, models.TriggerBookingCancelled, triggerForStatus("CANCELLED"))
	assert.Equal(t, models.TriggerBookingCancelled, triggerForStatus("cancelled"))
	assert.Equal(t, models.TriggerBookingRejected, triggerForStatus(" rejected "))
	assert.Equal(t, models.TriggerBookingCreated, triggerForStatus("ACCEPTED"))
	assert.Equal(t, models.TriggerBookingCreated, triggerForStatus(""))
}

func TestFetchBookings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.URL.Query().Get("afterStart"))
		assert.NotEmpty(t, r.URL.Query().Get("beforeEnd"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bookings":[{"uid":"bk-1","status":"ACCEPTED"},{"uid":"bk-2","status":"CANCELLED"}]}`))
	}))
	defer srv.Close()

	syncer := NewBookingSyncer(newTestMapper(t), config.ProviderConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})

	bookings, err := syncer.FetchBookings(context.Background(), time.Now(), time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "bk-1", bookings[0].UID)
	assert.Equal(t, "CANCELLED", bookings[1].Status)
}

func TestFetchBookingsRejectedRequest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	syncer := NewBookingSyncer(newTestMapper(t), config.ProviderConfig{
		APIKey:  "bad-key",
		BaseURL: srv.URL,
	})

	_, err := syncer.FetchBookings(context.Background(), time.Now(), time.Now().Add(24*time.Hour))
	require.Error(t, err)
	// 4xx responses are not retried.
	assert.Equal(t, 1, calls)
}
