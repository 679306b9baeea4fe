package controllers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

type fakeProcessor struct {
	events []models.BookingEvent
	err    error
}

func (f *fakeProcessor) HandleEvent(ctx context.Context, event *models.BookingEvent) error {
	f.events = append(f.events, *event)
	return f.err
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookRouter(processor BookingProcessor, secret string) *gin.Engine {
	router := gin.New()
	handler := NewWebhookHandler(processor, secret)
	router.GET("/api/webhooks/bookings", handler.Liveness)
	router.POST("/api/webhooks/bookings", handler.Receive)
	return router
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/bookings", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"triggerEvent":"PING"}`)
	assert.True(t, VerifySignature(body, sign(body, "s3cret"), "s3cret"))
	assert.False(t, VerifySignature(body, sign(body, "wrong"), "s3cret"))
	assert.False(t, VerifySignature(body, "not-hex", "s3cret"))
}

func TestWebhookLiveness(t *testing.T) {
	router := newWebhookRouter(&fakeProcessor{}, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestWebhookSignatureMismatch(t *testing.T) {
	processor := &fakeProcessor{}
	router := newWebhookRouter(processor, "s3cret")

	body := []byte(`{"triggerEvent":"BOOKING_CREATED","payload":{"uid":"bk-1"}}`)
	w := postWebhook(router, body, sign(body, "wrong-secret"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, processor.events)
}

func TestWebhookValidSignature(t *testing.T) {
	processor := &fakeProcessor{}
	router := newWebhookRouter(processor, "s3cret")

	body := []byte(`{"triggerEvent":"BOOKING_CREATED","payload":{"uid":"bk-1"}}`)
	w := postWebhook(router, body, sign(body, "s3cret"))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, processor.events, 1)
	assert.Equal(t, models.TriggerBookingCreated, processor.events[0].TriggerEvent)
	assert.Equal(t, "bk-1", processor.events[0].Payload.UID)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["received"])
	assert.Equal(t, "BOOKING_CREATED", resp["event"])
}

func TestWebhookUnsignedDeliveryWithoutSecret(t *testing.T) {
	processor := &fakeProcessor{}
	router := newWebhookRouter(processor, "")

	body := []byte(`{"triggerEvent":"BOOKING_CANCELLED","payload":{"uid":"bk-2"}}`)
	w := postWebhook(router, body, "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, processor.events, 1)
	assert.Equal(t, models.TriggerBookingCancelled, processor.events[0].TriggerEvent)
}

func TestWebhookPing(t *testing.T) {
	processor := &fakeProcessor{}
	router := newWebhookRouter(processor, "s3cret")

	body := []byte(`{"triggerEvent":"PING"}`)
	w := postWebhook(router, body, sign(body, "s3cret"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, processor.events)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["received"])
}

func TestWebhookEmptyTrigger(t *testing.T) {
	processor := &fakeProcessor{}
	router := newWebhookRouter(processor, "s3cret")

	body := []byte(`{"payload":{"uid":"bk-3"}}`)
	w := postWebhook(router, body, sign(body, "s3cret"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, processor.events)
}

func TestWebhookMalformedBody(t *testing.T) {
	processor := &fakeProcessor{}
	router := newWebhookRouter(processor, "s3cret")

	body := []byte(`{"triggerEvent":`)
	w := postWebhook(router, body, sign(body, "s3cret"))

	// Malformed bodies are acknowledged so the provider does not retry them.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, processor.events)
}

func TestWebhookProcessingFailure(t *testing.T) {
	processor := &fakeProcessor{err: assert.AnError}
	router := newWebhookRouter(processor, "s3cret")

	body := []byte(`{"triggerEvent":"BOOKING_RESCHEDULED","payload":{"uid":"bk-4"}}`)
	w := postWebhook(router, body, sign(body, "s3cret"))

	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Len(t, processor.events, 1)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["received"])
	assert.Equal(t, "BOOKING_RESCHEDULED", resp["event"])
}
