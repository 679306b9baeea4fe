package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the provider's HMAC digest of the raw body.
const SignatureHeader = "x-cal-signature-256"

// BookingProcessor consumes decoded booking events.
type BookingProcessor interface {
	HandleEvent(ctx context.Context, event *models.BookingEvent) error
}

// WebhookHandler receives scheduling-provider webhook deliveries.
type WebhookHandler struct {
	processor BookingProcessor
	secret    string
}

// NewWebhookHandler builds the handler. An empty secret disables
// signature verification.
func NewWebhookHandler(processor BookingProcessor, secret string) *WebhookHandler {
	return &WebhookHandler{processor: processor, secret: secret}
}

// VerifySignature checks an HMAC-SHA256 hex digest of body against the
// shared secret.
func VerifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Liveness answers GET probes on the webhook path.
func (h *WebhookHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Receive handles one webhook delivery. Once the signature check passes,
// mapping problems are acknowledged with 200 and logged; only a datastore
// write failure is surfaced (502) so the provider's retry machinery
// re-delivers. Re-delivery is safe because assignment writes upsert on
// the booking id.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, "unable to read request body", http.StatusBadRequest)
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if h.secret != "" && signature != "" {
		if !VerifySignature(body, signature, h.secret) {
			utils.Logger.Warn().Str("signature", signature).Msg("webhook signature mismatch")
			utils.ErrorResponse(c, "invalid signature", http.StatusUnauthorized)
			return
		}
	} else {
		// Verification is skipped when either side is missing. Kept for
		// provider test deliveries, which arrive unsigned.
		utils.Logger.Warn().
			Bool("secretConfigured", h.secret != "").
			Bool("signaturePresent", signature != "").
			Msg("webhook signature verification skipped")
	}

	var event models.BookingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.Logger.Warn().Err(err).Msg("malformed webhook body")
		h.acknowledge(c, "")
		return
	}

	// Connectivity test: no trigger, or an explicit ping.
	if event.TriggerEvent == "" || event.TriggerEvent == models.TriggerPing {
		utils.Logger.Info().Str("triggerEvent", event.TriggerEvent).Msg("webhook ping")
		h.acknowledge(c, event.TriggerEvent)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"triggerEvent": event.TriggerEvent,
		"bookingId":    event.Payload.UID,
	}, "webhook event received")

	if err := h.processor.HandleEvent(c.Request.Context(), &event); err != nil {
		utils.LogError(err, map[string]interface{}{
			"triggerEvent": event.TriggerEvent,
			"bookingId":    event.Payload.UID,
		}, "webhook event processing failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"received":  false,
			"event":     event.TriggerEvent,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	h.acknowledge(c, event.TriggerEvent)
}

// acknowledge writes the provider's expected envelope.
func (h *WebhookHandler) acknowledge(c *gin.Context, event string) {
	c.JSON(http.StatusOK, gin.H{
		"received":  true,
		"event":     event,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
