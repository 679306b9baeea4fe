package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Auguzcht/NextGen-sub001/config"
	"github.com/Auguzcht/NextGen-sub001/models"
	"github.com/Auguzcht/NextGen-sub001/utils"

	"github.com/flowchartsman/retry"
	"golang.org/x/sync/errgroup"
)

// ScheduleDailyTaskAt runs task every day at the given local time.
func ScheduleDailyTaskAt(hour, min, sec int, task func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(next.Sub(now))
			task()
		}
	}()
}

// BookingSyncer backfills assignments from the scheduling provider's REST
// API, catching webhook deliveries the service missed while down. Replays
// are safe because every write goes through the same upsert key.
type BookingSyncer struct {
	mapper *BookingMapper
	cfg    config.ProviderConfig
	client *http.Client
}

// NewBookingSyncer builds a syncer over the shared mapper.
func NewBookingSyncer(mapper *BookingMapper, cfg config.ProviderConfig) *BookingSyncer {
	return &BookingSyncer{
		mapper: mapper,
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Start schedules the nightly backfill covering yesterday through the next
// two weeks. A negative sync hour disables it.
func (s *BookingSyncer) Start() {
	if s.cfg.SyncHour < 0 || s.cfg.APIKey == "" {
		utils.Logger.Info().Msg("booking backfill disabled")
		return
	}

	ScheduleDailyTaskAt(s.cfg.SyncHour, 0, 0, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		from := time.Now().AddDate(0, 0, -1)
		to := time.Now().AddDate(0, 0, 14)
		if err := s.SyncRange(ctx, from, to); err != nil {
			utils.LogError(err, nil, "nightly booking backfill failed")
		}
	})
}

type bookingListResponse struct {
	Bookings []models.BookingPayload `json:"bookings"`
}

// FetchBookings pulls the provider's bookings inside [from, to].
func (s *BookingSyncer) FetchBookings(ctx context.Context, from, to time.Time) ([]models.BookingPayload, error) {
	endpoint := fmt.Sprintf("%s/bookings?%s", strings.TrimRight(s.cfg.BaseURL, "/"), url.Values{
		"afterStart": []string{from.UTC().Format(time.RFC3339)},
		"beforeEnd":  []string{to.UTC().Format(time.RFC3339)},
	}.Encode())

	var bookings []models.BookingPayload
	retrier := retry.NewRetrier(5, 100*time.Millisecond, time.Second)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.Stop(err)
		}
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("provider returned %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return retry.Stop(fmt.Errorf("provider rejected request: %d", resp.StatusCode))
		}

		var parsed bookingListResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return retry.Stop(fmt.Errorf("decode provider response: %w", err))
		}
		bookings = parsed.Bookings
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// SyncRange fetches day windows concurrently and replays each booking
// through the event mapper.
func (s *BookingSyncer) SyncRange(ctx context.Context, from, to time.Time) error {
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	results := make([][]models.BookingPayload, days)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := 0; i < days; i++ {
		i := i
		dayStart := from.AddDate(0, 0, i).Truncate(24 * time.Hour)
		g.Go(func() error {
			bookings, err := s.FetchBookings(gctx, dayStart, dayStart.Add(24*time.Hour))
			if err != nil {
				return fmt.Errorf("fetch bookings for %s: %w", dayStart.Format("2006-01-02"), err)
			}
			results[i] = bookings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var replayed, failed int
	for _, dayBookings := range results {
		for i := range dayBookings {
			event := &models.BookingEvent{
				TriggerEvent: triggerForStatus(dayBookings[i].Status),
				Payload:      dayBookings[i],
			}
			if err := s.mapper.HandleEvent(ctx, event); err != nil {
				utils.LogError(err, map[string]interface{}{
					"bookingId": dayBookings[i].UID,
				}, "backfill replay failed")
				failed++
				continue
			}
			replayed++
		}
	}

	utils.LogInfo(map[string]interface{}{
		"replayed": replayed,
		"failed":   failed,
		"from":     from.Format("2006-01-02"),
		"to":       to.Format("2006-01-02"),
	}, "booking backfill complete")

	if failed > 0 {
		return fmt.Errorf("backfill: %d of %d bookings failed", failed, failed+replayed)
	}
	return nil
}

// triggerForStatus maps a fetched booking's status onto the webhook event
// the mapper would have seen.
func triggerForStatus(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "CANCELLED":
		return models.TriggerBookingCancelled
	case "REJECTED":
		return models.TriggerBookingRejected
	default:
		return models.TriggerBookingCreated
	}
}
