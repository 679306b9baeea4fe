package config

import (
	"os"
	"strconv"
	"strings"
)

// ServiceSlot maps a wall-clock start time to one of the named services.
type ServiceSlot struct {
	Time      string // "15:04" in the booking timezone
	ServiceID string
	Name      string
}

// BookingConfig holds everything the webhook mapper needs. Kept separate
// from the rest of Config so the mapping rules can be exercised without
// the transport layer.
type BookingConfig struct {
	Timezone      string
	Slots         []ServiceSlot
	AdminEmail    string
	WebhookSecret string
	DefaultRole   string
}

// MailConfig for the transactional email API.
type MailConfig struct {
	APIKey    string
	APIBase   string
	FromName  string
	FromEmail string
}

// ProviderConfig for the scheduling provider's REST API (booking backfill).
type ProviderConfig struct {
	APIKey   string
	BaseURL  string
	SyncHour int // local hour of the nightly backfill
}

// Config holds the application configuration.
type Config struct {
	Port     int
	MongoURI string
	MongoDB  string
	JWTKey   string
	Debug    bool

	Booking  BookingConfig
	Mail     MailConfig
	Provider ProviderConfig
}

// DefaultServiceSlots are the three ministry services. Overridable via
// SERVICE_SLOTS ("10:00=svc-first:First Service,13:00=svc-second:Second Service,...").
var DefaultServiceSlots = []ServiceSlot{
	{Time: "10:00", ServiceID: "svc-first", Name: "First Service"},
	{Time: "13:00", ServiceID: "svc-second", Name: "Second Service"},
	{Time: "15:30", ServiceID: "svc-third", Name: "Third Service"},
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	syncHour, _ := strconv.Atoi(getEnv("BOOKING_SYNC_HOUR", "2"))

	return &Config{
		Port:     port,
		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/nextgen"),
		MongoDB:  getEnv("MONGO_DB", "nextgen"),
		JWTKey:   getEnv("JWT_KEY", "your-secret-key"),
		Debug:    getEnv("GIN_MODE", "debug") == "debug",
		Booking: BookingConfig{
			Timezone:      getEnv("BOOKING_TZ", "Asia/Manila"),
			Slots:         parseSlots(os.Getenv("SERVICE_SLOTS")),
			AdminEmail:    getEnv("BOOKING_ADMIN_EMAIL", "admin@nextgenministry.org"),
			WebhookSecret: os.Getenv("BOOKING_WEBHOOK_SECRET"),
			DefaultRole:   getEnv("BOOKING_DEFAULT_ROLE", "Volunteer"),
		},
		Mail: MailConfig{
			APIKey:    os.Getenv("MAIL_API_KEY"),
			APIBase:   getEnv("MAIL_API_BASE", "https://api.resend.com"),
			FromName:  getEnv("MAIL_FROM_NAME", "NextGen Ministry"),
			FromEmail: getEnv("MAIL_FROM_EMAIL", "no-reply@nextgenministry.org"),
		},
		Provider: ProviderConfig{
			APIKey:   os.Getenv("CAL_API_KEY"),
			BaseURL:  getEnv("CAL_API_BASE", "https://api.cal.com/v1"),
			SyncHour: syncHour,
		},
	}
}

// parseSlots parses "HH:MM=id:name" comma lists, falling back to the
// defaults on empty or malformed input.
func parseSlots(raw string) []ServiceSlot {
	if raw == "" {
		return DefaultServiceSlots
	}

	var slots []ServiceSlot
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), "=", 2)
		if len(parts) != 2 {
			continue
		}
		idName := strings.SplitN(parts[1], ":", 2)
		slot := ServiceSlot{Time: parts[0], ServiceID: idName[0]}
		if len(idName) == 2 {
			slot.Name = idName[1]
		} else {
			slot.Name = idName[0]
		}
		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		return DefaultServiceSlots
	}
	return slots
}

// getEnv returns the environment variable or a default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
