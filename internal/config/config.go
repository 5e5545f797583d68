package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
)

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Innkeeper"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Backend  string `envconfig:"BACKEND" default:"postgres"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"innkeeper"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Hotel struct {
		Timezone   string `envconfig:"HOTEL_TIMEZONE" default:"UTC"`
		HoldPolicy string `envconfig:"RESERVATION_HOLD_POLICY" default:"HOLD_ON_CREATE"`
	}

	Invoice struct {
		Prefix      string `envconfig:"INVOICE_PREFIX" default:"HPL"`
		DueDays     int    `envconfig:"INVOICE_DUE_DAYS" default:"30"`
		Overpayment string `envconfig:"OVERPAYMENT_POLICY" default:"ALLOW"`
	}

	Notify struct {
		WebhookURL string        `envconfig:"NOTIFY_WEBHOOK_URL"`
		Timeout    time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) Backend() Backend {
	return Backend(strings.ToLower(c.App.Backend))
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Hotel.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading HOTEL_TIMEZONE %q: %w", c.Hotel.Timezone, err)
	}

	return loc, nil
}

func (c *Config) HoldPolicy() reservation.HoldPolicy {
	return reservation.HoldPolicy(strings.ToUpper(c.Hotel.HoldPolicy))
}

func (c *Config) OverpaymentPolicy() invoice.OverpaymentPolicy {
	return invoice.OverpaymentPolicy(strings.ToUpper(c.Invoice.Overpayment))
}

func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// Validate rejects enumerations and values the services would otherwise silently default.
func (c *Config) Validate() error {
	switch c.Backend() {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, c.App.Backend)
	}

	if !c.HoldPolicy().Valid() {
		return fmt.Errorf("RESERVATION_HOLD_POLICY must be %q or %q, got %q",
			reservation.HoldOnCreate, reservation.HoldOnConfirm, c.Hotel.HoldPolicy)
	}

	if !c.OverpaymentPolicy().Valid() {
		return fmt.Errorf("OVERPAYMENT_POLICY must be %q or %q, got %q",
			invoice.OverpaymentAllow, invoice.OverpaymentReject, c.Invoice.Overpayment)
	}

	if strings.TrimSpace(c.Invoice.Prefix) == "" {
		return fmt.Errorf("INVOICE_PREFIX must not be empty")
	}

	if c.Invoice.DueDays <= 0 {
		return fmt.Errorf("INVOICE_DUE_DAYS must be positive, got %d", c.Invoice.DueDays)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
