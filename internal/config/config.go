package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	ReservationTTL  time.Duration
	ReaperInterval  time.Duration
	ReaperBatchSize int
	PaymentProvider string
	InvoiceTimeZone string
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultReservationTTL  = 15 * time.Minute
	defaultReaperInterval  = time.Minute
	defaultReaperBatchSize = 100
	defaultPaymentProvider = "mock"
	defaultInvoiceTimeZone = "Europe/Warsaw"
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		ReservationTTL:  getDuration(lookup, "RESERVATION_TTL", defaultReservationTTL),
		ReaperInterval:  getDuration(lookup, "REAPER_INTERVAL", defaultReaperInterval),
		ReaperBatchSize: getInt(lookup, "REAPER_BATCH_SIZE", defaultReaperBatchSize),
		PaymentProvider: getString(lookup, "PAYMENT_PROVIDER", defaultPaymentProvider),
		InvoiceTimeZone: getString(lookup, "INVOICE_TIME_ZONE", defaultInvoiceTimeZone),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("ticketline", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reservationTTLStr  = cfg.ReservationTTL.String()
		reaperIntervalStr  = cfg.ReaperInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&reservationTTLStr, "reservation-ttl", reservationTTLStr, "How long reservations are held")
	fs.StringVar(&reaperIntervalStr, "reaper-interval", reaperIntervalStr, "Interval between expired reservation sweeps")
	fs.IntVar(&cfg.ReaperBatchSize, "reaper-batch", cfg.ReaperBatchSize, "Maximum orders reclaimed per sweep")
	fs.StringVar(&cfg.PaymentProvider, "payment-provider", cfg.PaymentProvider, "Payment provider recorded on payment attempts")
	fs.StringVar(&cfg.InvoiceTimeZone, "invoice-tz", cfg.InvoiceTimeZone, "Time zone used for invoice fiscal years")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReservationTTL, err = time.ParseDuration(reservationTTLStr); err != nil {
		return nil, fmt.Errorf("invalid reservation TTL: %w", err)
	}

	if cfg.ReaperInterval, err = time.ParseDuration(reaperIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reaper interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ReservationTTL <= 0 {
		cfg.ReservationTTL = defaultReservationTTL
	}

	if cfg.ReaperInterval <= 0 {
		cfg.ReaperInterval = defaultReaperInterval
	}

	if cfg.ReaperBatchSize <= 0 {
		cfg.ReaperBatchSize = defaultReaperBatchSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if _, err := time.LoadLocation(cfg.InvoiceTimeZone); err != nil {
		return nil, fmt.Errorf("invalid invoice time zone: %w", err)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

// InvoiceLocation returns the invoice time zone. Load validated the name,
// so a lookup failure here falls back to UTC.
func (c *Config) InvoiceLocation() *time.Location {
	loc, err := time.LoadLocation(c.InvoiceTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
