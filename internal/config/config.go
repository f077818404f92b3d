package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mrlokans/bookshelf/internal/scheduler"
)

type (
	Config struct {
		HTTP
		Global
		Store
		Logging
		GoogleBooks
		OpenLibrary
		Gemini
		Providers
		Audit
		Tasks
		SummaryBackfill
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Store struct {
		Driver       string // memory or sqlite
		DatabasePath string
	}
	Logging struct {
		Level  string
		Format string // json or console
	}
	GoogleBooks struct {
		APIKey  string
		BaseURL string
	}
	OpenLibrary struct {
		BaseURL string
	}
	Gemini struct {
		APIKey  string
		Model   string
		BaseURL string
	}
	// Providers holds settings shared by every outbound client.
	Providers struct {
		Timeout                 time.Duration
		RatePerSecond           float64
		BreakerFailureThreshold uint32
		BreakerOpenTimeout      time.Duration
	}
	Audit struct {
		Dir string // empty disables the audit trail
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	SummaryBackfill struct {
		Enabled  bool
		Schedule string // Cron format: "30 3 * * *" = daily at 03:30
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("store_driver", StoreDriverMemory)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("google_books_base_url", "https://www.googleapis.com/books/v1")
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("audit_dir", "")

	// Outbound clients
	v.SetDefault("provider_timeout", "10s")
	v.SetDefault("provider_rate_per_second", 5)
	v.SetDefault("breaker_failure_threshold", 5)
	v.SetDefault("breaker_open_timeout", "30s")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "2m")
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("summary_backfill_enabled", false)
	v.SetDefault("summary_backfill_schedule", "30 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Store: Store{
			Driver:       strings.ToLower(v.GetString("STORE_DRIVER")),
			DatabasePath: v.GetString("DATABASE_PATH"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		GoogleBooks: GoogleBooks{
			APIKey:  v.GetString("GOOGLE_BOOKS_API_KEY"),
			BaseURL: v.GetString("GOOGLE_BOOKS_BASE_URL"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL: v.GetString("OPENLIBRARY_BASE_URL"),
		},
		Gemini: Gemini{
			APIKey:  v.GetString("GEMINI_KEY"),
			Model:   v.GetString("GEMINI_MODEL"),
			BaseURL: v.GetString("GEMINI_BASE_URL"),
		},
		Providers: Providers{
			Timeout:                 v.GetDuration("PROVIDER_TIMEOUT"),
			RatePerSecond:           v.GetFloat64("PROVIDER_RATE_PER_SECOND"),
			BreakerFailureThreshold: v.GetUint32("BREAKER_FAILURE_THRESHOLD"),
			BreakerOpenTimeout:      v.GetDuration("BREAKER_OPEN_TIMEOUT"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		SummaryBackfill: SummaryBackfill{
			Enabled:  v.GetBool("SUMMARY_BACKFILL_ENABLED"),
			Schedule: v.GetString("SUMMARY_BACKFILL_SCHEDULE"),
		},
	}
}

// Validate reports settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.Store.Driver, StoreDriverMemory, StoreDriverSQLite)
	}
	if c.Store.Driver == StoreDriverSQLite && c.Store.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required for the sqlite store")
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("invalid PORT %d", c.HTTP.Port)
	}
	if c.SummaryBackfill.Enabled {
		if err := scheduler.ValidateSchedule(c.SummaryBackfill.Schedule); err != nil {
			return fmt.Errorf("SUMMARY_BACKFILL_SCHEDULE: %w", err)
		}
	}
	return nil
}

// Address is the listen address of the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}
