package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/receivables"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RedisAddr string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	TrendWindowDays int `envconfig:"TREND_WINDOW_DAYS" default:"30"`

	// Collection escalation cutoffs, overridable per deployment.
	CollectionCriticalDays   int     `envconfig:"COLLECTION_CRITICAL_DAYS" default:"90"`
	CollectionCriticalAmount float64 `envconfig:"COLLECTION_CRITICAL_AMOUNT" default:"100000"`
	CollectionUrgentDays     int     `envconfig:"COLLECTION_URGENT_DAYS" default:"60"`
	CollectionUrgentAmount   float64 `envconfig:"COLLECTION_URGENT_AMOUNT" default:"50000"`
	CollectionWarningDays    int     `envconfig:"COLLECTION_WARNING_DAYS" default:"30"`
	CollectionWarningAmount  float64 `envconfig:"COLLECTION_WARNING_AMOUNT" default:"20000"`

	// WarmupInterval is the worker cadence for refreshing the cached
	// dashboard. The engine itself never owns a timer.
	WarmupInterval time.Duration `envconfig:"WARMUP_INTERVAL" default:"10m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Thresholds maps the configured cutoffs into the engine config.
func (c *Config) Thresholds() receivables.Thresholds {
	if c == nil {
		return receivables.DefaultThresholds()
	}
	return receivables.Thresholds{
		CriticalDays:   c.CollectionCriticalDays,
		CriticalAmount: c.CollectionCriticalAmount,
		UrgentDays:     c.CollectionUrgentDays,
		UrgentAmount:   c.CollectionUrgentAmount,
		WarningDays:    c.CollectionWarningDays,
		WarningAmount:  c.CollectionWarningAmount,
	}
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
