package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	// StoreDriver selects the entity store: the in-process memory store or PostgreSQL.
	StoreDriver string `mapstructure:"STORE_DRIVER" validate:"required,oneof=memory postgres"`
	DatabaseURL string `mapstructure:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`

	// Reminders are enqueued only when RedisAddr is set.
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	AsynqConcurrency int           `mapstructure:"ASYNQ_CONCURRENCY" validate:"gte=1,lte=1000"`
	ReminderLead     time.Duration `mapstructure:"REMINDER_LEAD" validate:"gte=0"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL" validate:"required"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitRPS       float64  `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst     int      `mapstructure:"RATE_LIMIT_BURST" validate:"gte=1"`

	SeedSampleData bool `mapstructure:"SEED_SAMPLE_DATA"`

	GoMaxProcs int `mapstructure:"GOMAXPROCS" validate:"gte=0,lte=4096"`
}

var (
	cfg      *Config
	validate = validator.New(validator.WithRequiredStructEnabled())
)

var keys = []string{
	"APP_ENV",
	"HTTP_ADDR",
	"SHUTDOWN_TIMEOUT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"STORE_DRIVER",
	"DATABASE_URL",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"ASYNQ_CONCURRENCY",
	"REMINDER_LEAD",
	"JWT_SECRET",
	"TOKEN_TTL",
	"CORS_ALLOWED_ORIGINS",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
	"SEED_SAMPLE_DATA",
	"GOMAXPROCS",
}

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("ASYNQ_CONCURRENCY", 10)
	v.SetDefault("REMINDER_LEAD", "24h")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("SEED_SAMPLE_DATA", false)
	v.SetDefault("GOMAXPROCS", 0)

	// Optional config file
	_ = v.ReadInConfig()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Durations may arrive as plain strings from env or yaml.
	for key, dst := range map[string]*time.Duration{
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
		"REMINDER_LEAD":    &c.ReminderLead,
		"TOKEN_TTL":        &c.TokenTTL,
	} {
		if s := v.GetString(key); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.GoMaxProcs > 0 {
		runtime.GOMAXPROCS(c.GoMaxProcs)
	}

	cfg = &c
	return cfg, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// Get returns the loaded configuration. Panics if not loaded.
func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call config.Load or config.MustLoad first")
	}
	return cfg
}

// RemindersEnabled reports whether a Redis broker is configured for reminder tasks.
func (c *Config) RemindersEnabled() bool {
	return c.RedisAddr != ""
}
