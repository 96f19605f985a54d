package app

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gyu-bot/myspot/internal/data/db"
	"github.com/Gyu-bot/myspot/internal/observability"
	"github.com/Gyu-bot/myspot/internal/platform/envutil"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type Config struct {
	Port           string
	APIKey         string
	RequestTimeout time.Duration
	CORSOrigins    []string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TagCacheTTL   time.Duration

	MetricsEnabled  bool
	MetricsInterval time.Duration
	Otel            observability.OtelConfig
}

// LoadDotEnv reads .env when present. Variables already set in the
// environment win.
func LoadDotEnv(log *logger.Logger) {
	if err := godotenv.Load(); err == nil && log != nil {
		log.Info("Loaded .env")
	}
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           envutil.String("PORT", "8080", log),
		APIKey:         envutil.String("API_KEY", "", log),
		RequestTimeout: envutil.Duration("REQUEST_TIMEOUT", 30*time.Second, log),
		CORSOrigins:    envutil.List("CORS_ALLOW_ORIGINS", nil, log),

		DBDriver:    strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres, log)),
		DatabaseURL: envutil.String("DATABASE_URL", "", log),
		SQLitePath:  envutil.String("SQLITE_PATH", "myspot.db", log),

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),
		TagCacheTTL:   envutil.Duration("TAG_CACHE_TTL", 5*time.Minute, log),

		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", true, log),
		MetricsInterval: envutil.Duration("METRICS_COLLECT_INTERVAL", 15*time.Second, log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "myspot", log),
			Environment: envutil.String("APP_ENV", "development", log),
			Version:     envutil.String("APP_VERSION", "dev", log),
			Exporter:    envutil.String("OTEL_EXPORTER", "", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 1, log),
		},
	}
	if cfg.DatabaseURL == "" && cfg.DBDriver == db.DriverPostgres {
		cfg.DatabaseURL = postgresURLFromParts(log)
	}
	return cfg
}

func (c Config) DBConfig() db.Config {
	return db.Config{
		Driver:     c.DBDriver,
		DSN:        c.DatabaseURL,
		SQLitePath: c.SQLitePath,
	}
}

// Validate rejects configurations serve cannot run with. CLI commands that
// never open the HTTP surface skip it.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("API_KEY is required")
	}
	switch c.DBDriver {
	case db.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL or POSTGRES_* is required for the postgres driver")
		}
	case db.DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func postgresURLFromParts(log *logger.Logger) string {
	host := envutil.String("POSTGRES_HOST", "", log)
	if host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(envutil.String("POSTGRES_USER", "postgres", log), envutil.String("POSTGRES_PASSWORD", "", log)),
		Host:     fmt.Sprintf("%s:%d", host, envutil.Int("POSTGRES_PORT", 5432, log)),
		Path:     "/" + envutil.String("POSTGRES_NAME", "myspot", log),
		RawQuery: "sslmode=" + envutil.String("POSTGRES_SSLMODE", "disable", log),
	}
	return u.String()
}
