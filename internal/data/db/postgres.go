package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver        string
	DSN           string
	SQLitePath    string
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewService opens the configured store. Postgres is the production backend;
// SQLite serves local runs and tests.
func NewService(cfg Config, logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService", "driver", cfg.Driver)

	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = time.Second
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = gormLogger.Warn
	}
	gormLog := gormLogger.New(logg, gormLogger.Config{
		SlowThreshold:             cfg.SlowThreshold,
		LogLevel:                  cfg.LogLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
	gormCfg := &gorm.Config{
		Logger:         gormLog,
		NowFunc:        Now,
		TranslateError: true,
	}

	var (
		gdb *gorm.DB
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverPostgres, "":
		gdb, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		if err := EnsureExtensions(gdb); err != nil {
			return nil, err
		}
	case DriverSQLite:
		gdb, err = gorm.Open(sqlite.Open(SQLiteDSN(cfg.SQLitePath)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite %q: %w", cfg.SQLitePath, err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// One writer at a time; a single connection also keeps :memory: databases shared.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}

	serviceLog.Info("Database connected")
	return &Service{db: gdb, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Now is the clock for every gorm-managed timestamp: UTC with microsecond
// precision, which both Postgres and the SQLite text encoding round-trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// IsPostgres reports whether gdb talks to Postgres.
func IsPostgres(gdb *gorm.DB) bool {
	return gdb != nil && gdb.Dialector != nil && gdb.Dialector.Name() == DriverPostgres
}

// SQLiteDSN turns a path into a DSN with foreign keys enforced. An empty path
// or ":memory:" yields a private in-memory database.
func SQLiteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

// EnsureExtensions enables the Postgres extensions the place store relies on.
func EnsureExtensions(gdb *gorm.DB) error {
	for _, ext := range []string{"uuid-ossp", "pg_trgm", "postgis"} {
		if err := gdb.Exec(fmt.Sprintf(`CREATE EXTENSION IF NOT EXISTS "%s";`, ext)).Error; err != nil {
			return fmt.Errorf("enable %s extension: %w", ext, err)
		}
	}
	return nil
}
