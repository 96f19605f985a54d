package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Gyu-bot/myspot/internal/data/db"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

var (
	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns the shared Postgres database when TEST_POSTGRES_DSN is set and a
// fresh in-memory SQLite database otherwise. Pair it with Tx so Postgres runs
// leave nothing behind.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		return SQLite(tb)
	}

	pgOnce.Do(func() {
		svc, err := db.NewService(db.Config{
			Driver:   db.DriverPostgres,
			DSN:      dsn,
			LogLevel: gormLogger.Silent,
		}, Logger(tb))
		if err != nil {
			pgErr = err
			return
		}
		if err := db.AutoMigrateAll(svc.DB()); err != nil {
			pgErr = err
			return
		}
		pgDB = svc.DB()
	})
	if pgErr != nil {
		tb.Fatalf("failed to init test db: %v", pgErr)
	}
	return pgDB
}

// SQLite opens a private, migrated in-memory database closed at test end.
func SQLite(tb testing.TB) *gorm.DB {
	tb.Helper()
	svc, err := db.NewService(db.Config{
		Driver:   db.DriverSQLite,
		LogLevel: gormLogger.Silent,
	}, Logger(tb))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	if err := db.AutoMigrateAll(svc.DB()); err != nil {
		tb.Fatalf("migrate sqlite: %v", err)
	}
	return svc.DB()
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
