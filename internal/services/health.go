package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/platform/cache"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

type HealthStatus struct {
	Status string `json:"status"`
	DB     string `json:"db"`
	Cache  string `json:"cache,omitempty"`
}

type HealthService interface {
	Check(ctx context.Context) HealthStatus
}

type healthService struct {
	db      *gorm.DB
	log     *logger.Logger
	cache   cache.JSONCache
	timeout time.Duration
}

func NewHealthService(db *gorm.DB, log *logger.Logger, c cache.JSONCache) HealthService {
	return &healthService{
		db:      db,
		log:     log.With("service", "HealthService"),
		cache:   c,
		timeout: 2 * time.Second,
	}
}

// Check never fails: an unreachable store turns the status to degraded and
// carries the error text instead.
func (s *healthService) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out := HealthStatus{Status: HealthOK, DB: "connected"}
	if err := s.pingDB(ctx); err != nil {
		s.log.Warn("Health check: database unreachable", "error", err)
		out.Status = HealthDegraded
		out.DB = err.Error()
	}
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			s.log.Warn("Health check: cache unreachable", "backend", s.cache.Backend(), "error", err)
			out.Status = HealthDegraded
			out.Cache = err.Error()
		} else {
			out.Cache = s.cache.Backend()
		}
	}
	return out
}

func (s *healthService) pingDB(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
