package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/db"
	"github.com/Gyu-bot/myspot/internal/http"
	"github.com/Gyu-bot/myspot/internal/observability"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	dbService    *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// New opens the store, runs migrations and wires every layer. The caller
// owns the logger and must call Close.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if log == nil {
		return nil, errors.New("logger required")
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(cfg.MetricsEnabled)

	dbService, err := db.NewService(cfg.DBConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	theDB := dbService.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, metrics, clients, reposet)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, cfg)
	router := wireRouter(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background collectors.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.Metrics.StartDBCollector(ctx, a.Log, a.DB, a.Cfg.MetricsInterval)
	a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis, a.Cfg.MetricsInterval)
}

// Serve runs the HTTP server until ctx is cancelled, then drains it.
func (a *App) Serve(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	server := &http.Server{Engine: a.Router}
	addr := ":" + a.Cfg.Port

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", addr)
		return server.Run(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("Closing database failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("Tracer shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
