package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/http"
	httpH "github.com/Gyu-bot/myspot/internal/http/handlers"
	httpMW "github.com/Gyu-bot/myspot/internal/http/middleware"
	"github.com/Gyu-bot/myspot/internal/observability"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Place  *httpH.PlaceHandler
	Tag    *httpH.TagHandler
	Note   *httpH.NoteHandler
	Source *httpH.SourceHandler
	Visit  *httpH.VisitHandler
	Media  *httpH.MediaHandler
	Audit  *httpH.AuditHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(services.Health),
		Place:  httpH.NewPlaceHandler(log, services.Place, services.Dedup),
		Tag:    httpH.NewTagHandler(log, services.Tag),
		Note:   httpH.NewNoteHandler(log, services.Note),
		Source: httpH.NewSourceHandler(log, services.Source),
		Visit:  httpH.NewVisitHandler(log, services.Visit),
		Media:  httpH.NewMediaHandler(log, services.Media),
		Audit:  httpH.NewAuditHandler(log, services.Audit),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.APIKey),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.Auth,
		Metrics:        metrics,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		PlaceHandler:   handlers.Place,
		TagHandler:     handlers.Tag,
		NoteHandler:    handlers.Note,
		SourceHandler:  handlers.Source,
		VisitHandler:   handlers.Visit,
		MediaHandler:   handlers.Media,
		AuditHandler:   handlers.Audit,
		HealthHandler:  handlers.Health,
	})
}
