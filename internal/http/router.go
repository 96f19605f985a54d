package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/Gyu-bot/myspot/internal/http/handlers"
	httpMW "github.com/Gyu-bot/myspot/internal/http/middleware"
	"github.com/Gyu-bot/myspot/internal/observability"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	Metrics        *observability.Metrics

	// ServiceName enables otelgin spans when non-empty.
	ServiceName    string
	CORSOrigins    []string
	RequestTimeout time.Duration

	PlaceHandler  *httpH.PlaceHandler
	TagHandler    *httpH.TagHandler
	NoteHandler   *httpH.NoteHandler
	SourceHandler *httpH.SourceHandler
	VisitHandler  *httpH.VisitHandler
	MediaHandler  *httpH.MediaHandler
	AuditHandler  *httpH.AuditHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(httpMW.RequestTimeout(cfg.RequestTimeout))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAPIKey())
	}
	{
		// Places
		if cfg.PlaceHandler != nil {
			api.POST("/places", cfg.PlaceHandler.CreatePlace)
			api.GET("/places", cfg.PlaceHandler.ListPlaces)
			api.POST("/places/check-duplicates", cfg.PlaceHandler.CheckDuplicates)
			api.GET("/places/:id", cfg.PlaceHandler.GetPlace)
			api.PATCH("/places/:id", cfg.PlaceHandler.UpdatePlace)
			api.DELETE("/places/:id", cfg.PlaceHandler.DeletePlace)
			api.GET("/places/:id/duplicates", cfg.PlaceHandler.ListPlaceDuplicates)
			api.POST("/places/:id/merge", cfg.PlaceHandler.MergePlace)
		}

		// Tags
		if cfg.TagHandler != nil {
			api.POST("/tags", cfg.TagHandler.CreateTag)
			api.GET("/tags", cfg.TagHandler.ListTags)
		}

		// Notes
		if cfg.NoteHandler != nil {
			api.POST("/notes", cfg.NoteHandler.CreateNote)
			api.GET("/notes", cfg.NoteHandler.ListNotes)
			api.PATCH("/notes/:id", cfg.NoteHandler.UpdateNote)
			api.DELETE("/notes/:id", cfg.NoteHandler.DeleteNote)
		}

		// Sources
		if cfg.SourceHandler != nil {
			api.POST("/sources", cfg.SourceHandler.CreateSource)
			api.GET("/sources", cfg.SourceHandler.ListSources)
			api.DELETE("/sources/:id", cfg.SourceHandler.DeleteSource)
		}

		// Visits
		if cfg.VisitHandler != nil {
			api.POST("/visits", cfg.VisitHandler.CreateVisit)
			api.GET("/visits", cfg.VisitHandler.ListVisits)
		}

		// Media
		if cfg.MediaHandler != nil {
			api.POST("/media", cfg.MediaHandler.CreateMedia)
			api.GET("/media", cfg.MediaHandler.ListMedia)
			api.DELETE("/media/:id", cfg.MediaHandler.DeleteMedia)
		}

		// Audit
		if cfg.AuditHandler != nil {
			api.GET("/audit-logs", cfg.AuditHandler.ListAuditLogs)
		}
	}

	return r
}
