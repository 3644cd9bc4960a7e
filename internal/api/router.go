package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/api/handlers"
	"github.com/vetnexa/clinic-api/internal/api/middleware"
	"github.com/vetnexa/clinic-api/internal/audit"
	"github.com/vetnexa/clinic-api/internal/clinicconfig"
	"github.com/vetnexa/clinic-api/internal/config"
	"github.com/vetnexa/clinic-api/internal/internment"
	"github.com/vetnexa/clinic-api/internal/metrics"
	"github.com/vetnexa/clinic-api/internal/storage/postgres"
	"github.com/vetnexa/clinic-api/internal/storage/redis"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
	DB     *postgres.DB
	Cache  *redis.Client
}

func NewServer(cfg *config.Config, db *postgres.DB, cache *redis.Client, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	collector := metrics.NewCollector()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(collector))

	server := &Server{
		Config: cfg,
		Router: router,
		DB:     db,
		Cache:  cache,
	}

	server.setupRoutes(logger, collector)
	return server
}

func (s *Server) setupRoutes(logger *zap.Logger, collector *metrics.Collector) {
	recorder := audit.NewRecorder(s.DB, logger, collector)
	stays := internment.NewService(s.DB, recorder, logger)
	configSvc := clinicconfig.NewService(s.DB, stays, recorder, s.Cache, logger)
	cachedFlags := clinicconfig.NewCachedFlags(configSvc, s.Cache, logger)

	h := handlers.NewHandler(configSvc, stays, recorder, s.DB, collector, logger)

	// Health and metrics
	s.Router.GET("/health", h.Health)
	s.Router.GET("/ready", h.Ready)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes (protected)
	api := s.Router.Group("/api/v1")
	api.Use(middleware.AuthRequired(s.Config.Auth.JWTSecret))
	api.Use(middleware.Tenant())
	api.Use(middleware.RateLimit(s.Config.RateLimit.RequestsPerSecond, s.Config.RateLimit.Burst))

	// Clinic config (the module gate)
	{
		api.GET("/clinic/config/flags", h.GetFlags)
		api.PUT("/clinic/config/identity", h.UpdateIdentity)
		api.POST("/clinic/config/toggle-module", h.ToggleModule)
	}

	// Audit trail
	api.GET("/audit", h.ListAuditLogs)

	// Internment routes, gated on the module being enabled
	stay := api.Group("/internments")
	stay.Use(middleware.RequireFeature("INTERNMENT", cachedFlags, collector))
	{
		stay.POST("", h.AdmitPatient)
		stay.GET("/active", h.ListActiveInternments)
		stay.POST("/:id/discharge", h.DischargePatient)
	}
}
