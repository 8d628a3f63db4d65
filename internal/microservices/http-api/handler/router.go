package handler

import (
	"log/slog"
	"net/http"
	"time"

	"villahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the local API serves.
type Services struct {
	Villas       service.VillaService
	Contacts     service.ContactService
	Companies    service.CompanyService
	Cargos       service.CargoService
	Associations service.AssociationService
	Settings     service.SettingsService
	Events       EventSource
	Gatherer     prometheus.Gatherer // nil disables /metrics
}

// NewRouter builds the gin engine for the local API under /api/v1.
func NewRouter(s Services, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	NewVillaHandler(s.Villas).RegisterRoutes(api)
	NewContactHandler(s.Contacts).RegisterRoutes(api)
	NewCompanyHandler(s.Companies).RegisterRoutes(api)
	NewCargoHandler(s.Cargos).RegisterRoutes(api)
	NewAssociationHandler(s.Associations).RegisterRoutes(api)
	NewSyncHandler(s.Settings, s.Events).RegisterRoutes(api)

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "http_request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
