// Package api serves the employee directory over HTTP.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "employees"

type RouterConfig struct {
	EmployeeHandler *EmployeeHandler
	HealthHandler   *HealthHandler
	AllowedOrigins  []string
	Log             *slog.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(traceContext())
	r.Use(corsMiddleware(cfg.AllowedOrigins))
	r.Use(requestLogger(log.With("component", "http")))
	r.Use(metricsMiddleware())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.Health)
		r.GET("/health/detailed", cfg.HealthHandler.Detailed)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if h := cfg.EmployeeHandler; h != nil {
		employees := r.Group("/api/v1/employee")
		employees.GET("", h.ListAll)
		employees.POST("", h.Create)
		employees.GET("/search/:term", h.Search)
		employees.GET("/highestSalary", h.HighestSalary)
		employees.GET("/topTenHighestEarningEmployeeNames", h.TopTenEarners)
		employees.GET("/:id", h.GetByID)
		employees.DELETE("/:id", h.DeleteByID)
	}

	return r
}
