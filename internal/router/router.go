package router

import (
	"github.com/gin-gonic/gin"

	"github.com/raeesul-erabiz/invoice-extractor/internal/config"
	"github.com/raeesul-erabiz/invoice-extractor/internal/handler"
	"github.com/raeesul-erabiz/invoice-extractor/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	reconcileH *handler.ReconcileHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	invoices := v1.Group("/invoices")
	invoices.POST("/reconcile", reconcileH.Reconcile)

	return r
}
