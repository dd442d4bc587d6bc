package main

import (
	"net/http"

	"github.com/frekans/backend/internal/router"
	"github.com/frekans/backend/pkg/config"
	"github.com/frekans/backend/pkg/logger"
	"github.com/frekans/backend/pkg/metrics"
	"github.com/frekans/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Env)

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Prometheus counters, exposed on their own port
	m := metrics.New()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
			logrus.WithError(err).Error("Metrics server stopped")
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, m)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
