package router

import (
	"github.com/frekans/backend/internal/handlers"
	"github.com/frekans/backend/internal/middleware"
	"github.com/frekans/backend/internal/models"
	"github.com/frekans/backend/internal/repositories"
	"github.com/frekans/backend/internal/services"
	"github.com/frekans/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logrus.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, m *metrics.Metrics) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
	)
	if err != nil {
		logrus.Fatalf("Failed to auto migrate models: %v", err)
	}
	logrus.Info("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgClient.Database("frekans"))

	// --- Initialize Services ---
	followGraph := services.NewFollowGraph(followRepo, userRepo)
	messagingGate := services.NewMessagingGate(messageRepo, followGraph)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	logrus.Info("JWT authentication middleware applied to /api/v1 group.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followGraph, m)
	followHandler.RegisterFollowRoutes(api)
	logrus.Info("Follow routes configured.")

	// Message routes
	messageHandler := handlers.NewMessageHandler(messagingGate, m)
	messageHandler.RegisterMessageRoutes(api)
	logrus.Info("Message routes configured.")

	// User directory routes
	userHandler := handlers.NewUserHandler(userRepo, followGraph)
	userHandler.RegisterUserRoutes(api)
	logrus.Info("User routes configured.")

	logrus.Info("All routes configured.")
}
