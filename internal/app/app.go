// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packaging-service/config"
	"github.com/guttosm/packaging-service/internal/http"
	"github.com/guttosm/packaging-service/internal/middleware"
	"github.com/rs/zerolog/log"
)

// Application holds the wired router and the components that need releasing on shutdown.
type Application struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) *Application {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	defaultCatalog := LoadDefaultCatalog(cfg.Packaging)

	// Initialize database components (MongoDB repositories and services)
	dbComponents := InitializeDatabase(cfg.Database, cfg.Packaging.DefaultLocationID, defaultCatalog)

	// Initialize business services
	serviceComponents := InitializeServices(cfg, dbComponents, defaultCatalog)

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &Application{
		Router:   http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		Services: serviceComponents,
		Database: dbComponents,
	}
}

// Close stops background workers and disconnects from MongoDB.
func (a *Application) Close(ctx context.Context) {
	middleware.StopAsyncLogger()

	if a.Services != nil && a.Services.Cache != nil {
		a.Services.Cache.Stop()
	}

	if a.Database != nil && a.Database.DB != nil {
		if err := a.Database.DB.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to close MongoDB connection")
		}
	}
}
