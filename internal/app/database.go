// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/packaging-service/config"
	"github.com/guttosm/packaging-service/internal/circuitbreaker"
	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/middleware"
	"github.com/guttosm/packaging-service/internal/repository"
	"github.com/guttosm/packaging-service/internal/service"
	"github.com/rs/zerolog/log"
)

// seedCreatedBy marks package types created from the default catalog.
const seedCreatedBy = "system"

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                         *repository.MongoDB
	PackageTypesRepo           repository.PackageTypesRepositoryInterface
	LoggingService             service.LoggingService
	PackageTypesCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker         *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// The default catalog seeds defaultLocationID when that location has no package types yet.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig, defaultLocationID string, defaultCatalog []model.PackageDimension) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	packageTypesCB := newCircuitBreaker(cfg, "mongodb-package-types")
	logsCB := newCircuitBreaker(cfg, "mongodb-logs")

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	packageTypesRepo := repository.NewPackageTypesRepositoryWithCircuitBreaker(repository.NewPackageTypesRepository(db), packageTypesCB)

	if err := seedDefaultCatalog(packageTypesRepo, defaultLocationID, defaultCatalog); err != nil {
		log.Warn().Err(err).Str("location_id", defaultLocationID).Msg("Failed to seed default catalog")
	}

	loggingService := service.NewLoggingService(logsRepo)
	middleware.InitAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig())

	return &DatabaseComponents{
		DB:                         db,
		PackageTypesRepo:           packageTypesRepo,
		LoggingService:             loggingService,
		PackageTypesCircuitBreaker: packageTypesCB,
		LogsCircuitBreaker:         logsCB,
	}
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	})
}

// seedDefaultCatalog stores the default catalog under locationID if the location has no package types.
func seedDefaultCatalog(repo repository.PackageTypesRepositoryInterface, locationID string, catalog []model.PackageDimension) error {
	if len(catalog) == 0 || locationID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := repo.ListByLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, pkg := range catalog {
		doc, err := repository.NewPackageTypeDocument(locationID, seedFields(pkg))
		if err != nil {
			return err
		}
		if _, err := repo.Create(ctx, doc, seedCreatedBy); err != nil {
			return err
		}
	}

	log.Info().
		Str("location_id", locationID).
		Int("package_types", len(catalog)).
		Msg("Seeded default catalog")
	return nil
}

func seedFields(pkg model.PackageDimension) repository.PackageTypeFields {
	name := pkg.Name
	if name == "" {
		name = pkg.ID
	}
	return repository.PackageTypeFields{
		Name:              name,
		Type:              pkg.Type,
		Size:              pkg.Size,
		MaxWeight:         pkg.MaxWeight,
		PricePerUnit:      pkg.PricePerUnit,
		AvailableQuantity: pkg.AvailableQuantity,
	}
}
