// Package app provides service initialization.
package app

import (
	"github.com/guttosm/packaging-service/config"
	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/logger"
	"github.com/guttosm/packaging-service/internal/repository"
	"github.com/guttosm/packaging-service/internal/service"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Calculator service.PackagingCalculator
	Catalogs   service.CatalogService
	Estimates  service.EstimateService
	// Cache is nil when catalog caching is disabled.
	Cache *service.ShardedCache
}

// LoadDefaultCatalog reads the configured catalog file.
// It returns nil when no file is configured or the file cannot be loaded.
func LoadDefaultCatalog(cfg config.PackagingConfig) []model.PackageDimension {
	if cfg.CatalogFile == "" {
		return nil
	}

	catalog, err := service.LoadCatalogFile(cfg.CatalogFile)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.CatalogFile).Msg("Failed to load default catalog")
		return nil
	}

	log.Info().Str("file", cfg.CatalogFile).Int("package_types", len(catalog)).Msg("Loaded default catalog")
	return catalog
}

// InitializeServices initializes business logic services.
// dbComponents may be nil when MongoDB is disabled.
func InitializeServices(cfg config.Config, dbComponents *DatabaseComponents, defaultCatalog []model.PackageDimension) *ServiceComponents {
	calculator := service.NewPackagingCalculatorService(
		service.WithLogger(logger.Component("calculator")),
	)

	opts := []service.CatalogOption{
		service.WithCatalogLogger(logger.Component("catalog")),
	}
	if defaultCatalog != nil {
		opts = append(opts, service.WithDefaultCatalog(defaultCatalog))
	}

	var snapshots *service.ShardedCache
	if cfg.Cache.Size > 0 {
		snapshots = service.NewShardedCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards)
		opts = append(opts, service.WithCatalogCache(snapshots))
	}

	var repo repository.PackageTypesRepositoryInterface
	if dbComponents != nil && dbComponents.PackageTypesRepo != nil {
		repo = dbComponents.PackageTypesRepo
	}

	catalogs := service.NewCatalogService(repo, opts...)
	estimates := service.NewEstimateService(
		calculator,
		catalogs,
		cfg.Packaging.DefaultLocationID,
		logger.Component("estimate"),
	)

	return &ServiceComponents{
		Calculator: calculator,
		Catalogs:   catalogs,
		Estimates:  estimates,
		Cache:      snapshots,
	}
}
