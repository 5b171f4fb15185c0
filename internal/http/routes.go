package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/packaging-service/internal/service"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// PackagingRoutes registers the estimate endpoints.
type PackagingRoutes struct {
	handler *EstimateHandler
}

// NewPackagingRoutes creates a new PackagingRoutes instance.
func NewPackagingRoutes(estimates service.EstimateService) *PackagingRoutes {
	return &PackagingRoutes{handler: NewEstimateHandler(estimates)}
}

// RegisterRoutes registers POST /packaging/estimate and POST /packaging/estimate/multi.
func (r *PackagingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	packaging := rg.Group("/packaging")
	packaging.POST("/estimate", r.handler.EstimatePackaging)
	packaging.POST("/estimate/multi", r.handler.EstimateMultiPackaging)
}

// CatalogRoutes registers the catalog administration endpoints of a location.
type CatalogRoutes struct {
	handler *PackageTypesHandler
}

// NewCatalogRoutes creates a new CatalogRoutes instance.
func NewCatalogRoutes(catalogs service.CatalogService) *CatalogRoutes {
	return &CatalogRoutes{handler: NewPackageTypesHandler(catalogs)}
}

// RegisterRoutes registers the package type routes under /locations/:location_id/packages.
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	packages := rg.Group("/locations/:location_id/packages")
	packages.GET("", r.handler.ListPackageTypes)
	packages.POST("", r.handler.CreatePackageType)
	packages.PUT("/:package_id", r.handler.UpdatePackageType)
	packages.PUT("/:package_id/stock", r.handler.UpdateStock)
	packages.DELETE("/:package_id", r.handler.DeletePackageType)
}
