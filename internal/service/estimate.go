package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/metrics"
)

const (
	// NoteExceedsPackageLimits is attached when the product fits no package type of the catalog.
	NoteExceedsPackageLimits = "Product dimensions/weight exceed all available package limits"
	// NoteNoPackagesInStock is attached when the product fits some package type but nothing is in stock.
	NoteNoPackagesInStock = "Product fits in package types but no packages are in stock"
)

const (
	modeSingle = "single"
	modeMulti  = "multi"
)

// EstimateRequest asks for the packaging of one product.
// A non-nil Catalog is used as is; otherwise the catalog of LocationID is loaded.
type EstimateRequest struct {
	LocationID string
	Product    model.ProductDimension
	Catalog    []model.PackageDimension
}

// MultiEstimateRequest asks for the packaging of several products sharing one catalog.
type MultiEstimateRequest struct {
	LocationID string
	Products   []model.ProductLine
	Catalog    []model.PackageDimension
}

// Estimate is a single-product result with the catalog checks made around it.
type Estimate struct {
	Result model.PackagingEstimateResult
	// LocationID is empty when an inline catalog was used.
	LocationID     string
	FitsAnyPackage bool
	Note           string
}

// MultiEstimate is a multi-product result with the catalog checks made around it.
type MultiEstimate struct {
	Result     model.MultiProductPackagingResult
	LocationID string
	// UnfitProducts lists, in request order, the products that fit no package type.
	UnfitProducts []string
}

// EstimateService resolves catalogs and runs the packaging calculator.
type EstimateService interface {
	EstimateProduct(ctx context.Context, req EstimateRequest) (*Estimate, error)
	EstimateProducts(ctx context.Context, req MultiEstimateRequest) (*MultiEstimate, error)
}

// EstimateServiceImpl implements EstimateService. It never writes stock back.
type EstimateServiceImpl struct {
	calculator        PackagingCalculator
	catalogs          CatalogService
	defaultLocationID string
	logger            zerolog.Logger
}

// NewEstimateService creates an estimate service. catalogs may be nil, in which case
// every request must carry an inline catalog.
func NewEstimateService(calculator PackagingCalculator, catalogs CatalogService, defaultLocationID string, logger zerolog.Logger) *EstimateServiceImpl {
	return &EstimateServiceImpl{
		calculator:        calculator,
		catalogs:          catalogs,
		defaultLocationID: defaultLocationID,
		logger:            logger,
	}
}

// EstimateProduct packs one product against the resolved catalog.
func (s *EstimateServiceImpl) EstimateProduct(ctx context.Context, req EstimateRequest) (*Estimate, error) {
	start := time.Now()

	catalog, locationID, err := s.resolveCatalog(ctx, req.LocationID, req.Catalog)
	if err != nil {
		return nil, err
	}

	result := s.calculator.CalculatePackaging(req.Product, catalog)
	estimate := &Estimate{
		Result:         result,
		LocationID:     locationID,
		FitsAnyPackage: fitsAnyPackage(req.Product, catalog),
	}
	if req.Product.Quantity > 0 {
		switch {
		case !estimate.FitsAnyPackage:
			estimate.Note = NoteExceedsPackageLimits
		case !anyInStock(catalog):
			estimate.Note = NoteNoPackagesInStock
		}
	}

	unpacked := max(req.Product.Quantity, 0) - result.MaxItemsPackable
	metrics.RecordPackagingEstimate(modeSingle, time.Since(start), result.CanPackAllItems, unpacked)

	s.logger.Debug().
		Str("location_id", locationID).
		Int("requested", req.Product.Quantity).
		Int("packed", result.MaxItemsPackable).
		Int("packages", result.TotalPackagesUsed).
		Bool("fits_any_package", estimate.FitsAnyPackage).
		Msg("packaging estimated")

	return estimate, nil
}

// EstimateProducts packs several products against one shared catalog.
func (s *EstimateServiceImpl) EstimateProducts(ctx context.Context, req MultiEstimateRequest) (*MultiEstimate, error) {
	start := time.Now()

	catalog, locationID, err := s.resolveCatalog(ctx, req.LocationID, req.Catalog)
	if err != nil {
		return nil, err
	}

	result := s.calculator.CalculatePackagingForMultipleProducts(req.Products, catalog)
	estimate := &MultiEstimate{
		Result:        result,
		LocationID:    locationID,
		UnfitProducts: []string{},
	}
	seen := make(map[string]bool, len(req.Products))
	for _, line := range req.Products {
		if seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		if line.Dimension.Quantity > 0 && !fitsAnyPackage(line.Dimension, catalog) {
			estimate.UnfitProducts = append(estimate.UnfitProducts, line.ProductID)
		}
	}

	unpacked := 0
	for id, requested := range result.RequestedItemsByProduct {
		unpacked += requested - result.PackedItemsByProduct[id]
	}
	metrics.RecordPackagingEstimate(modeMulti, time.Since(start), result.CanPackAllItems, unpacked)

	s.logger.Debug().
		Str("location_id", locationID).
		Int("products", len(result.RequestedItemsByProduct)).
		Int("packages", result.TotalPackagesUsed).
		Bool("can_pack_all", result.CanPackAllItems).
		Msg("multi-product packaging estimated")

	return estimate, nil
}

func (s *EstimateServiceImpl) resolveCatalog(ctx context.Context, locationID string, inline []model.PackageDimension) ([]model.PackageDimension, string, error) {
	if inline != nil {
		return inline, "", nil
	}
	if locationID == "" {
		locationID = s.defaultLocationID
	}
	if s.catalogs == nil {
		return nil, "", ErrCatalogUnavailable
	}
	catalog, err := s.catalogs.Catalog(ctx, locationID)
	if err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return catalog, locationID, nil
}

// fitsAnyPackage reports whether some package type could hold the product, ignoring stock.
// Products without dimensions are treated as fitting.
func fitsAnyPackage(product model.ProductDimension, catalog []model.PackageDimension) bool {
	if product.HasNoDimensions() {
		return true
	}
	for _, pkg := range catalog {
		if pkg.Fits(product) {
			return true
		}
	}
	return false
}

func anyInStock(catalog []model.PackageDimension) bool {
	for _, pkg := range catalog {
		if pkg.AvailableQuantity > 0 {
			return true
		}
	}
	return false
}
