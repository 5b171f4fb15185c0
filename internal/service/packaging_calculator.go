package service

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/guttosm/packaging-service/internal/domain/model"
)

// PackagingCalculator defines the packing operations over a package catalog.
type PackagingCalculator interface {
	// CalculatePackaging packs one product's quantity into the cheapest suitable packages.
	CalculatePackaging(product model.ProductDimension, catalog []model.PackageDimension) model.PackagingEstimateResult
	// CalculatePackagingForMultipleProducts packs several products, in order, against one shared stock pool.
	CalculatePackagingForMultipleProducts(products []model.ProductLine, catalog []model.PackageDimension) model.MultiProductPackagingResult
}

// Option configures a PackagingCalculatorService.
type Option func(*PackagingCalculatorService)

// PackagingCalculatorService implements PackagingCalculator with a price-first greedy assignment.
//
// Suitable packages (volume and weight capacity both sufficient) are consumed cheapest first,
// equal prices keeping catalog order. A product that fits nothing is shipped in the largest
// package still in stock, one unit at most. The caller's catalog is never modified: stock is
// tracked in a working inventory that lives for a single call, so concurrent calls sharing a
// catalog slice are safe.
type PackagingCalculatorService struct {
	logger zerolog.Logger
}

// NewPackagingCalculatorService creates a calculator with the given options.
func NewPackagingCalculatorService(opts ...Option) *PackagingCalculatorService {
	s := &PackagingCalculatorService{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLogger enables debug tracing of fallback and shortfall decisions.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *PackagingCalculatorService) {
		s.logger = logger
	}
}

// CalculatePackaging determines which packages to use for a single product.
func (s *PackagingCalculatorService) CalculatePackaging(product model.ProductDimension, catalog []model.PackageDimension) model.PackagingEstimateResult {
	if product.Quantity <= 0 {
		return model.EmptyEstimate()
	}

	inv := newWorkingInventory(catalog)
	defer inv.release()

	usages := make([]model.PackageUsageResult, 0, len(catalog))
	positions := make(map[int]int, len(catalog))

	packed := s.packProduct(product, 0, catalog, inv, func(idx, units int) {
		if pos, ok := positions[idx]; ok {
			usages[pos].QuantityUsed += units
			return
		}
		pkg := catalog[idx]
		positions[idx] = len(usages)
		usages = append(usages, model.PackageUsageResult{
			PackageID:    pkg.ID,
			PackageName:  pkg.Name,
			PackageType:  pkg.Type,
			QuantityUsed: units,
			PricePerUnit: pkg.PricePerUnit,
		})
	})

	if packed < product.Quantity {
		s.logger.Debug().
			Int("requested", product.Quantity).
			Int("packed", packed).
			Msg("insufficient package supply")
	}

	return model.NewPackagingEstimateResult(usages, product.Quantity, packed)
}

// CalculatePackagingForMultipleProducts packs each product line in order against a shared stock pool.
// A product id listed more than once accumulates its requested and packed counts.
func (s *PackagingCalculatorService) CalculatePackagingForMultipleProducts(products []model.ProductLine, catalog []model.PackageDimension) model.MultiProductPackagingResult {
	if len(products) == 0 {
		return model.EmptyMultiProductResult()
	}

	inv := newWorkingInventory(catalog)
	defer inv.release()

	usages := make([]model.MultiProductPackageUsageResult, 0, len(catalog))
	positions := make(map[int]int, len(catalog))
	requested := make(map[string]int, len(products))
	packed := make(map[string]int, len(products))
	order := make([]string, 0, len(products))

	for _, line := range products {
		if _, seen := requested[line.ProductID]; !seen {
			order = append(order, line.ProductID)
			requested[line.ProductID] = 0
			packed[line.ProductID] = 0
		}
		requested[line.ProductID] += max(line.Dimension.Quantity, 0)

		if line.Dimension.Quantity <= 0 {
			continue
		}

		productID := line.ProductID
		packed[productID] += s.packProduct(line.Dimension, packed[productID], catalog, inv, func(idx, units int) {
			pos, ok := positions[idx]
			if !ok {
				pkg := catalog[idx]
				pos = len(usages)
				positions[idx] = pos
				usages = append(usages, model.MultiProductPackageUsageResult{
					PackageID:         pkg.ID,
					PackageName:       pkg.Name,
					PackageType:       pkg.Type,
					PricePerUnit:      pkg.PricePerUnit,
					ProductQuantities: make(map[string]int),
				})
			}
			usages[pos].QuantityUsed += units
			usages[pos].ProductQuantities[productID] += units
		})
	}

	result := model.NewMultiProductPackagingResult(usages, order, requested, packed)
	if !result.CanPackAllItems {
		s.logger.Debug().
			Int("products", len(order)).
			Str("detail", result.ErrorMessage).
			Msg("insufficient package supply")
	}
	return result
}

// packProduct assigns the product's units greedily and reports each assignment through assign.
// alreadyPacked counts units of the same product packed earlier in the call; the oversized
// fallback only applies while it is zero. It returns the number of units packed.
func (s *PackagingCalculatorService) packProduct(
	product model.ProductDimension,
	alreadyPacked int,
	catalog []model.PackageDimension,
	inv *workingInventory,
	assign func(idx, units int),
) int {
	remaining := product.Quantity
	candidates := suitablePackages(product, catalog)

	for _, idx := range candidates {
		if remaining == 0 {
			break
		}
		if units := inv.take(idx, remaining); units > 0 {
			assign(idx, units)
			remaining -= units
		}
	}

	if remaining > 0 && len(candidates) == 0 && alreadyPacked == 0 {
		if idx := largestInStock(catalog, inv); idx >= 0 {
			inv.take(idx, 1)
			assign(idx, 1)
			remaining--

			s.logger.Debug().
				Str("package_id", catalog[idx].ID).
				Str("product_volume", product.Volume().String()).
				Msg("no suitable package, using largest package in stock")
		}
	}

	return product.Quantity - remaining
}

// suitablePackages returns the catalog positions that fit the product, cheapest first.
// Equal prices keep catalog order.
func suitablePackages(product model.ProductDimension, catalog []model.PackageDimension) []int {
	candidates := make([]int, 0, len(catalog))
	for i := range catalog {
		if catalog[i].Fits(product) {
			candidates = append(candidates, i)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return catalog[candidates[a]].PricePerUnit.LessThan(catalog[candidates[b]].PricePerUnit)
	})
	return candidates
}

// largestInStock returns the position of the largest-volume entry with stock left, or -1.
// The first entry wins among equal volumes.
func largestInStock(catalog []model.PackageDimension, inv *workingInventory) int {
	best := -1
	for i := range catalog {
		if inv.available(i) <= 0 {
			continue
		}
		if best < 0 || catalog[i].Volume().GreaterThan(catalog[best].Volume()) {
			best = i
		}
	}
	return best
}
