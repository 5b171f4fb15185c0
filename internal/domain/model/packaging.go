// Package model defines the core domain entities for the packaging service.
package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// orZero resolves an optional decimal, treating an absent value as zero.
func orZero(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

// ProductDimension describes one product's shipping footprint and the quantity to pack.
//
// @Description Product measures used for packaging; absent measures count as zero
type ProductDimension struct {
	Length   decimal.Decimal `json:"length" swaggertype:"string" example:"10"`
	Breadth  decimal.Decimal `json:"breadth" swaggertype:"string" example:"5"`
	Height   decimal.Decimal `json:"height" swaggertype:"string" example:"2"`
	Weight   decimal.Decimal `json:"weight" swaggertype:"string" example:"0.75"`
	Quantity int             `json:"quantity" example:"3"`
}

// NewProductDimension builds a ProductDimension, normalizing absent measures to zero.
func NewProductDimension(length, breadth, height, weight decimal.NullDecimal, quantity int) ProductDimension {
	return ProductDimension{
		Length:   orZero(length),
		Breadth:  orZero(breadth),
		Height:   orZero(height),
		Weight:   orZero(weight),
		Quantity: quantity,
	}
}

// Volume returns length × breadth × height.
func (p ProductDimension) Volume() decimal.Decimal {
	return p.Length.Mul(p.Breadth).Mul(p.Height)
}

// HasNoDimensions reports whether the product carries no size information at all.
func (p ProductDimension) HasNoDimensions() bool {
	return p.Length.IsZero() && p.Breadth.IsZero() && p.Height.IsZero()
}

// PackageSize is the inner (length, breadth, height) of a package type.
type PackageSize struct {
	Length  decimal.Decimal `json:"length" bson:"length" swaggertype:"string" example:"30"`
	Breadth decimal.Decimal `json:"breadth" bson:"breadth" swaggertype:"string" example:"20"`
	Height  decimal.Decimal `json:"height" bson:"height" swaggertype:"string" example:"10"`
}

// NewPackageSize builds a PackageSize, normalizing absent measures to zero.
func NewPackageSize(length, breadth, height decimal.NullDecimal) PackageSize {
	return PackageSize{
		Length:  orZero(length),
		Breadth: orZero(breadth),
		Height:  orZero(height),
	}
}

// Volume returns length × breadth × height.
func (s PackageSize) Volume() decimal.Decimal {
	return s.Length.Mul(s.Breadth).Mul(s.Height)
}

// PackageDimension describes one package type: capacity, unit cost and current stock.
//
// @Description Package type available for packing, with its capacity, price and stock
type PackageDimension struct {
	ID                string          `json:"id" example:"box-s"`
	Name              string          `json:"name" example:"Small Box"`
	Type              string          `json:"type" example:"BOX"`
	Size              PackageSize     `json:"size"`
	MaxWeight         decimal.Decimal `json:"max_weight" swaggertype:"string" example:"5"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit" swaggertype:"string" example:"1.25"`
	AvailableQuantity int             `json:"available_quantity" example:"10"`
}

// NewPackageDimension builds a PackageDimension, normalizing absent capacity and price to zero.
func NewPackageDimension(id, name, packageType string, size PackageSize, maxWeight, pricePerUnit decimal.NullDecimal, availableQuantity int) PackageDimension {
	return PackageDimension{
		ID:                id,
		Name:              name,
		Type:              packageType,
		Size:              size,
		MaxWeight:         orZero(maxWeight),
		PricePerUnit:      orZero(pricePerUnit),
		AvailableQuantity: availableQuantity,
	}
}

// Volume returns the package's inner volume.
func (p PackageDimension) Volume() decimal.Decimal {
	return p.Size.Volume()
}

// DecrementQuantity reduces the available stock by exactly one.
// Callers must not decrement past zero.
func (p *PackageDimension) DecrementQuantity() {
	p.AvailableQuantity--
}

// Fits reports whether one unit of the product fits this package by volume and weight.
func (p PackageDimension) Fits(product ProductDimension) bool {
	return p.Volume().GreaterThanOrEqual(product.Volume()) &&
		p.MaxWeight.GreaterThanOrEqual(product.Weight)
}

// ProductLine pairs a product identifier with its dimension.
// Multi-product packing consumes lines in the order given.
type ProductLine struct {
	ProductID string           `json:"product_id" example:"sku-1"`
	Dimension ProductDimension `json:"dimension"`
}

// PackageUsageResult reports how many units of one package type a plan uses.
type PackageUsageResult struct {
	PackageID    string          `json:"package_id"`
	PackageName  string          `json:"package_name"`
	PackageType  string          `json:"package_type"`
	QuantityUsed int             `json:"quantity_used"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" swaggertype:"string"`
}

// TotalCost returns QuantityUsed × PricePerUnit.
func (r PackageUsageResult) TotalCost() decimal.Decimal {
	return r.PricePerUnit.Mul(decimal.NewFromInt(int64(r.QuantityUsed)))
}

// MarshalJSON includes the derived total cost.
func (r PackageUsageResult) MarshalJSON() ([]byte, error) {
	type alias PackageUsageResult
	return json.Marshal(struct {
		alias
		TotalCost decimal.Decimal `json:"total_cost"`
	}{alias(r), r.TotalCost()})
}

// MultiProductPackageUsageResult reports usage of one package type across several products.
type MultiProductPackageUsageResult struct {
	PackageID    string          `json:"package_id"`
	PackageName  string          `json:"package_name"`
	PackageType  string          `json:"package_type"`
	QuantityUsed int             `json:"quantity_used"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" swaggertype:"string"`
	// ProductQuantities maps product id to the units of that product placed in this package type.
	ProductQuantities map[string]int `json:"product_quantities"`
}

// TotalCost returns QuantityUsed × PricePerUnit.
func (r MultiProductPackageUsageResult) TotalCost() decimal.Decimal {
	return r.PricePerUnit.Mul(decimal.NewFromInt(int64(r.QuantityUsed)))
}

// MarshalJSON includes the derived total cost.
func (r MultiProductPackageUsageResult) MarshalJSON() ([]byte, error) {
	type alias MultiProductPackageUsageResult
	return json.Marshal(struct {
		alias
		TotalCost decimal.Decimal `json:"total_cost"`
	}{alias(r), r.TotalCost()})
}

// PackagingEstimateResult is the packing plan for a single product.
//
// @Description Packing plan for one product
type PackagingEstimateResult struct {
	PackagesUsed       []PackageUsageResult `json:"packages_used"`
	TotalPackagesUsed  int                  `json:"total_packages_used" example:"3"`
	TotalPackagingCost decimal.Decimal      `json:"total_packaging_cost" swaggertype:"string" example:"7"`
	CanPackAllItems    bool                 `json:"can_pack_all_items" example:"true"`
	MaxItemsPackable   int                  `json:"max_items_packable" example:"3"`
	ErrorMessage       string               `json:"error_message,omitempty"`
}

// NewPackagingEstimateResult derives totals and the shortfall message from the package usages.
func NewPackagingEstimateResult(packagesUsed []PackageUsageResult, requestedItems, packedItems int) PackagingEstimateResult {
	if packagesUsed == nil {
		packagesUsed = []PackageUsageResult{}
	}

	total := 0
	cost := decimal.Zero
	for _, u := range packagesUsed {
		total += u.QuantityUsed
		cost = cost.Add(u.TotalCost())
	}

	result := PackagingEstimateResult{
		PackagesUsed:       packagesUsed,
		TotalPackagesUsed:  total,
		TotalPackagingCost: cost,
		CanPackAllItems:    packedItems >= requestedItems,
		MaxItemsPackable:   packedItems,
	}
	if !result.CanPackAllItems {
		result.ErrorMessage = ShortfallMessage(packedItems, requestedItems)
	}
	return result
}

// EmptyEstimate returns the canonical result for a request with nothing to pack.
func EmptyEstimate() PackagingEstimateResult {
	return NewPackagingEstimateResult(nil, 0, 0)
}

// ShortfallMessage formats the message reported when not every item could be packed.
func ShortfallMessage(packed, requested int) string {
	return fmt.Sprintf("Can only pack %d of %d items: insufficient package supply", packed, requested)
}

// MultiProductPackagingResult is the packing plan for several products sharing one package pool.
//
// @Description Packing plan for several products drawing on shared package stock
type MultiProductPackagingResult struct {
	PackagesUsed            []MultiProductPackageUsageResult `json:"packages_used"`
	TotalPackagesUsed       int                              `json:"total_packages_used" example:"3"`
	TotalPackagingCost      decimal.Decimal                  `json:"total_packaging_cost" swaggertype:"string" example:"15"`
	PackedItemsByProduct    map[string]int                   `json:"packed_items_by_product"`
	RequestedItemsByProduct map[string]int                   `json:"requested_items_by_product"`
	CanPackAllItems         bool                             `json:"can_pack_all_items" example:"true"`
	ErrorMessage            string                           `json:"error_message,omitempty"`
}

// NewMultiProductPackagingResult derives totals and the shortfall message.
// productOrder fixes the order in which under-fulfilled products are named.
func NewMultiProductPackagingResult(
	packagesUsed []MultiProductPackageUsageResult,
	productOrder []string,
	requested, packed map[string]int,
) MultiProductPackagingResult {
	if packagesUsed == nil {
		packagesUsed = []MultiProductPackageUsageResult{}
	}
	if requested == nil {
		requested = map[string]int{}
	}
	if packed == nil {
		packed = map[string]int{}
	}

	total := 0
	cost := decimal.Zero
	for _, u := range packagesUsed {
		total += u.QuantityUsed
		cost = cost.Add(u.TotalCost())
	}

	totalRequested, totalPacked := 0, 0
	var shortfalls []string
	for _, id := range productOrder {
		want := max(requested[id], 0)
		got := packed[id]
		totalRequested += want
		totalPacked += got
		if got < want {
			shortfalls = append(shortfalls, fmt.Sprintf("%s packed %d of %d", id, got, want))
		}
	}

	result := MultiProductPackagingResult{
		PackagesUsed:            packagesUsed,
		TotalPackagesUsed:       total,
		TotalPackagingCost:      cost,
		PackedItemsByProduct:    packed,
		RequestedItemsByProduct: requested,
		CanPackAllItems:         len(shortfalls) == 0,
	}
	if !result.CanPackAllItems {
		result.ErrorMessage = ShortfallMessage(totalPacked, totalRequested) +
			" (shortfall: " + strings.Join(shortfalls, ", ") + ")"
	}
	return result
}

// EmptyMultiProductResult returns the canonical result for a request with no products.
func EmptyMultiProductResult() MultiProductPackagingResult {
	return NewMultiProductPackagingResult(nil, nil, nil, nil)
}
