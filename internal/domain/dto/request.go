// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/repository"
)

// ProductRequest carries a product's measures and the quantity to pack.
// Measures may be omitted or null; they then count as zero. A quantity of zero or less packs nothing.
//
// @Description Product to pack
type ProductRequest struct {
	Length   decimal.NullDecimal `json:"length" swaggertype:"string" example:"10"`
	Breadth  decimal.NullDecimal `json:"breadth" swaggertype:"string" example:"5"`
	Height   decimal.NullDecimal `json:"height" swaggertype:"string" example:"2"`
	Weight   decimal.NullDecimal `json:"weight" swaggertype:"string" example:"0.75"`
	Quantity int                 `json:"quantity" example:"3"`
} // @name ProductRequest

// ToDimension converts the request into a product descriptor.
func (p ProductRequest) ToDimension() model.ProductDimension {
	return model.NewProductDimension(p.Length, p.Breadth, p.Height, p.Weight, p.Quantity)
}

func (p ProductRequest) validate(field string) error {
	return validateMeasures(field, map[string]decimal.NullDecimal{
		"length":  p.Length,
		"breadth": p.Breadth,
		"height":  p.Height,
		"weight":  p.Weight,
	})
}

// PackageRequest is one entry of an inline catalog. Negative stock counts as none.
//
// @Description Package type supplied inline with an estimate request
type PackageRequest struct {
	ID                string              `json:"id" example:"box-s"`
	Name              string              `json:"name" example:"Small Box"`
	Type              string              `json:"type" example:"BOX"`
	Length            decimal.NullDecimal `json:"length" swaggertype:"string" example:"30"`
	Breadth           decimal.NullDecimal `json:"breadth" swaggertype:"string" example:"20"`
	Height            decimal.NullDecimal `json:"height" swaggertype:"string" example:"10"`
	MaxWeight         decimal.NullDecimal `json:"max_weight" swaggertype:"string" example:"5"`
	PricePerUnit      decimal.NullDecimal `json:"price_per_unit" swaggertype:"string" example:"1.25"`
	AvailableQuantity int                 `json:"available_quantity" example:"10"`
} // @name PackageRequest

// ToDimension converts the entry into a package descriptor.
func (p PackageRequest) ToDimension() model.PackageDimension {
	return model.NewPackageDimension(p.ID, p.Name, p.Type,
		model.NewPackageSize(p.Length, p.Breadth, p.Height),
		p.MaxWeight, p.PricePerUnit, p.AvailableQuantity)
}

func (p PackageRequest) validate(field string) error {
	if strings.TrimSpace(p.ID) == "" {
		return &ValidationError{Field: field + "id", Message: "is required"}
	}
	return validateMeasures(field, map[string]decimal.NullDecimal{
		"length":         p.Length,
		"breadth":        p.Breadth,
		"height":         p.Height,
		"max_weight":     p.MaxWeight,
		"price_per_unit": p.PricePerUnit,
	})
}

// EstimatePackagingRequest represents the JSON request body for the single-product estimate endpoint.
//
// Catalog is optional. When present, even empty, it replaces the catalog of the location.
// When LocationID is empty the server's default location is used.
//
// @Description Request to estimate the packaging of one product
type EstimatePackagingRequest struct {
	LocationID string           `json:"location_id,omitempty" example:"wh-1"`
	Product    ProductRequest   `json:"product"`
	Catalog    []PackageRequest `json:"catalog,omitempty"`
} // @name EstimatePackagingRequest

// Validate performs custom validation on the request.
func (r *EstimatePackagingRequest) Validate() error {
	if err := r.Product.validate("product."); err != nil {
		return err
	}
	return validateCatalog(r.Catalog)
}

// CatalogDimensions returns the inline catalog, or nil when none was sent.
func (r *EstimatePackagingRequest) CatalogDimensions() []model.PackageDimension {
	return toDimensions(r.Catalog)
}

// ProductLineRequest is one product of a multi-product request.
//
// @Description Product identified by id
type ProductLineRequest struct {
	ProductID string `json:"product_id" example:"sku-1"`
	ProductRequest
} // @name ProductLineRequest

// EstimateMultiPackagingRequest represents the JSON request body for the multi-product estimate endpoint.
// Products are packed in the order given; a repeated product id accumulates.
//
// @Description Request to estimate the packaging of several products sharing package stock
type EstimateMultiPackagingRequest struct {
	LocationID string               `json:"location_id,omitempty" example:"wh-1"`
	Products   []ProductLineRequest `json:"products"`
	Catalog    []PackageRequest     `json:"catalog,omitempty"`
} // @name EstimateMultiPackagingRequest

// Validate performs custom validation on the request.
func (r *EstimateMultiPackagingRequest) Validate() error {
	for i, p := range r.Products {
		field := fmt.Sprintf("products[%d].", i)
		if strings.TrimSpace(p.ProductID) == "" {
			return &ValidationError{Field: field + "product_id", Message: "is required"}
		}
		if err := p.validate(field); err != nil {
			return err
		}
	}
	return validateCatalog(r.Catalog)
}

// ProductLines returns the products in request order.
func (r *EstimateMultiPackagingRequest) ProductLines() []model.ProductLine {
	lines := make([]model.ProductLine, len(r.Products))
	for i, p := range r.Products {
		lines[i] = model.ProductLine{ProductID: p.ProductID, Dimension: p.ToDimension()}
	}
	return lines
}

// CatalogDimensions returns the inline catalog, or nil when none was sent.
func (r *EstimateMultiPackagingRequest) CatalogDimensions() []model.PackageDimension {
	return toDimensions(r.Catalog)
}

// PackageTypeRequest represents the JSON request body for creating or replacing a stored package type.
//
// @Description Package type stored for a location
type PackageTypeRequest struct {
	Name              string              `json:"name" binding:"required" example:"Small Box"`
	Type              string              `json:"type" example:"BOX"`
	Length            decimal.NullDecimal `json:"length" swaggertype:"string" example:"30"`
	Breadth           decimal.NullDecimal `json:"breadth" swaggertype:"string" example:"20"`
	Height            decimal.NullDecimal `json:"height" swaggertype:"string" example:"10"`
	MaxWeight         decimal.NullDecimal `json:"max_weight" swaggertype:"string" example:"5"`
	PricePerUnit      decimal.NullDecimal `json:"price_per_unit" swaggertype:"string" example:"1.25"`
	AvailableQuantity int                 `json:"available_quantity" example:"100" minimum:"0"`
} // @name PackageTypeRequest

// Size returns the package size with absent measures as zero.
func (r *PackageTypeRequest) Size() model.PackageSize {
	return model.NewPackageSize(r.Length, r.Breadth, r.Height)
}

// Fields returns the attributes to store, with absent decimals as zero.
func (r *PackageTypeRequest) Fields() repository.PackageTypeFields {
	return repository.PackageTypeFields{
		Name:              strings.TrimSpace(r.Name),
		Type:              r.Type,
		Size:              r.Size(),
		MaxWeight:         decimalOrZero(r.MaxWeight),
		PricePerUnit:      decimalOrZero(r.PricePerUnit),
		AvailableQuantity: r.AvailableQuantity,
	}
}

// UpdateStockRequest represents the JSON request body for overwriting a package type's stock.
//
// @Description New stock level of a package type
type UpdateStockRequest struct {
	AvailableQuantity *int `json:"available_quantity" binding:"required" example:"40" minimum:"0"`
} // @name UpdateStockRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func validateCatalog(catalog []PackageRequest) error {
	for i, p := range catalog {
		if err := p.validate(fmt.Sprintf("catalog[%d].", i)); err != nil {
			return err
		}
	}
	return nil
}

// validateMeasures rejects negative values, reporting fields in a fixed order.
func validateMeasures(prefix string, measures map[string]decimal.NullDecimal) error {
	for _, name := range []string{"length", "breadth", "height", "weight", "max_weight", "price_per_unit"} {
		v, ok := measures[name]
		if ok && v.Valid && v.Decimal.IsNegative() {
			return &ValidationError{Field: prefix + name, Message: "must not be negative"}
		}
	}
	return nil
}

func decimalOrZero(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

func toDimensions(catalog []PackageRequest) []model.PackageDimension {
	if catalog == nil {
		return nil
	}
	out := make([]model.PackageDimension, len(catalog))
	for i, p := range catalog {
		out[i] = p.ToDimension()
	}
	return out
}
