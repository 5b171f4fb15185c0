package dto

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/repository"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is unavailable.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"product.quantity: must not be negative"`
	// Details contains additional error details (optional)
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// EstimateResponse is the single-product estimate returned by the API.
//
// @Description Packing plan for one product with catalog checks
type EstimateResponse struct {
	model.PackagingEstimateResult
	// LocationID is the location whose catalog was used; empty for inline catalogs
	LocationID string `json:"location_id,omitempty" example:"wh-1"`
	// FitsAnyPackage reports whether any package type can hold the product, ignoring stock
	FitsAnyPackage bool `json:"fits_any_package" example:"true"`
	// Note is an advisory message about the catalog
	Note string `json:"note,omitempty"`
} // @name EstimateResponse

// MultiEstimateResponse is the multi-product estimate returned by the API.
//
// @Description Packing plan for several products with catalog checks
type MultiEstimateResponse struct {
	model.MultiProductPackagingResult
	LocationID string `json:"location_id,omitempty" example:"wh-1"`
	// UnfitProducts lists products that fit no package type
	UnfitProducts []string `json:"unfit_products"`
} // @name MultiEstimateResponse

// PackageTypeResponse is a stored package type.
//
// @Description Package type stored for a location
type PackageTypeResponse struct {
	ID                string            `json:"id" example:"665f1c2e8b3e4a0012345678"`
	LocationID        string            `json:"location_id" example:"wh-1"`
	Name              string            `json:"name" example:"Small Box"`
	Type              string            `json:"type" example:"BOX"`
	Size              model.PackageSize `json:"size"`
	MaxWeight         decimal.Decimal   `json:"max_weight" swaggertype:"string" example:"5"`
	PricePerUnit      decimal.Decimal   `json:"price_per_unit" swaggertype:"string" example:"1.25"`
	AvailableQuantity int               `json:"available_quantity" example:"100"`
	Version           int               `json:"version" example:"1"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	CreatedBy         string            `json:"created_by,omitempty"`
	UpdatedBy         string            `json:"updated_by,omitempty"`
} // @name PackageTypeResponse

// NewPackageTypeResponse converts a stored document into its API form.
func NewPackageTypeResponse(doc repository.PackageTypeDocument) (PackageTypeResponse, error) {
	pkg, err := doc.ToPackageDimension()
	if err != nil {
		return PackageTypeResponse{}, err
	}
	return PackageTypeResponse{
		ID:                pkg.ID,
		LocationID:        doc.LocationID,
		Name:              pkg.Name,
		Type:              pkg.Type,
		Size:              pkg.Size,
		MaxWeight:         pkg.MaxWeight,
		PricePerUnit:      pkg.PricePerUnit,
		AvailableQuantity: pkg.AvailableQuantity,
		Version:           doc.Version,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
		CreatedBy:         doc.CreatedBy,
		UpdatedBy:         doc.UpdatedBy,
	}, nil
}
