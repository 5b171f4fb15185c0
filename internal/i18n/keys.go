package i18n

import "net/http"

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyCatalogUnavailable indicates no package catalog could be loaded.
	ErrKeyCatalogUnavailable = "error.catalog_unavailable"
	// ErrKeyCatalogAdminDisabled indicates catalog administration needs MongoDB.
	ErrKeyCatalogAdminDisabled = "error.catalog_admin_disabled"
	// ErrKeyPackageTypeNotFound indicates an unknown package type.
	ErrKeyPackageTypeNotFound = "error.package_type_not_found"
	// ErrKeyPackageTypeExists indicates a package type name already used at the location.
	ErrKeyPackageTypeExists = "error.package_type_exists"
	// ErrKeyInvalidPackageTypeID indicates a malformed package type id.
	ErrKeyInvalidPackageTypeID = "error.invalid_package_type_id"
	// ErrKeyIdempotencyKeyReused indicates an idempotency key sent again with a different body.
	ErrKeyIdempotencyKeyReused = "error.idempotency_key_reused"
	// ErrKeyIdempotencyInProgress indicates the request holding an idempotency key has not finished.
	ErrKeyIdempotencyInProgress = "error.idempotency_in_progress"
)

// KeyForStatus returns the generic message key for an HTTP error status.
func KeyForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrKeyInvalidRequest
	case http.StatusUnauthorized:
		return ErrKeyUnauthorized
	case http.StatusForbidden:
		return ErrKeyForbidden
	case http.StatusNotFound:
		return ErrKeyNotFound
	case http.StatusConflict:
		return ErrKeyConflict
	case http.StatusTooManyRequests:
		return ErrKeyRateLimitExceeded
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrKeyTimeout
	case http.StatusServiceUnavailable:
		return ErrKeyCatalogUnavailable
	default:
		return ErrKeyInternalError
	}
}
