package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/packaging-service/internal/circuitbreaker"
	"github.com/guttosm/packaging-service/internal/domain/dto"
	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/i18n"
	"github.com/guttosm/packaging-service/internal/middleware"
	"github.com/guttosm/packaging-service/internal/repository"
	"github.com/guttosm/packaging-service/internal/service"
)

// EstimateHandler provides HTTP handlers for packaging estimate routes.
type EstimateHandler struct {
	estimates service.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler instance.
func NewEstimateHandler(estimates service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimates: estimates}
}

// EstimatePackaging handles POST /api/packaging/estimate requests.
//
// @Summary      Estimate packaging for one product
// @Description  Plans how many units of a product go into which package types, cheapest package first, limited by the stock of each type. Uses the inline catalog when given, otherwise the stored catalog of the location. Units that cannot be packed are reported in the result instead of failing the request.
// @Tags         Packaging
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        request body dto.EstimatePackagingRequest true "Product and optional catalog"
// @Success      200 {object} dto.SuccessResponse{data=dto.EstimateResponse} "Packing plan"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Failure      504 {object} dto.ErrorResponse "Request timeout"
// @Security     ApiKeyAuth
// @Router       /api/packaging/estimate [post]
func (h *EstimateHandler) EstimatePackaging(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.EstimatePackagingRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	middleware.SetLocationID(c, req.LocationID)
	auditLog(c, model.ActionEstimate, "Packaging estimate requested", map[string]interface{}{
		"quantity":       req.Product.Quantity,
		"inline_catalog": req.Catalog != nil,
	})

	estimate, err := h.estimates.EstimateProduct(c.Request.Context(), service.EstimateRequest{
		LocationID: req.LocationID,
		Product:    req.Product.ToDimension(),
		Catalog:    req.CatalogDimensions(),
	})
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	builder.SuccessOK(dto.EstimateResponse{
		PackagingEstimateResult: estimate.Result,
		LocationID:              estimate.LocationID,
		FitsAnyPackage:          estimate.FitsAnyPackage,
		Note:                    estimate.Note,
	})
}

// EstimateMultiPackaging handles POST /api/packaging/estimate/multi requests.
//
// @Summary      Estimate packaging for several products
// @Description  Plans the packaging of product lines in request order. All lines draw on one shared copy of the stock, so earlier lines can use up package types later lines would have chosen.
// @Tags         Packaging
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        request body dto.EstimateMultiPackagingRequest true "Product lines and optional catalog"
// @Success      200 {object} dto.SuccessResponse{data=dto.MultiEstimateResponse} "Packing plan"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Failure      504 {object} dto.ErrorResponse "Request timeout"
// @Security     ApiKeyAuth
// @Router       /api/packaging/estimate/multi [post]
func (h *EstimateHandler) EstimateMultiPackaging(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.EstimateMultiPackagingRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	middleware.SetLocationID(c, req.LocationID)
	auditLog(c, model.ActionEstimateMulti, "Multi-product packaging estimate requested", map[string]interface{}{
		"products":       len(req.Products),
		"inline_catalog": req.Catalog != nil,
	})

	estimate, err := h.estimates.EstimateProducts(c.Request.Context(), service.MultiEstimateRequest{
		LocationID: req.LocationID,
		Products:   req.ProductLines(),
		Catalog:    req.CatalogDimensions(),
	})
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	unfit := estimate.UnfitProducts
	if unfit == nil {
		unfit = []string{}
	}
	builder.SuccessOK(dto.MultiEstimateResponse{
		MultiProductPackagingResult: estimate.Result,
		LocationID:                  estimate.LocationID,
		UnfitProducts:               unfit,
	})
}

// respondServiceError maps service and repository errors to HTTP responses.
func respondServiceError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	case errors.Is(err, service.ErrInvalidPackageType):
		builder.ErrorWithMessage(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, repository.ErrPackageTypeNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyPackageTypeNotFound, err)
	case errors.Is(err, repository.ErrDuplicatePackageType):
		builder.Error(http.StatusConflict, i18n.ErrKeyPackageTypeExists, err)
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyCatalogAdminDisabled, err)
	case errors.Is(err, service.ErrCatalogUnavailable), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// auditLog records an audit entry when a logging service is attached to the context.
func auditLog(c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if loggingService, exists := c.Get(loggingServiceKey); exists {
		if ls, ok := loggingService.(service.LoggingService); ok && ls != nil {
			middleware.AuditLog(ls, c, actionType, message, fields)
		}
	}
}
