package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/packaging-service/internal/domain/dto"
	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/i18n"
	"github.com/guttosm/packaging-service/internal/middleware"
	"github.com/guttosm/packaging-service/internal/repository"
	"github.com/guttosm/packaging-service/internal/service"
)

// PackageTypesHandler provides HTTP handlers for the catalog administration routes.
type PackageTypesHandler struct {
	catalogs service.CatalogService
}

// NewPackageTypesHandler creates a new PackageTypesHandler instance.
func NewPackageTypesHandler(catalogs service.CatalogService) *PackageTypesHandler {
	return &PackageTypesHandler{catalogs: catalogs}
}

// ListPackageTypes handles GET /api/locations/{location_id}/packages requests.
//
// @Summary      List package types
// @Description  Returns the active package types stocked at a location, oldest first
// @Tags         Package Types
// @Produce      json
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        location_id path string true "Location id"
// @Success      200 {object} dto.SuccessResponse{data=[]dto.PackageTypeResponse} "Package types"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Catalog administration unavailable"
// @Security     ApiKeyAuth
// @Router       /api/locations/{location_id}/packages [get]
func (h *PackageTypesHandler) ListPackageTypes(c *gin.Context) {
	builder := NewResponseBuilder(c)

	docs, err := h.catalogs.ListPackageTypes(c.Request.Context(), c.Param("location_id"))
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	items := make([]dto.PackageTypeResponse, 0, len(docs))
	for _, doc := range docs {
		item, err := dto.NewPackageTypeResponse(doc)
		if err != nil {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
			return
		}
		items = append(items, item)
	}

	builder.SuccessOK(items)
}

// CreatePackageType handles POST /api/locations/{location_id}/packages requests.
//
// @Summary      Create package type
// @Description  Adds a package type to the catalog of a location. Names are unique per location.
// @Tags         Package Types
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        location_id path string true "Location id"
// @Param        request body dto.PackageTypeRequest true "Package type"
// @Success      201 {object} dto.SuccessResponse{data=dto.PackageTypeResponse} "Created package type"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      409 {object} dto.ErrorResponse "Package type name already used at the location"
// @Failure      503 {object} dto.ErrorResponse "Catalog administration unavailable"
// @Security     ApiKeyAuth
// @Router       /api/locations/{location_id}/packages [post]
func (h *PackageTypesHandler) CreatePackageType(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.PackageTypeRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	locationID := c.Param("location_id")
	doc, err := h.catalogs.CreatePackageType(c.Request.Context(), locationID, req.Fields(), middleware.GetClientID(c))
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	h.respondPackageType(c, builder, http.StatusCreated, doc, model.ActionCreatePackageType, "Package type created")
}

// UpdatePackageType handles PUT /api/locations/{location_id}/packages/{package_id} requests.
//
// @Summary      Update package type
// @Description  Replaces the attributes of a package type, including its stock
// @Tags         Package Types
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        location_id path string true "Location id"
// @Param        package_id path string true "Package type id"
// @Param        request body dto.PackageTypeRequest true "Package type"
// @Success      200 {object} dto.SuccessResponse{data=dto.PackageTypeResponse} "Updated package type"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Package type not found"
// @Failure      409 {object} dto.ErrorResponse "Package type name already used at the location"
// @Failure      503 {object} dto.ErrorResponse "Catalog administration unavailable"
// @Security     ApiKeyAuth
// @Router       /api/locations/{location_id}/packages/{package_id} [put]
func (h *PackageTypesHandler) UpdatePackageType(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parsePackageTypeID(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequest[dto.PackageTypeRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	doc, err := h.catalogs.UpdatePackageType(c.Request.Context(), c.Param("location_id"), id, req.Fields(), middleware.GetClientID(c))
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	h.respondPackageType(c, builder, http.StatusOK, doc, model.ActionUpdatePackageType, "Package type updated")
}

// UpdateStock handles PUT /api/locations/{location_id}/packages/{package_id}/stock requests.
//
// @Summary      Set package stock
// @Description  Overwrites the available quantity of a package type
// @Tags         Package Types
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        location_id path string true "Location id"
// @Param        package_id path string true "Package type id"
// @Param        request body dto.UpdateStockRequest true "New stock level"
// @Success      200 {object} dto.SuccessResponse{data=dto.PackageTypeResponse} "Updated package type"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Package type not found"
// @Failure      503 {object} dto.ErrorResponse "Catalog administration unavailable"
// @Security     ApiKeyAuth
// @Router       /api/locations/{location_id}/packages/{package_id}/stock [put]
func (h *PackageTypesHandler) UpdateStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parsePackageTypeID(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequest[dto.UpdateStockRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	doc, err := h.catalogs.SetStock(c.Request.Context(), c.Param("location_id"), id, *req.AvailableQuantity, middleware.GetClientID(c))
	if err != nil {
		respondServiceError(builder, err)
		return
	}

	h.respondPackageType(c, builder, http.StatusOK, doc, model.ActionUpdateStock, "Package stock updated")
}

// DeletePackageType handles DELETE /api/locations/{location_id}/packages/{package_id} requests.
//
// @Summary      Delete package type
// @Description  Deactivates a package type; it no longer appears in catalogs or estimates
// @Tags         Package Types
// @Param        X-API-Key header string false "API key (required if auth enabled)"
// @Param        location_id path string true "Location id"
// @Param        package_id path string true "Package type id"
// @Success      204 "Package type deleted"
// @Failure      400 {object} dto.ErrorResponse "Invalid package type id"
// @Failure      404 {object} dto.ErrorResponse "Package type not found"
// @Failure      503 {object} dto.ErrorResponse "Catalog administration unavailable"
// @Security     ApiKeyAuth
// @Router       /api/locations/{location_id}/packages/{package_id} [delete]
func (h *PackageTypesHandler) DeletePackageType(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parsePackageTypeID(c, builder)
	if !ok {
		return
	}

	if err := h.catalogs.DeletePackageType(c.Request.Context(), c.Param("location_id"), id); err != nil {
		respondServiceError(builder, err)
		return
	}

	auditLog(c, model.ActionDeletePackageType, "Package type deleted", map[string]interface{}{
		"package_id": id.Hex(),
	})
	c.Status(http.StatusNoContent)
}

func (h *PackageTypesHandler) respondPackageType(c *gin.Context, builder *ResponseBuilder, status int, doc *repository.PackageTypeDocument, action, message string) {
	resp, err := dto.NewPackageTypeResponse(*doc)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	auditLog(c, action, message, map[string]interface{}{
		"package_id":         resp.ID,
		"name":               resp.Name,
		"available_quantity": resp.AvailableQuantity,
		"version":            resp.Version,
	})
	builder.Success(status, resp)
}

func parsePackageTypeID(c *gin.Context, builder *ResponseBuilder) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("package_id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidPackageTypeID, err)
		return primitive.NilObjectID, false
	}
	return id, true
}
