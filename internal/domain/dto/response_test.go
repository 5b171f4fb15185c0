package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/repository"
)

func TestErrorResponse_WithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		errCode   string
		message   string
		requestID string
		validate  func(*testing.T, ErrorResponse)
	}{
		{
			name:      "error response with request ID",
			errCode:   ErrCodeInternal,
			message:   "test error",
			requestID: "test-id",
			validate: func(t *testing.T, err ErrorResponse) {
				assert.Equal(t, "test-id", err.RequestID)
				assert.Equal(t, ErrCodeInternal, err.Error)
				assert.Equal(t, "test error", err.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.errCode, tt.message)
			err = err.WithRequestID(tt.requestID)
			if tt.validate != nil {
				tt.validate(t, err)
			}
		})
	}
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{400, ErrCodeInvalidRequest},
		{401, ErrCodeUnauthorized},
		{403, ErrCodeForbidden},
		{404, ErrCodeNotFound},
		{409, ErrCodeConflict},
		{429, ErrCodeRateLimit},
		{500, ErrCodeInternal},
		{502, ErrCodeInternal},
		{503, ErrCodeUnavailable},
		{504, ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			code := ErrCodeFromStatus(tt.status)
			assert.Equal(t, tt.expectedCode, code)
		})
	}
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name      string
		errCode   string
		message   string
		validate  func(*testing.T, ErrorResponse)
	}{
		{
			name:    "new error with code and message",
			errCode: ErrCodeInvalidRequest,
			message: "test message",
			validate: func(t *testing.T, err ErrorResponse) {
				assert.Equal(t, ErrCodeInvalidRequest, err.Error)
				assert.Equal(t, "test message", err.Message)
				assert.NotZero(t, err.Timestamp)
				assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.errCode, tt.message)
			if tt.validate != nil {
				tt.validate(t, err)
			}
		})
	}
}

func TestNewPackageTypeResponse(t *testing.T) {
	doc, err := repository.NewPackageTypeDocument("wh-1", repository.PackageTypeFields{
		Name:              "Small Box",
		Type:              "BOX",
		Size:              model.PackageSize{Length: decimal.NewFromInt(30), Breadth: decimal.NewFromInt(20), Height: decimal.NewFromInt(10)},
		MaxWeight:         decimal.NewFromInt(5),
		PricePerUnit:      decimal.RequireFromString("1.25"),
		AvailableQuantity: 12,
	})
	require.NoError(t, err)
	doc.ID = primitive.NewObjectID()
	doc.Version = 3
	doc.CreatedBy = "client-a"

	resp, err := NewPackageTypeResponse(*doc)

	require.NoError(t, err)
	assert.Equal(t, doc.ID.Hex(), resp.ID)
	assert.Equal(t, "wh-1", resp.LocationID)
	assert.True(t, decimal.NewFromInt(6000).Equal(resp.Size.Volume()))
	assert.True(t, decimal.RequireFromString("1.25").Equal(resp.PricePerUnit))
	assert.Equal(t, 12, resp.AvailableQuantity)
	assert.Equal(t, 3, resp.Version)
	assert.Equal(t, "client-a", resp.CreatedBy)
}

func TestEstimateResponse_JSON(t *testing.T) {
	resp := EstimateResponse{
		PackagingEstimateResult: model.NewPackagingEstimateResult(nil, 2, 0),
		LocationID:              "wh-1",
		FitsAnyPackage:          false,
		Note:                    "Product dimensions/weight exceed all available package limits",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "wh-1", fields["location_id"])
	assert.Equal(t, false, fields["fits_any_package"])
	assert.Equal(t, false, fields["can_pack_all_items"])
	assert.Equal(t, "Can only pack 0 of 2 items: insufficient package supply", fields["error_message"])
	assert.Contains(t, fields, "packages_used")
	assert.Contains(t, fields, "note")
}

func TestMultiEstimateResponse_JSON(t *testing.T) {
	resp := MultiEstimateResponse{
		MultiProductPackagingResult: model.EmptyMultiProductResult(),
		UnfitProducts:               []string{},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, true, fields["can_pack_all_items"])
	assert.Equal(t, []interface{}{}, fields["unfit_products"])
	assert.NotContains(t, fields, "location_id")
	assert.NotContains(t, fields, "error_message")
}
