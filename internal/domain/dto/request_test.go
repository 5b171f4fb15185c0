package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePackagingRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedField string
	}{
		{
			name: "valid request",
			body: `{"product": {"length": 10, "breadth": "5", "height": 2, "weight": 0.5, "quantity": 3}}`,
		},
		{
			name: "absent and null measures are allowed",
			body: `{"product": {"length": null, "quantity": 1}}`,
		},
		{
			name: "zero quantity is allowed",
			body: `{"product": {"quantity": 0}}`,
		},
		{
			name: "negative quantity packs nothing",
			body: `{"product": {"quantity": -1}}`,
		},
		{
			name:          "negative weight",
			body:          `{"product": {"weight": -0.1, "quantity": 1}}`,
			expectedField: "product.weight",
		},
		{
			name:          "inline package without id",
			body:          `{"product": {"quantity": 1}, "catalog": [{"id": "a"}, {"name": "no id"}]}`,
			expectedField: "catalog[1].id",
		},
		{
			name:          "inline package with negative price",
			body:          `{"product": {"quantity": 1}, "catalog": [{"id": "a", "price_per_unit": "-1"}]}`,
			expectedField: "catalog[0].price_per_unit",
		},
		{
			name: "inline package with negative stock",
			body: `{"product": {"quantity": 1}, "catalog": [{"id": "a", "available_quantity": -4}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req EstimatePackagingRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.expectedField, validationErr.Field)
		})
	}
}

func TestEstimatePackagingRequest_Conversion(t *testing.T) {
	t.Run("absent catalog stays nil", func(t *testing.T) {
		var req EstimatePackagingRequest
		require.NoError(t, json.Unmarshal([]byte(`{"product": {"length": 2, "quantity": 4}}`), &req))

		product := req.Product.ToDimension()
		assert.True(t, decimal.NewFromInt(2).Equal(product.Length))
		assert.True(t, product.Breadth.IsZero())
		assert.True(t, product.Weight.IsZero())
		assert.Equal(t, 4, product.Quantity)
		assert.Nil(t, req.CatalogDimensions())
	})

	t.Run("empty catalog stays empty", func(t *testing.T) {
		var req EstimatePackagingRequest
		require.NoError(t, json.Unmarshal([]byte(`{"product": {"quantity": 1}, "catalog": []}`), &req))

		catalog := req.CatalogDimensions()
		assert.NotNil(t, catalog)
		assert.Empty(t, catalog)
	})

	t.Run("catalog entries keep order", func(t *testing.T) {
		var req EstimatePackagingRequest
		body := `{"catalog": [
			{"id": "b", "length": 1, "breadth": 2, "height": 3, "max_weight": "4.5", "price_per_unit": "0.10", "available_quantity": 7},
			{"id": "a"}
		]}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		catalog := req.CatalogDimensions()
		require.Len(t, catalog, 2)
		assert.Equal(t, "b", catalog[0].ID)
		assert.True(t, decimal.NewFromInt(6).Equal(catalog[0].Volume()))
		assert.True(t, decimal.RequireFromString("4.5").Equal(catalog[0].MaxWeight))
		assert.Equal(t, 7, catalog[0].AvailableQuantity)
		assert.Equal(t, "a", catalog[1].ID)
		assert.True(t, catalog[1].PricePerUnit.IsZero())
	})
}

func TestEstimateMultiPackagingRequest(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedField string
	}{
		{
			name: "valid request",
			body: `{"products": [{"product_id": "p1", "length": 1, "quantity": 2}, {"product_id": "p2", "quantity": 1}]}`,
		},
		{
			name: "no products",
			body: `{"products": []}`,
		},
		{
			name:          "missing product id",
			body:          `{"products": [{"product_id": "p1", "quantity": 1}, {"quantity": 1}]}`,
			expectedField: "products[1].product_id",
		},
		{
			name: "negative quantity packs nothing",
			body: `{"products": [{"product_id": "p1", "quantity": -2}]}`,
		},
		{
			name:          "invalid inline catalog",
			body:          `{"products": [{"product_id": "p1", "quantity": 1}], "catalog": [{"id": ""}]}`,
			expectedField: "catalog[0].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req EstimateMultiPackagingRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.expectedField, validationErr.Field)
		})
	}

	t.Run("product lines keep request order", func(t *testing.T) {
		var req EstimateMultiPackagingRequest
		body := `{"products": [
			{"product_id": "z", "length": 3, "breadth": 3, "height": 3, "quantity": 1},
			{"product_id": "a", "quantity": 2},
			{"product_id": "z", "quantity": 5}
		]}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		lines := req.ProductLines()
		require.Len(t, lines, 3)
		assert.Equal(t, "z", lines[0].ProductID)
		assert.True(t, decimal.NewFromInt(27).Equal(lines[0].Dimension.Volume()))
		assert.Equal(t, "a", lines[1].ProductID)
		assert.Equal(t, 5, lines[2].Dimension.Quantity)
		assert.Nil(t, req.CatalogDimensions())
	})
}

func TestPackageTypeRequest_Size(t *testing.T) {
	var req PackageTypeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Tube", "length": 100, "height": 8}`), &req))

	size := req.Size()
	assert.True(t, decimal.NewFromInt(100).Equal(size.Length))
	assert.True(t, size.Breadth.IsZero())
	assert.True(t, size.Volume().IsZero())
}

func TestPackageTypeRequest_Fields(t *testing.T) {
	var req PackageTypeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name": " Small Box ", "type": "BOX", "length": 30, "price_per_unit": "1.25", "available_quantity": 7}`), &req))

	fields := req.Fields()
	assert.Equal(t, "Small Box", fields.Name)
	assert.Equal(t, "BOX", fields.Type)
	assert.True(t, decimal.NewFromInt(30).Equal(fields.Size.Length))
	assert.True(t, fields.MaxWeight.IsZero())
	assert.True(t, decimal.RequireFromString("1.25").Equal(fields.PricePerUnit))
	assert.Equal(t, 7, fields.AvailableQuantity)
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name          string
		validationErr *ValidationError
		expected      string
	}{
		{
			name: "validation error message format",
			validationErr: &ValidationError{
				Field:   "product.quantity",
				Message: "must not be negative",
			},
			expected: "product.quantity: must not be negative",
		},
		{
			name: "validation error with indexed field",
			validationErr: &ValidationError{
				Field:   "catalog[2].id",
				Message: "is required",
			},
			expected: "catalog[2].id: is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.validationErr.Error())
		})
	}
}
