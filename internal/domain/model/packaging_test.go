package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func TestNewProductDimension(t *testing.T) {
	tests := []struct {
		name           string
		product        ProductDimension
		expectedVolume decimal.Decimal
		noDimensions   bool
	}{
		{
			name:           "all measures present",
			product:        NewProductDimension(nd("10"), nd("5"), nd("2"), nd("1.5"), 3),
			expectedVolume: d("100"),
		},
		{
			name:           "absent measures become zero",
			product:        NewProductDimension(decimal.NullDecimal{}, nd("5"), nd("2"), decimal.NullDecimal{}, 1),
			expectedVolume: decimal.Zero,
		},
		{
			name:           "no dimensions at all",
			product:        NewProductDimension(decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.NullDecimal{}, nd("2"), 1),
			expectedVolume: decimal.Zero,
			noDimensions:   true,
		},
		{
			name:           "fractional measures",
			product:        NewProductDimension(nd("0.5"), nd("0.5"), nd("0.4"), nd("0.1"), 1),
			expectedVolume: d("0.1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expectedVolume.Equal(tt.product.Volume()), "volume %s", tt.product.Volume())
			assert.Equal(t, tt.noDimensions, tt.product.HasNoDimensions())
		})
	}
}

func TestProductDimension_ZeroValue(t *testing.T) {
	var p ProductDimension

	assert.True(t, p.Volume().IsZero())
	assert.True(t, p.Weight.IsZero())
	assert.True(t, p.HasNoDimensions())
}

func TestPackageDimension_Fits(t *testing.T) {
	box := NewPackageDimension("box", "Box", "BOX", NewPackageSize(nd("10"), nd("10"), nd("10")), nd("5"), nd("2"), 3)

	tests := []struct {
		name     string
		product  ProductDimension
		expected bool
	}{
		{"smaller and lighter", NewProductDimension(nd("5"), nd("5"), nd("5"), nd("1"), 1), true},
		{"exact volume and weight", NewProductDimension(nd("10"), nd("10"), nd("10"), nd("5"), 1), true},
		{"too heavy", NewProductDimension(nd("1"), nd("1"), nd("1"), nd("5.01"), 1), false},
		{"too big", NewProductDimension(nd("20"), nd("10"), nd("10"), nd("1"), 1), false},
		{"volume only, shape ignored", NewProductDimension(nd("100"), nd("1"), nd("10"), nd("1"), 1), true},
		{"zero-dimension product", ProductDimension{Quantity: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, box.Fits(tt.product))
		})
	}
}

func TestPackageDimension_DecrementQuantity(t *testing.T) {
	pkg := NewPackageDimension("box", "Box", "BOX", PackageSize{}, decimal.NullDecimal{}, decimal.NullDecimal{}, 2)

	pkg.DecrementQuantity()
	assert.Equal(t, 1, pkg.AvailableQuantity)

	pkg.DecrementQuantity()
	assert.Equal(t, 0, pkg.AvailableQuantity)
	assert.True(t, pkg.PricePerUnit.IsZero())
	assert.True(t, pkg.MaxWeight.IsZero())
}

func TestPackageUsageResult_TotalCost(t *testing.T) {
	tests := []struct {
		name     string
		usage    PackageUsageResult
		expected decimal.Decimal
	}{
		{"whole price", PackageUsageResult{QuantityUsed: 3, PricePerUnit: d("2")}, d("6")},
		{"exact decimal", PackageUsageResult{QuantityUsed: 3, PricePerUnit: d("0.1")}, d("0.3")},
		{"free package", PackageUsageResult{QuantityUsed: 4, PricePerUnit: decimal.Zero}, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(tt.usage.TotalCost()), "got %s", tt.usage.TotalCost())
		})
	}
}

func TestNewPackagingEstimateResult(t *testing.T) {
	usages := []PackageUsageResult{
		{PackageID: "a", QuantityUsed: 2, PricePerUnit: d("1.25")},
		{PackageID: "b", QuantityUsed: 1, PricePerUnit: d("0.5")},
	}

	t.Run("all packed", func(t *testing.T) {
		result := NewPackagingEstimateResult(usages, 3, 3)

		assert.Equal(t, 3, result.TotalPackagesUsed)
		assert.True(t, d("3").Equal(result.TotalPackagingCost))
		assert.True(t, result.CanPackAllItems)
		assert.Equal(t, 3, result.MaxItemsPackable)
		assert.Empty(t, result.ErrorMessage)
	})

	t.Run("shortfall", func(t *testing.T) {
		result := NewPackagingEstimateResult(usages, 5, 3)

		assert.False(t, result.CanPackAllItems)
		assert.Equal(t, "Can only pack 3 of 5 items: insufficient package supply", result.ErrorMessage)
	})
}

func TestEmptyEstimate(t *testing.T) {
	result := EmptyEstimate()

	assert.NotNil(t, result.PackagesUsed)
	assert.Empty(t, result.PackagesUsed)
	assert.Zero(t, result.TotalPackagesUsed)
	assert.True(t, result.TotalPackagingCost.IsZero())
	assert.True(t, result.CanPackAllItems)
	assert.Zero(t, result.MaxItemsPackable)
	assert.Empty(t, result.ErrorMessage)
}

func TestNewMultiProductPackagingResult(t *testing.T) {
	usages := []MultiProductPackageUsageResult{
		{PackageID: "a", QuantityUsed: 2, PricePerUnit: d("2"), ProductQuantities: map[string]int{"p1": 2}},
		{PackageID: "b", QuantityUsed: 1, PricePerUnit: d("3"), ProductQuantities: map[string]int{"p2": 1}},
	}

	t.Run("all packed", func(t *testing.T) {
		result := NewMultiProductPackagingResult(usages, []string{"p1", "p2"},
			map[string]int{"p1": 2, "p2": 1}, map[string]int{"p1": 2, "p2": 1})

		assert.Equal(t, 3, result.TotalPackagesUsed)
		assert.True(t, d("7").Equal(result.TotalPackagingCost))
		assert.True(t, result.CanPackAllItems)
		assert.Empty(t, result.ErrorMessage)
	})

	t.Run("shortfall names every product in order", func(t *testing.T) {
		result := NewMultiProductPackagingResult(usages, []string{"p1", "p2", "p3"},
			map[string]int{"p1": 3, "p2": 1, "p3": 2}, map[string]int{"p1": 2, "p2": 1, "p3": 0})

		assert.False(t, result.CanPackAllItems)
		assert.Equal(t,
			"Can only pack 3 of 6 items: insufficient package supply (shortfall: p1 packed 2 of 3, p3 packed 0 of 2)",
			result.ErrorMessage)
	})
}

func TestEmptyMultiProductResult(t *testing.T) {
	result := EmptyMultiProductResult()

	assert.NotNil(t, result.PackagesUsed)
	assert.NotNil(t, result.PackedItemsByProduct)
	assert.Empty(t, result.PackedItemsByProduct)
	assert.Zero(t, result.TotalPackagesUsed)
	assert.True(t, result.CanPackAllItems)
	assert.Empty(t, result.ErrorMessage)
}

func TestPackagingEstimateResult_JSON(t *testing.T) {
	result := NewPackagingEstimateResult([]PackageUsageResult{
		{PackageID: "box-s", PackageName: "Small", PackageType: "BOX", QuantityUsed: 2, PricePerUnit: d("1.5")},
	}, 2, 2)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, true, decoded["can_pack_all_items"])
	assert.NotContains(t, decoded, "error_message")

	used := decoded["packages_used"].([]interface{})
	require.Len(t, used, 1)
	first := used[0].(map[string]interface{})
	assert.Equal(t, "box-s", first["package_id"])
	assert.Equal(t, "3", first["total_cost"])
}

func TestMultiProductPackageUsageResult_JSON(t *testing.T) {
	usage := MultiProductPackageUsageResult{
		PackageID:         "env",
		QuantityUsed:      2,
		PricePerUnit:      d("0.25"),
		ProductQuantities: map[string]int{"p1": 2},
	}

	data, err := json.Marshal(usage)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"total_cost":"0.5"`)
	assert.Contains(t, string(data), `"product_quantities":{"p1":2}`)
}
