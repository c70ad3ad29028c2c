package estimate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitPrice_UnitModeReturnsStoredPriceVerbatim(t *testing.T) {
	rec := SignRecord{UnitPrice: 50, Width: 8, Height: 2, PricePerSqFt: 12, MaterialMultiplier: 3}

	require.Equal(t, 50.0, UnitPrice(rec, PriceModeUnit))
	// Unknown modes behave like unit_price.
	require.Equal(t, 50.0, UnitPrice(rec, PriceMode("bogus")))
}

func TestUnitPrice_PerAreaPrefersSignRate(t *testing.T) {
	rec := SignRecord{UnitPrice: 50, Width: 8, Height: 2, PricePerSqFt: 12, MaterialMultiplier: 3}

	require.Equal(t, 192.0, UnitPrice(rec, PriceModePerArea)) // 16 sq ft × 12
}

func TestUnitPrice_PerAreaFallsBackToMaterialMultiplier(t *testing.T) {
	rec := SignRecord{UnitPrice: 50, Width: 8, Height: 2, MaterialMultiplier: 3}

	require.Equal(t, 48.0, UnitPrice(rec, PriceModePerArea)) // 16 sq ft × 3
}

func TestUnitPrice_PerAreaWithoutUsableRateFallsBackToUnitPrice(t *testing.T) {
	rec := SignRecord{UnitPrice: 50, Width: 8, Height: 2}

	require.Equal(t, 50.0, UnitPrice(rec, PriceModePerArea))
}

func TestUnitPrice_ZeroAreaGatesAreaPricing(t *testing.T) {
	for _, rec := range []SignRecord{
		{UnitPrice: 50, Width: 0, Height: 2, PricePerSqFt: 12},
		{UnitPrice: 50, Width: 8, Height: 0, PricePerSqFt: 12},
		{UnitPrice: 50, PricePerSqFt: 12, MaterialMultiplier: 3},
	} {
		require.Equal(t, 50.0, UnitPrice(rec, PriceModePerArea))
	}
}

func TestUnitPrice_MissingEverythingYieldsZero(t *testing.T) {
	require.Equal(t, 0.0, UnitPrice(SignRecord{}, PriceModePerArea))
	require.Equal(t, 0.0, UnitPrice(SignRecord{}, PriceModeUnit))
}

func TestArea(t *testing.T) {
	require.Equal(t, 16.0, SignRecord{Width: 8, Height: 2}.Area())
	require.Equal(t, 0.0, SignRecord{Width: 8}.Area())
	require.Equal(t, 0.0, SignRecord{Height: 2}.Area())
}

func TestDimensions(t *testing.T) {
	require.Equal(t, "8 x 2", SignRecord{Width: 8, Height: 2}.Dimensions())
	require.Equal(t, "2.5 x 1.5", SignRecord{Width: 2.5, Height: 1.5}.Dimensions())
	require.Equal(t, "", SignRecord{Width: 8}.Dimensions())
}

func TestInstallClass(t *testing.T) {
	require.Equal(t, "exterior", InstallClass("Exterior wall mount"))
	require.Equal(t, "interior", InstallClass("INTERIOR flag"))
	require.Equal(t, "unspecified", InstallClass("pylon"))
	require.Equal(t, "unspecified", InstallClass(""))
}
