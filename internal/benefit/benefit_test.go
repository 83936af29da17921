package benefit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestCalculate(t *testing.T) {
	t.Run("ElectricAtCap", func(t *testing.T) {
		b := Calculate(price(70000), "ELECTRIC")

		require.NotNil(t, b.Rate)
		require.NotNil(t, b.Percent)
		assert.Equal(t, 0.25, *b.Percent)
		assert.Equal(t, 175.00, *b.Rate)
		assert.Equal(t, "Elektro", b.Label)
	})

	t.Run("ElectricJustAboveCap", func(t *testing.T) {
		b := Calculate(price(70001), "Elektro")

		require.NotNil(t, b.Rate)
		assert.Equal(t, 0.5, *b.Percent)
		assert.Equal(t, 350.01, *b.Rate)
		assert.Equal(t, "Elektro", b.Label)
	})

	t.Run("Hybrid", func(t *testing.T) {
		b := Calculate(price(60000), "Plug-in-Hybrid")

		require.NotNil(t, b.Rate)
		assert.Equal(t, 0.5, *b.Percent)
		assert.Equal(t, 300.00, *b.Rate)
		assert.Equal(t, "Hybrid", b.Label)
	})

	t.Run("HybridNeverGetsQuarterPercent", func(t *testing.T) {
		// 混动也包含 "elektr"/电机，但混动判定优先
		b := Calculate(price(50000), "Hybrid (Benzin/Elektro)")

		require.NotNil(t, b.Percent)
		assert.Equal(t, 0.5, *b.Percent)
		assert.Equal(t, "Hybrid", b.Label)
	})

	t.Run("Combustion", func(t *testing.T) {
		b := Calculate(price(50000), "Diesel")

		require.NotNil(t, b.Rate)
		assert.Equal(t, 1.0, *b.Percent)
		assert.Equal(t, 500.00, *b.Rate)
		assert.Equal(t, "Verbrenner", b.Label)
	})

	t.Run("UnknownFuelTreatedAsCombustion", func(t *testing.T) {
		b := Calculate(price(30000), "")

		require.NotNil(t, b.Percent)
		assert.Equal(t, 1.0, *b.Percent)
		assert.Equal(t, "Verbrenner", b.Label)
	})

	t.Run("MissingPrice", func(t *testing.T) {
		b := Calculate(nil, "ELECTRIC")

		assert.Nil(t, b.Rate)
		assert.Nil(t, b.Percent)
		assert.Equal(t, "Unbekannt", b.Label)
	})

	t.Run("NonPositivePrice", func(t *testing.T) {
		b := Calculate(price(0), "ELECTRIC")
		assert.Nil(t, b.Rate)
		assert.Equal(t, "Unbekannt", b.Label)

		b = Calculate(price(-1), "Diesel")
		assert.Nil(t, b.Rate)
		assert.Equal(t, "Unbekannt", b.Label)
	})
}
