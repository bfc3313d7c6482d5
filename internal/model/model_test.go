package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	p := Product{Quantity: 0, MinStockLevel: 5}
	assert.Equal(t, "Out of Stock", p.StockStatus())

	p.Quantity = 5
	assert.Equal(t, "Low Stock", p.StockStatus())

	p.Quantity = 6
	assert.Equal(t, "In Stock", p.StockStatus())
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Wireless Mouse 2000")
	assert.True(t, strings.HasPrefix(sku, "WIRELESS-"), "got %s", sku)

	fallback := GenerateSKU("!!!")
	assert.True(t, strings.HasPrefix(fallback, "SKU-"), "got %s", fallback)
}

func TestGenerateFashionSKU(t *testing.T) {
	sku := GenerateFashionSKU("Summer Tee", CategoryClothingMens)
	assert.True(t, strings.HasPrefix(sku, "CLO-SUMME-"), "got %s", sku)
}

func TestGenerateVariantSKU(t *testing.T) {
	assert.Equal(t, "CLO-TEE-12-S-BLA", GenerateVariantSKU("CLO-TEE-12", SizeS, ColorBlack))
	assert.Equal(t, "CLO-TEE-12-SIZ-NAV", GenerateVariantSKU("CLO-TEE-12", Size10, ColorNavy))
}

func TestVariantDetailsAndFinalPrice(t *testing.T) {
	v := ProductVariant{Size: SizeM, Color: ColorRoseGold, PriceAdjustment: -2.5}
	assert.Equal(t, "M/Rose Gold", v.Details())
	assert.InDelta(t, 17.5, v.FinalPrice(20), 0.001)
}

func TestSeasonForMonth(t *testing.T) {
	assert.Equal(t, SeasonSpring, SeasonForMonth(time.April))
	assert.Equal(t, SeasonSummer, SeasonForMonth(time.July))
	assert.Equal(t, SeasonAutumn, SeasonForMonth(time.October))
	assert.Equal(t, SeasonWinter, SeasonForMonth(time.January))
}

func TestFashionProductTotals(t *testing.T) {
	p := FashionProduct{Variants: []ProductVariant{
		{Quantity: 3, MinStockLevel: 2},
		{Quantity: 0, MinStockLevel: 2},
	}}
	assert.Equal(t, 3, p.TotalStock())
	assert.Equal(t, 4, p.TotalMinStock())
	assert.True(t, p.IsLowStock())
	assert.False(t, p.IsOutOfStock())
}
