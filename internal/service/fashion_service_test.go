package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/model"
)

func TestCreateFashionProductWithVariants(t *testing.T) {
	db := setupTestDB(t)

	svc := NewFashionService(db)
	product, err := svc.Create(&FashionProductRequest{
		Name:      "Summer Tee",
		Category:  "CLOTHING_MENS",
		Brand:     "Acme",
		BasePrice: 19.99,
		Season:    "SUMMER",
		Variants: []ProductVariantRequest{
			{Size: "S", Color: "BLACK", Quantity: 10, MinStockLevel: 2},
			{Size: "M", Color: "BLACK", Quantity: 8, MinStockLevel: 2, PriceAdjustment: 1.5},
		},
	})
	require.NoError(t, err)

	require.Len(t, product.Variants, 2)
	assert.Equal(t, product.SKU+"-S-BLA", product.Variants[0].VariantSKU)
	assert.Equal(t, 18, product.TotalStock())
	assert.InDelta(t, 21.49, product.Variants[1].FinalPrice(product.BasePrice), 0.001)
}

func TestCreateFashionProductRejectsBadEnums(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFashionService(db)
	var validation *ValidationError

	_, err := svc.Create(&FashionProductRequest{
		Name: "Tee", Category: "GADGETS", Brand: "Acme",
	})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(&FashionProductRequest{
		Name: "Tee", Category: "CLOTHING_MENS", Brand: "Acme",
		Variants: []ProductVariantRequest{{Size: "GIANT", Color: "BLACK"}},
	})
	assert.ErrorAs(t, err, &validation)
}

func TestCreateFashionProductVariantBornOutOfStockRaisesAlert(t *testing.T) {
	db := setupTestDB(t)

	svc := NewFashionService(db)
	product, err := svc.Create(&FashionProductRequest{
		Name: "Tee", Category: "CLOTHING_MENS", Brand: "Acme",
		Variants: []ProductVariantRequest{
			{Size: "S", Color: "BLACK", Quantity: 0, MinStockLevel: 2},
		},
	})
	require.NoError(t, err)

	var alert model.Alert
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&alert).Error)
	assert.Equal(t, model.AlertOutOfStock, alert.Type)
}

func TestFashionProductLookups(t *testing.T) {
	db := setupTestDB(t)
	product := createTestFashionProduct(t, db, "Beach Shirt",
		model.ProductVariant{Size: model.SizeM, Color: model.ColorBlue, Quantity: 4, MinStockLevel: 1},
	)

	svc := NewFashionService(db)

	bySKU, err := svc.BySKU(product.SKU)
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySKU.ID)
	assert.Len(t, bySKU.Variants, 1)

	_, err = svc.BySKU("NOPE-123")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	found, err := svc.Search("beach")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	byBrand, err := svc.ByBrand("ACME")
	require.NoError(t, err)
	assert.Len(t, byBrand, 1)

	byGender, err := svc.ByGender("unisex")
	require.NoError(t, err)
	assert.Len(t, byGender, 1)

	_, err = svc.ByGender("other")
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	inRange, err := svc.ByPriceRange(20, 30)
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	outOfRange, err := svc.ByPriceRange(30, 40)
	require.NoError(t, err)
	assert.Empty(t, outOfRange)
}

func TestCurrentSeasonIncludesAllSeason(t *testing.T) {
	db := setupTestDB(t)

	current := model.SeasonForMonth(time.Now().Month())
	seasonal := model.FashionProduct{
		Name: "Seasonal", SKU: "SEA-1", Category: model.CategoryClothingMens,
		Brand: "Acme", BasePrice: 10, Season: current,
	}
	require.NoError(t, db.Create(&seasonal).Error)
	allSeason := model.FashionProduct{
		Name: "Everyday", SKU: "EVR-1", Category: model.CategoryClothingMens,
		Brand: "Acme", BasePrice: 10, Season: model.SeasonAllSeason,
	}
	require.NoError(t, db.Create(&allSeason).Error)

	var offSeason model.Season
	for _, s := range []model.Season{model.SeasonSpring, model.SeasonSummer, model.SeasonAutumn, model.SeasonWinter} {
		if s != current {
			offSeason = s
			break
		}
	}
	other := model.FashionProduct{
		Name: "OffSeason", SKU: "OFF-1", Category: model.CategoryClothingMens,
		Brand: "Acme", BasePrice: 10, Season: offSeason,
	}
	require.NoError(t, db.Create(&other).Error)

	svc := NewFashionService(db)
	products, err := svc.CurrentSeason()
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestFashionStockAggregation(t *testing.T) {
	db := setupTestDB(t)
	createTestFashionProduct(t, db, "Healthy",
		model.ProductVariant{Size: model.SizeS, Color: model.ColorBlack, Quantity: 10, MinStockLevel: 1},
	)
	createTestFashionProduct(t, db, "Low",
		model.ProductVariant{Size: model.SizeS, Color: model.ColorBlack, Quantity: 1, MinStockLevel: 2},
		model.ProductVariant{Size: model.SizeM, Color: model.ColorBlack, Quantity: 1, MinStockLevel: 2},
	)
	createTestFashionProduct(t, db, "Empty",
		model.ProductVariant{Size: model.SizeS, Color: model.ColorBlack, Quantity: 0, MinStockLevel: 2},
	)

	svc := NewFashionService(db)

	low, err := svc.LowStock()
	require.NoError(t, err)
	assert.Len(t, low, 2)

	out, err := svc.OutOfStock()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Empty", out[0].Name)
}

func TestAvailableSizesAndColors(t *testing.T) {
	db := setupTestDB(t)
	product := createTestFashionProduct(t, db, "Tee",
		model.ProductVariant{Size: model.SizeS, Color: model.ColorBlack, Quantity: 5, MinStockLevel: 1},
		model.ProductVariant{Size: model.SizeM, Color: model.ColorBlack, Quantity: 0, MinStockLevel: 1},
		model.ProductVariant{Size: model.SizeM, Color: model.ColorRed, Quantity: 3, MinStockLevel: 1},
	)

	svc := NewFashionService(db)

	sizes, err := svc.AvailableSizes(product.ID, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Size{model.SizeS, model.SizeM}, sizes)

	blackSizes, err := svc.AvailableSizes(product.ID, "BLACK")
	require.NoError(t, err)
	assert.Equal(t, []model.Size{model.SizeS}, blackSizes)

	colors, err := svc.AvailableColors(product.ID, "M")
	require.NoError(t, err)
	assert.Equal(t, []model.Color{model.ColorRed}, colors)

	_, err = svc.AvailableSizes(9999, "")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = svc.AvailableColors(product.ID, "GIANT")
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestDeleteFashionProductRemovesVariants(t *testing.T) {
	db := setupTestDB(t)
	product := createTestFashionProduct(t, db, "Tee",
		model.ProductVariant{Size: model.SizeS, Color: model.ColorBlack, Quantity: 5, MinStockLevel: 1},
	)

	svc := NewFashionService(db)
	require.NoError(t, svc.Delete(product.ID))

	var variants int64
	require.NoError(t, db.Model(&model.ProductVariant{}).
		Where("product_id = ?", product.ID).Count(&variants).Error)
	assert.Zero(t, variants)

	err := svc.Delete(product.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateFashionProductKeepsVariants(t *testing.T) {
	db := setupTestDB(t)
	product := createTestFashionProduct(t, db, "Tee",
		model.ProductVariant{Size: model.SizeS, Color: model.ColorBlack, Quantity: 5, MinStockLevel: 1},
	)

	svc := NewFashionService(db)
	updated, err := svc.Update(product.ID, &FashionProductRequest{
		Name: "Tee V2", Category: "CLOTHING_MENS", Brand: "Acme", BasePrice: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tee V2", updated.Name)
	assert.Len(t, updated.Variants, 1)
}
