package service

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/model"
)

func TestProductsCSVRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	product := createTestProduct(t, db, `Widget, "Deluxe"`, 2, 5)

	svc := NewExportService(db)
	out, err := svc.ProductsCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, []string{
		"Product Name", "SKU", "Description", "Category", "Current Stock",
		"Min Stock Level", "Price", "Stock Status", "Created Date", "Last Updated",
	}, header)

	row := records[1]
	assert.Equal(t, `Widget, "Deluxe"`, row[0])
	assert.Equal(t, product.SKU, row[1])
	assert.Equal(t, "2", row[4])
	assert.Equal(t, "Low Stock", row[7])
}

func TestTransactionsCSVDateFilter(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice", model.RoleManager)
	product := createTestProduct(t, db, "Widget", 100, 1)

	stock := NewStockService(db)
	_, err := stock.Create(&StockTransactionRequest{
		ProductID: &product.ID, Type: "STOCK_OUT", Quantity: 5, Reason: "Sale",
	}, "alice")
	require.NoError(t, err)

	svc := NewExportService(db)

	out, err := svc.TransactionsCSV("", "")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Widget", records[1][1])
	assert.Equal(t, "STOCK_OUT", records[1][3])
	assert.Equal(t, "alice", records[1][5])
	assert.Equal(t, "Sale", records[1][6])

	// A range in the distant past excludes today's entry
	out, err = svc.TransactionsCSV("2000-01-01", "2000-01-02")
	require.NoError(t, err)
	records, err = csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// Unparseable dates fall back to the full ledger
	out, err = svc.TransactionsCSV("yesterday", "today")
	require.NoError(t, err)
	records, err = csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFashionProductsCSVIncludesVariantRows(t *testing.T) {
	db := setupTestDB(t)
	createTestFashionProduct(t, db, "Tee",
		model.ProductVariant{Size: model.SizeS, Color: model.ColorBlack, Quantity: 10, MinStockLevel: 2, PriceAdjustment: 2},
		model.ProductVariant{Size: model.SizeM, Color: model.ColorRed, Quantity: 0, MinStockLevel: 2},
	)

	svc := NewExportService(db)
	out, err := svc.FashionProductsCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header, parent row and one row per variant")

	parent := records[1]
	assert.Equal(t, "Tee", parent[0])
	assert.Equal(t, "Men's Clothing", parent[3])
	assert.Equal(t, "10", parent[9])
	assert.Equal(t, "2", parent[12])

	firstVariant := records[2]
	assert.Equal(t, "  - Variant", firstVariant[0])
	assert.Equal(t, "Size: S, Color: Black", firstVariant[2])
	assert.Equal(t, "27", firstVariant[8])

	secondVariant := records[3]
	assert.Equal(t, "Out of Stock", secondVariant[11])
}

func TestFormatCSVField(t *testing.T) {
	assert.Equal(t, "plain", formatCSVField("plain"))
	assert.Equal(t, `"a,b"`, formatCSVField("a,b"))
	assert.Equal(t, `"say ""hi"""`, formatCSVField(`say "hi"`))
	assert.Equal(t, "\"line\nbreak\"", formatCSVField("line\nbreak"))
}
