package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/model"
)

func TestCreateProductGeneratesSKU(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice", model.RoleManager)

	svc := NewProductService(db)
	product, err := svc.Create(&ProductRequest{
		Name:          "Wireless Mouse",
		Category:      "Electronics",
		Quantity:      20,
		MinStockLevel: 5,
		Price:         29.99,
	}, "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, product.SKU)
	assert.True(t, strings.HasPrefix(product.SKU, "WIRELESS-"), "got %s", product.SKU)
}

func TestCreateProductRecordsInitialStock(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice", model.RoleManager)

	svc := NewProductService(db)
	product, err := svc.Create(&ProductRequest{
		Name: "Widget", Category: "Tools", Quantity: 12, MinStockLevel: 2,
	}, "alice")
	require.NoError(t, err)

	var txn model.StockTransaction
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&txn).Error)
	assert.Equal(t, model.StockIn, txn.Type)
	assert.Equal(t, 12, txn.Quantity)
	assert.Contains(t, txn.Reason, "Initial stock")
}

func TestCreateProductDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice", model.RoleManager)
	createTestProduct(t, db, "Widget", 5, 1)

	svc := NewProductService(db)
	_, err := svc.Create(&ProductRequest{
		Name: "Widget", Category: "Tools", Quantity: 1,
	}, "alice")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateProductBornLowRaisesAlert(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice", model.RoleManager)

	svc := NewProductService(db)
	product, err := svc.Create(&ProductRequest{
		Name: "Widget", Category: "Tools", Quantity: 2, MinStockLevel: 5,
	}, "alice")
	require.NoError(t, err)

	var alert model.Alert
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&alert).Error)
	assert.Equal(t, model.AlertLowStock, alert.Type)
}

func TestUpdateProductQuantityDeltaRecorded(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice", model.RoleManager)
	product := createTestProduct(t, db, "Widget", 10, 2)

	svc := NewProductService(db)
	updated, err := svc.Update(product.ID, &ProductRequest{
		Name: "Widget", Category: "Electronics", Quantity: 4, MinStockLevel: 2, Price: 9.99,
	}, "alice")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	var txn model.StockTransaction
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&txn).Error)
	assert.Equal(t, model.StockOut, txn.Type)
	assert.Equal(t, 6, txn.Quantity)
	assert.Contains(t, txn.Reason, "Stock decreased from 10 to 4")
}

func TestUpdateProductNameConflict(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "alice", model.RoleManager)
	createTestProduct(t, db, "Widget", 5, 1)
	other := createTestProduct(t, db, "Gadget", 5, 1)

	svc := NewProductService(db)
	_, err := svc.Update(other.ID, &ProductRequest{
		Name: "Widget", Category: "Electronics", Quantity: 5,
	}, "alice")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUpdateUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)

	_, err := svc.Update(42, &ProductRequest{
		Name: "Widget", Category: "Tools",
	}, "alice")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteProductLeavesAlertsForCleanup(t *testing.T) {
	db := setupTestDB(t)
	product := createTestProduct(t, db, "Widget", 0, 5)

	alerts := NewAlertService(db)
	require.NoError(t, alerts.CheckProduct(product))

	svc := NewProductService(db)
	require.NoError(t, svc.Delete(product.ID))

	var count int64
	require.NoError(t, db.Model(&model.Alert{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "deletion must not cascade into alerts")

	err := svc.Delete(product.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestStockLevelQueries(t *testing.T) {
	db := setupTestDB(t)
	createTestProduct(t, db, "Healthy", 50, 5)
	createTestProduct(t, db, "Low", 3, 5)
	createTestProduct(t, db, "Empty", 0, 5)

	svc := NewProductService(db)

	low, err := svc.LowStock()
	require.NoError(t, err)
	assert.Len(t, low, 2, "out-of-stock products also sit at or below minimum")

	out, err := svc.OutOfStock()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Empty", out[0].Name)

	byCategory, err := svc.ByCategory("Electronics")
	require.NoError(t, err)
	assert.Len(t, byCategory, 3)
}
