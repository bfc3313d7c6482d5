package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/model"
)

func TestCheckProductIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	product := createTestProduct(t, db, "Widget", 2, 5)

	svc := NewAlertService(db)
	require.NoError(t, svc.CheckProduct(product))
	require.NoError(t, svc.CheckProduct(product))

	var count int64
	require.NoError(t, db.Model(&model.Alert{}).
		Where("status = ?", model.AlertActive).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCheckProductResolvesOnHealthyStock(t *testing.T) {
	db := setupTestDB(t)
	product := createTestProduct(t, db, "Widget", 0, 5)

	svc := NewAlertService(db)
	require.NoError(t, svc.CheckProduct(product))

	product.Quantity = 50
	require.NoError(t, db.Save(product).Error)
	require.NoError(t, svc.CheckProduct(product))

	var active int64
	require.NoError(t, db.Model(&model.Alert{}).
		Where("status = ?", model.AlertActive).Count(&active).Error)
	assert.Zero(t, active)

	var resolved int64
	require.NoError(t, db.Model(&model.Alert{}).
		Where("status = ?", model.AlertResolved).Count(&resolved).Error)
	assert.Equal(t, int64(1), resolved)
}

func TestOutOfStockAndLowStockAreSeparateAlerts(t *testing.T) {
	db := setupTestDB(t)
	product := createTestProduct(t, db, "Widget", 0, 5)

	svc := NewAlertService(db)
	require.NoError(t, svc.CheckProduct(product))

	// Partial restock: still low, so a LOW_STOCK alert joins the OUT_OF_STOCK one
	product.Quantity = 3
	require.NoError(t, db.Save(product).Error)
	require.NoError(t, svc.CheckProduct(product))

	var alerts []model.Alert
	require.NoError(t, db.Where("status = ?", model.AlertActive).Find(&alerts).Error)
	assert.Len(t, alerts, 2)
}

func TestActiveAlertsDropsOrphans(t *testing.T) {
	db := setupTestDB(t)
	product := createTestProduct(t, db, "Widget", 0, 5)

	svc := NewAlertService(db)
	require.NoError(t, svc.CheckProduct(product))

	require.NoError(t, db.Delete(&model.Product{}, product.ID).Error)

	active, err := svc.ActiveAlerts()
	require.NoError(t, err)
	assert.Empty(t, active)

	var count int64
	require.NoError(t, db.Model(&model.Alert{}).Count(&count).Error)
	assert.Zero(t, count, "orphaned alert should have been deleted")
}

func TestActiveAlertsKeepsFashionProductAlerts(t *testing.T) {
	db := setupTestDB(t)
	product := createTestFashionProduct(t, db, "Tee",
		model.ProductVariant{Size: model.SizeS, Color: model.ColorBlack, Quantity: 0, MinStockLevel: 2},
	)

	svc := NewAlertService(db)
	require.NoError(t, svc.CheckVariant(&product.Variants[0], product))

	active, err := svc.ActiveAlerts()
	require.NoError(t, err)
	assert.Len(t, active, 1, "fashion product ids must not be treated as orphans")
}

func TestResolveAndResolveAll(t *testing.T) {
	db := setupTestDB(t)
	first := createTestProduct(t, db, "Widget", 0, 5)
	second := createTestProduct(t, db, "Gadget", 1, 5)

	svc := NewAlertService(db)
	require.NoError(t, svc.CheckProduct(first))
	require.NoError(t, svc.CheckProduct(second))

	var alert model.Alert
	require.NoError(t, db.First(&alert).Error)

	resolved, err := svc.Resolve(alert.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AlertResolved, resolved.Status)

	count, err := svc.ResolveAll()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.Resolve(9999)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCleanupOrphans(t *testing.T) {
	db := setupTestDB(t)
	kept := createTestProduct(t, db, "Widget", 0, 5)
	doomed := createTestProduct(t, db, "Gadget", 0, 5)

	svc := NewAlertService(db)
	require.NoError(t, svc.CheckProduct(kept))
	require.NoError(t, svc.CheckProduct(doomed))

	require.NoError(t, db.Delete(&model.Product{}, doomed.ID).Error)

	removed, err := svc.CleanupOrphans()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	var count int64
	require.NoError(t, db.Model(&model.Alert{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAlertsByTypeRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAlertService(db)

	_, err := svc.AlertsByType("SEVERE")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	alerts, err := svc.AlertsByType("low_stock")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
