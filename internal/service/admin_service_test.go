package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/model"
)

func TestUpdateUserStatus(t *testing.T) {
	db := setupTestDB(t)
	manager := createTestUser(t, db, "carol", model.RoleManager)
	require.NoError(t, db.Model(manager).Update("status", model.StatusPending).Error)

	svc := NewAdminService(db)
	updated, err := svc.UpdateUserStatus(manager.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.Status)

	_, err = svc.UpdateUserStatus(manager.ID, "BANNED")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.UpdateUserStatus(9999, model.StatusApproved)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAdminAccountsAreImmutable(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "root", model.RoleAdmin)

	svc := NewAdminService(db)
	var forbidden *ForbiddenError

	_, err := svc.UpdateUserStatus(admin.ID, model.StatusRejected)
	require.ErrorAs(t, err, &forbidden)

	err = svc.DeleteUser(admin.ID)
	require.ErrorAs(t, err, &forbidden)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	staff := createTestUser(t, db, "bob", model.RoleStaff)

	svc := NewAdminService(db)
	require.NoError(t, svc.DeleteUser(staff.ID))

	err := svc.DeleteUser(staff.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPendingUsersListing(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "bob", model.RoleStaff)
	pending := createTestUser(t, db, "carol", model.RoleManager)
	require.NoError(t, db.Model(pending).Update("status", model.StatusPending).Error)

	svc := NewAdminService(db)

	pendingUsers, err := svc.PendingUsers()
	require.NoError(t, err)
	require.Len(t, pendingUsers, 1)
	assert.Equal(t, "carol", pendingUsers[0].Username)

	all, err := svc.AllUsers()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "root", model.RoleAdmin)
	createTestUser(t, db, "alice", model.RoleManager)
	createTestProduct(t, db, "Healthy", 50, 5)
	createTestProduct(t, db, "Low", 3, 5)
	createTestProduct(t, db, "Empty", 0, 5)

	alerts := NewAlertService(db)
	var low model.Product
	require.NoError(t, db.Where("name = ?", "Low").First(&low).Error)
	require.NoError(t, alerts.CheckProduct(&low))

	stock := NewStockService(db)
	var healthy model.Product
	require.NoError(t, db.Where("name = ?", "Healthy").First(&healthy).Error)
	_, err := stock.Create(&StockTransactionRequest{
		ProductID: &healthy.ID, Type: "STOCK_OUT", Quantity: 5,
	}, "alice")
	require.NoError(t, err)

	svc := NewAdminService(db)
	stats, err := svc.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.ApprovedUsers)
	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(48), stats.TotalStock)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.OutOfStockCount)
	assert.Equal(t, int64(1), stats.RecentTxnCount)
	assert.Equal(t, int64(1), stats.ActiveAlertCount)
}
