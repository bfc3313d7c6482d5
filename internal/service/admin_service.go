package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
)

// DashboardStats is the admin overview payload
type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	PendingUsers     int64 `json:"pendingUsers"`
	ApprovedUsers    int64 `json:"approvedUsers"`
	RejectedUsers    int64 `json:"rejectedUsers"`
	TotalProducts    int64 `json:"totalProducts"`
	TotalStock       int64 `json:"totalStock"`
	LowStockCount    int64 `json:"lowStockCount"`
	OutOfStockCount  int64 `json:"outOfStockCount"`
	RecentTxnCount   int64 `json:"recentTransactions"`
	ActiveAlertCount int64 `json:"activeAlerts"`
}

// AdminService covers user administration and the dashboard
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// PendingUsers lists accounts waiting for approval
func (s *AdminService) PendingUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Where("status = ?", model.StatusPending).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}
	return users, nil
}

// AllUsers lists every account
func (s *AdminService) AllUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("created_at asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUserStatus approves or rejects an account. Admin accounts are
// immutable.
func (s *AdminService) UpdateUserStatus(id uint, status model.UserStatus) (*model.User, error) {
	if !status.Valid() {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid status: %s", status)}
	}

	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", Key: fmt.Sprintf("%d", id)}
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.Role == model.RoleAdmin {
		return nil, &ForbiddenError{Msg: "admin accounts cannot be modified"}
	}

	user.Status = status
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	logger.GetLogger().Info("User status updated",
		zap.String("username", user.Username),
		zap.String("status", string(status)))
	return &user, nil
}

// DeleteUser removes an account. Admin accounts cannot be deleted.
func (s *AdminService) DeleteUser(id uint) error {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "user", Key: fmt.Sprintf("%d", id)}
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.Role == model.RoleAdmin {
		return &ForbiddenError{Msg: "admin accounts cannot be deleted"}
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	logger.GetLogger().Info("User deleted", zap.String("username", user.Username))
	return nil
}

// Dashboard aggregates counts across users, stock, transactions and alerts
func (s *AdminService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}

	users := s.db.Model(&model.User{})
	if err := users.Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&model.User{}).Where("status = ?", model.StatusPending).Count(&stats.PendingUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending users: %w", err)
	}
	if err := s.db.Model(&model.User{}).Where("status = ?", model.StatusApproved).Count(&stats.ApprovedUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count approved users: %w", err)
	}
	if err := s.db.Model(&model.User{}).Where("status = ?", model.StatusRejected).Count(&stats.RejectedUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count rejected users: %w", err)
	}

	if err := s.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var totalStock *int64
	if err := s.db.Model(&model.Product{}).Select("SUM(quantity)").Scan(&totalStock).Error; err != nil {
		return nil, fmt.Errorf("failed to sum stock: %w", err)
	}
	if totalStock != nil {
		stats.TotalStock = *totalStock
	}

	if err := s.db.Model(&model.Product{}).
		Where("quantity > 0 AND quantity <= min_stock_level").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}
	if err := s.db.Model(&model.Product{}).Where("quantity = 0").Count(&stats.OutOfStockCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count out of stock: %w", err)
	}

	since := time.Now().AddDate(0, 0, -7)
	if err := s.db.Model(&model.StockTransaction{}).
		Where("created_at >= ?", since).
		Count(&stats.RecentTxnCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count recent transactions: %w", err)
	}

	if err := s.db.Model(&model.Alert{}).
		Where("status = ?", model.AlertActive).
		Count(&stats.ActiveAlertCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count active alerts: %w", err)
	}

	return stats, nil
}
