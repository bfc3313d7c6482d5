package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// AlertService derives stock alerts from quantity changes and manages the
// alert lifecycle. At most one ACTIVE alert exists per (product, type) pair,
// enforced by create-or-skip logic rather than a database constraint.
type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// CheckProduct inspects a product after a quantity change and opens or
// resolves alerts accordingly. Calling it twice with the same state is a
// no-op the second time.
func (s *AlertService) CheckProduct(p *model.Product) error {
	if p == nil {
		return nil
	}

	switch {
	case p.IsOutOfStock():
		msg := fmt.Sprintf("%s is completely out of stock! Immediate restocking required.", p.Name)
		return s.ensureActive(p.ID, p.Name, model.AlertOutOfStock, msg)
	case p.IsLowStock():
		msg := fmt.Sprintf("%s is running low on stock. Current: %d units, Minimum required: %d units. Please restock soon.",
			p.Name, p.Quantity, p.MinStockLevel)
		return s.ensureActive(p.ID, p.Name, model.AlertLowStock, msg)
	default:
		return s.resolveForProduct(p.ID)
	}
}

// CheckVariant inspects a fashion product variant after a quantity change.
// The alert is recorded against the parent product identity; the size/color
// detail is carried only in the message.
func (s *AlertService) CheckVariant(v *model.ProductVariant, parent *model.FashionProduct) error {
	if v == nil || parent == nil {
		return nil
	}

	display := fmt.Sprintf("%s (%s/%s)", parent.Name, v.Size.DisplayName(), v.Color.DisplayName())

	switch {
	case v.IsOutOfStock():
		msg := fmt.Sprintf("%s is completely out of stock! Immediate restocking required.", display)
		return s.ensureActive(parent.ID, parent.Name, model.AlertOutOfStock, msg)
	case v.IsLowStock():
		msg := fmt.Sprintf("%s is running low on stock. Current: %d units, Minimum required: %d units. Please restock soon.",
			display, v.Quantity, v.MinStockLevel)
		return s.ensureActive(parent.ID, parent.Name, model.AlertLowStock, msg)
	default:
		return s.resolveForProduct(parent.ID)
	}
}

func (s *AlertService) ensureActive(productID uint, productName string, typ model.AlertType, message string) error {
	var existing model.Alert
	err := s.db.Where("product_id = ? AND type = ? AND status = ?", productID, typ, model.AlertActive).
		First(&existing).Error
	if err == nil {
		// Already flagged; keep the original alert
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up active alert: %w", err)
	}

	alert := model.Alert{
		ProductID:   &productID,
		ProductName: productName,
		Type:        typ,
		Message:     message,
		Status:      model.AlertActive,
	}
	if err := s.db.Create(&alert).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	prometheus.RecordAlertCreated(string(typ))

	logger.GetLogger().Info("Stock alert opened",
		zap.Uint("product_id", productID),
		zap.String("type", string(typ)))
	return nil
}

func (s *AlertService) resolveForProduct(productID uint) error {
	result := s.db.Model(&model.Alert{}).
		Where("product_id = ? AND status = ?", productID, model.AlertActive).
		Update("status", model.AlertResolved)
	if result.Error != nil {
		return fmt.Errorf("failed to resolve alerts: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		logger.GetLogger().Info("Stock alerts resolved",
			zap.Uint("product_id", productID),
			zap.Int64("count", result.RowsAffected))
	}
	return nil
}

// AllAlerts returns every alert, newest first
func (s *AlertService) AllAlerts() ([]model.Alert, error) {
	var alerts []model.Alert
	if err := s.db.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// ActiveAlerts returns ACTIVE alerts, lazily deleting orphans whose product
// no longer exists
func (s *AlertService) ActiveAlerts() ([]model.Alert, error) {
	var alerts []model.Alert
	if err := s.db.Where("status = ?", model.AlertActive).
		Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	valid := make([]model.Alert, 0, len(alerts))
	var orphanIDs []uint
	for _, a := range alerts {
		orphan, err := s.isOrphan(&a)
		if err != nil {
			return nil, err
		}
		if orphan {
			orphanIDs = append(orphanIDs, a.ID)
			continue
		}
		valid = append(valid, a)
	}

	if len(orphanIDs) > 0 {
		if err := s.db.Delete(&model.Alert{}, orphanIDs).Error; err != nil {
			return nil, fmt.Errorf("failed to clean up orphaned alerts: %w", err)
		}
		logger.GetLogger().Info("Cleaned up orphaned alerts", zap.Int("count", len(orphanIDs)))
	}

	return valid, nil
}

// RecentAlerts returns the 10 most recent alerts
func (s *AlertService) RecentAlerts() ([]model.Alert, error) {
	var alerts []model.Alert
	if err := s.db.Order("created_at DESC").Limit(10).Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent alerts: %w", err)
	}
	return alerts, nil
}

// AlertsByType returns alerts of one type, newest first
func (s *AlertService) AlertsByType(typ string) ([]model.Alert, error) {
	alertType := model.AlertType(strings.ToUpper(typ))
	if !alertType.Valid() {
		return nil, &ValidationError{Msg: "invalid alert type: " + typ}
	}

	var alerts []model.Alert
	if err := s.db.Where("type = ?", alertType).
		Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts by type: %w", err)
	}
	return alerts, nil
}

// Resolve marks one alert RESOLVED
func (s *AlertService) Resolve(id uint) (*model.Alert, error) {
	var alert model.Alert
	if err := s.db.First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "alert", Key: id}
		}
		return nil, fmt.Errorf("failed to load alert: %w", err)
	}

	alert.Status = model.AlertResolved
	if err := s.db.Save(&alert).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve alert: %w", err)
	}
	return &alert, nil
}

// Delete removes one alert. This is an explicit admin action; the deriver
// itself never deletes.
func (s *AlertService) Delete(id uint) error {
	result := s.db.Delete(&model.Alert{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete alert: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "alert", Key: id}
	}
	return nil
}

// ResolveAll marks every ACTIVE alert RESOLVED
func (s *AlertService) ResolveAll() (int64, error) {
	result := s.db.Model(&model.Alert{}).
		Where("status = ?", model.AlertActive).
		Update("status", model.AlertResolved)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to resolve alerts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CleanupOrphans deletes every alert whose product reference is gone and
// returns how many were removed
func (s *AlertService) CleanupOrphans() (int, error) {
	var alerts []model.Alert
	if err := s.db.Find(&alerts).Error; err != nil {
		return 0, fmt.Errorf("failed to list alerts: %w", err)
	}

	var orphanIDs []uint
	for _, a := range alerts {
		orphan, err := s.isOrphan(&a)
		if err != nil {
			return 0, err
		}
		if orphan {
			orphanIDs = append(orphanIDs, a.ID)
		}
	}

	if len(orphanIDs) > 0 {
		if err := s.db.Delete(&model.Alert{}, orphanIDs).Error; err != nil {
			return 0, fmt.Errorf("failed to delete orphaned alerts: %w", err)
		}
		logger.GetLogger().Info("Cleaned up orphaned alerts", zap.Int("count", len(orphanIDs)))
	}

	return len(orphanIDs), nil
}

// isOrphan reports whether the alert's product reference points at nothing.
// Variant-sourced alerts carry fashion product ids, so both tables count.
func (s *AlertService) isOrphan(a *model.Alert) (bool, error) {
	if a.ProductID == nil {
		return true, nil
	}

	var count int64
	if err := s.db.Model(&model.Product{}).Where("id = ?", *a.ProductID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product reference: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := s.db.Model(&model.FashionProduct{}).Where("id = ?", *a.ProductID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check fashion product reference: %w", err)
	}
	return count == 0, nil
}
