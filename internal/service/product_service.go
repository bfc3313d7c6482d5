package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
)

// ProductRequest carries the writable fields of a flat product
type ProductRequest struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Quantity      int     `json:"quantity"`
	MinStockLevel int     `json:"minStockLevel"`
	Price         float64 `json:"price"`
}

func (r *ProductRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if strings.TrimSpace(r.Category) == "" {
		return &ValidationError{Msg: "category is required"}
	}
	if r.Quantity < 0 {
		return &ValidationError{Msg: "quantity cannot be negative"}
	}
	if r.MinStockLevel < 0 {
		return &ValidationError{Msg: "minStockLevel cannot be negative"}
	}
	return nil
}

// ProductService manages the flat product catalog
type ProductService struct {
	db     *gorm.DB
	alerts *AlertService
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:     db,
		alerts: NewAlertService(db),
	}
}

// All returns every product, newest first
func (s *ProductService) All() ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ByID returns one product
func (s *ProductService) ByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "product", Key: id}
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

// Create adds a product. A missing SKU is derived from the name. An initial
// quantity is recorded as a STOCK_IN ledger entry, best-effort.
func (s *ProductService) Create(req *ProductRequest, username string) (*model.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.Product{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}
	if count > 0 {
		return nil, &ConflictError{Msg: "product with this name already exists"}
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		sku = model.GenerateSKU(req.Name)
	}

	product := model.Product{
		Name:          req.Name,
		SKU:           sku,
		Description:   req.Description,
		Category:      req.Category,
		Quantity:      req.Quantity,
		MinStockLevel: req.MinStockLevel,
		Price:         req.Price,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// Record the initial stock as a ledger entry; the product itself already
	// carries the quantity, so a recording failure does not fail the create.
	if product.Quantity > 0 && username != "" {
		reason := fmt.Sprintf("Initial stock - Product created with %d units", product.Quantity)
		s.recordAdjustment(&product, model.StockIn, product.Quantity, reason, username)
	}

	if err := s.alerts.CheckProduct(&product); err != nil {
		return nil, err
	}

	logger.GetLogger().Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	return &product, nil
}

// Update edits a product. A quantity change is mirrored into the transaction
// ledger as a delta movement, best-effort.
func (s *ProductService) Update(id uint, req *ProductRequest, username string) (*model.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var product model.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "product", Key: id}
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if req.Name != product.Name {
		var count int64
		if err := s.db.Model(&model.Product{}).
			Where("name = ? AND id != ?", req.Name, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check product name: %w", err)
		}
		if count > 0 {
			return nil, &ConflictError{Msg: "product with this name already exists"}
		}
	}

	oldQuantity := product.Quantity

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Quantity = req.Quantity
	product.MinStockLevel = req.MinStockLevel
	product.Price = req.Price
	if strings.TrimSpace(req.SKU) != "" {
		product.SKU = req.SKU
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if product.Quantity != oldQuantity && username != "" {
		if product.Quantity > oldQuantity {
			reason := fmt.Sprintf("Product updated - Stock increased from %d to %d", oldQuantity, product.Quantity)
			s.recordAdjustment(&product, model.StockIn, product.Quantity-oldQuantity, reason, username)
		} else {
			reason := fmt.Sprintf("Product updated - Stock decreased from %d to %d", oldQuantity, product.Quantity)
			s.recordAdjustment(&product, model.StockOut, oldQuantity-product.Quantity, reason, username)
		}
	}

	if err := s.alerts.CheckProduct(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// recordAdjustment writes a ledger entry for a direct edit without moving
// stock again; the edited row already holds the new quantity.
func (s *ProductService) recordAdjustment(product *model.Product, txType model.TransactionType, quantity int, reason, username string) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		logger.GetLogger().Warn("Skipping adjustment ledger entry, user unknown",
			zap.String("username", username), zap.Error(err))
		return
	}

	transaction := model.StockTransaction{
		ProductID:  &product.ID,
		EntityName: product.Name,
		EntityType: model.EntityRegularProduct,
		Type:       txType,
		Quantity:   quantity,
		Reason:     reason,
		UserID:     user.ID,
		Username:   user.Username,
	}
	if err := s.db.Create(&transaction).Error; err != nil {
		logger.GetLogger().Warn("Failed to record adjustment ledger entry",
			zap.Uint("product_id", product.ID), zap.Error(err))
	}
}

// Delete removes a product. Alerts referencing it are left behind as orphans
// for the cleanup operation.
func (s *ProductService) Delete(id uint) error {
	result := s.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "product", Key: id}
	}
	return nil
}

// LowStock returns products at or below their minimum stock level
func (s *ProductService) LowStock() ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Where("quantity <= min_stock_level").
		Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return products, nil
}

// OutOfStock returns products with zero quantity
func (s *ProductService) OutOfStock() ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Where("quantity = 0").
		Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list out of stock products: %w", err)
	}
	return products, nil
}

// ByCategory returns products in one category
func (s *ProductService) ByCategory(category string) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.Where("category = ?", category).
		Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}
