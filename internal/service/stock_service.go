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

// StockTransactionRequest targets either a flat product or a fashion
// product/variant pair with a signed-intent movement
type StockTransactionRequest struct {
	ProductID        *uint  `json:"productId"`
	FashionProductID *uint  `json:"fashionProductId"`
	VariantID        *uint  `json:"variantId"`
	Type             string `json:"type"`
	Quantity         int    `json:"quantity"`
	Reason           string `json:"reason"`
}

func (r *StockTransactionRequest) isRegularProduct() bool {
	return r.ProductID != nil
}

func (r *StockTransactionRequest) isFashionProduct() bool {
	return r.FashionProductID != nil && r.VariantID != nil
}

// StockService validates and applies stock movements and records the
// immutable transaction ledger
type StockService struct {
	db *gorm.DB
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// Create applies a quantity delta to the target, persists a transaction
// record snapshotting the target's display fields, and runs alert derivation,
// all inside one database transaction. On any error nothing persists.
func (s *StockService) Create(req *StockTransactionRequest, username string) (*model.StockTransaction, error) {
	txType := model.TransactionType(strings.ToUpper(req.Type))
	if !txType.Valid() {
		return nil, &ValidationError{Msg: "invalid transaction type: " + req.Type}
	}
	if req.Quantity <= 0 {
		return nil, &ValidationError{Msg: "quantity must be positive"}
	}
	if req.isRegularProduct() && req.isFashionProduct() {
		return nil, &ValidationError{Msg: "provide either productId or (fashionProductId + variantId), not both"}
	}
	if !req.isRegularProduct() && !req.isFashionProduct() {
		return nil, &ValidationError{Msg: "either productId or (fashionProductId + variantId) must be provided"}
	}

	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", Key: username}
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var created *model.StockTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if req.isRegularProduct() {
			created, err = s.applyProductMovement(tx, req, txType, &user)
		} else {
			created, err = s.applyVariantMovement(tx, req, txType, &user)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Info("Stock transaction recorded",
		zap.Uint("transaction_id", created.ID),
		zap.String("type", string(txType)),
		zap.Int("quantity", req.Quantity),
		zap.String("entity", created.EntityName),
		zap.String("user", username))
	return created, nil
}

func (s *StockService) applyProductMovement(tx *gorm.DB, req *StockTransactionRequest, txType model.TransactionType, user *model.User) (*model.StockTransaction, error) {
	var product model.Product
	if err := tx.First(&product, *req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "product", Key: *req.ProductID}
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if err := applyDelta(tx, &model.Product{}, product.ID, txType, req.Quantity); err != nil {
		var insufficient *InsufficientStockError
		if errors.As(err, &insufficient) {
			// Report the quantity the caller could still take
			insufficient.Available = product.Quantity
		}
		return nil, err
	}

	// Reload for the post-update quantity
	if err := tx.First(&product, product.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	transaction := model.StockTransaction{
		ProductID:  &product.ID,
		EntityName: product.Name,
		EntityType: model.EntityRegularProduct,
		Type:       txType,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
		UserID:     user.ID,
		Username:   user.Username,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := NewAlertService(tx).CheckProduct(&product); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (s *StockService) applyVariantMovement(tx *gorm.DB, req *StockTransactionRequest, txType model.TransactionType, user *model.User) (*model.StockTransaction, error) {
	var parent model.FashionProduct
	if err := tx.First(&parent, *req.FashionProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "fashion product", Key: *req.FashionProductID}
		}
		return nil, fmt.Errorf("failed to load fashion product: %w", err)
	}

	var variant model.ProductVariant
	if err := tx.First(&variant, *req.VariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "product variant", Key: *req.VariantID}
		}
		return nil, fmt.Errorf("failed to load product variant: %w", err)
	}

	if variant.ProductID != parent.ID {
		return nil, &ValidationError{Msg: "variant does not belong to the specified fashion product"}
	}

	if err := applyDelta(tx, &model.ProductVariant{}, variant.ID, txType, req.Quantity); err != nil {
		var insufficient *InsufficientStockError
		if errors.As(err, &insufficient) {
			insufficient.Available = variant.Quantity
			insufficient.Detail = variant.Details()
		}
		return nil, err
	}

	if err := tx.First(&variant, variant.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product variant: %w", err)
	}

	transaction := model.StockTransaction{
		FashionProductID: &parent.ID,
		ProductVariantID: &variant.ID,
		EntityName:       parent.Name,
		EntityType:       model.EntityFashionProduct,
		VariantDetails:   variant.Details(),
		Type:             txType,
		Quantity:         req.Quantity,
		Reason:           req.Reason,
		UserID:           user.ID,
		Username:         user.Username,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := NewAlertService(tx).CheckVariant(&variant, &parent); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// applyDelta mutates the quantity column in a single conditional UPDATE so the
// sufficiency check and the decrement cannot see different quantities under
// concurrent movements against the same row.
func applyDelta(tx *gorm.DB, entity any, id uint, txType model.TransactionType, quantity int) error {
	query := tx.Model(entity).Where("id = ?", id)
	var result *gorm.DB
	if txType == model.StockIn {
		result = query.Update("quantity", gorm.Expr("quantity + ?", quantity))
	} else {
		result = query.Where("quantity >= ?", quantity).
			Update("quantity", gorm.Expr("quantity - ?", quantity))
	}
	if result.Error != nil {
		return fmt.Errorf("failed to update quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Row exists (the caller loaded it); the guard clause rejected the take
		return &InsufficientStockError{}
	}
	return nil
}

// AllTransactions returns the full ledger, newest first
func (s *StockService) AllTransactions() ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	if err := s.db.Order("created_at DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// TransactionsByType returns ledger entries of one movement type
func (s *StockService) TransactionsByType(typ string) ([]model.StockTransaction, error) {
	txType := model.TransactionType(strings.ToUpper(typ))
	if !txType.Valid() {
		return nil, &ValidationError{Msg: "invalid transaction type: " + typ}
	}

	var transactions []model.StockTransaction
	if err := s.db.Where("type = ?", txType).
		Order("created_at DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions by type: %w", err)
	}
	return transactions, nil
}

// TransactionsByProduct returns ledger entries for one flat product
func (s *StockService) TransactionsByProduct(productID uint) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	if err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions by product: %w", err)
	}
	return transactions, nil
}

// TransactionsByFashionProduct returns ledger entries for one fashion product
func (s *StockService) TransactionsByFashionProduct(fashionProductID uint) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	if err := s.db.Where("fashion_product_id = ?", fashionProductID).
		Order("created_at DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions by fashion product: %w", err)
	}
	return transactions, nil
}

// RecentTransactions returns the 10 most recent ledger entries
func (s *StockService) RecentTransactions() ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	if err := s.db.Order("created_at DESC").Limit(10).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return transactions, nil
}
