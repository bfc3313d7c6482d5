package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
)

// ProductVariantRequest carries one size/color combination on create
type ProductVariantRequest struct {
	Size            string  `json:"size"`
	Color           string  `json:"color"`
	Quantity        int     `json:"quantity"`
	MinStockLevel   int     `json:"minStockLevel"`
	PriceAdjustment float64 `json:"priceAdjustment"`
}

// FashionProductRequest carries the writable fields of a fashion product
type FashionProductRequest struct {
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	Category         string                  `json:"category"`
	Brand            string                  `json:"brand"`
	BasePrice        float64                 `json:"basePrice"`
	Season           string                  `json:"season"`
	TargetGender     string                  `json:"targetGender"`
	Material         string                  `json:"material"`
	CareInstructions string                  `json:"careInstructions"`
	Variants         []ProductVariantRequest `json:"variants"`
}

func (r *FashionProductRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if strings.TrimSpace(r.Brand) == "" {
		return &ValidationError{Msg: "brand is required"}
	}
	if !model.FashionCategory(r.Category).Valid() {
		return &ValidationError{Msg: "invalid category: " + r.Category}
	}
	if r.Season != "" && !model.Season(r.Season).Valid() {
		return &ValidationError{Msg: "invalid season: " + r.Season}
	}
	if r.TargetGender != "" && !model.Gender(r.TargetGender).Valid() {
		return &ValidationError{Msg: "invalid target gender: " + r.TargetGender}
	}
	for _, v := range r.Variants {
		if !model.Size(v.Size).Valid() {
			return &ValidationError{Msg: "invalid size: " + v.Size}
		}
		if !model.Color(v.Color).Valid() {
			return &ValidationError{Msg: "invalid color: " + v.Color}
		}
		if v.Quantity < 0 || v.MinStockLevel < 0 {
			return &ValidationError{Msg: "variant quantity and minStockLevel cannot be negative"}
		}
	}
	return nil
}

// FashionService manages the variant-based product catalog
type FashionService struct {
	db     *gorm.DB
	alerts *AlertService
}

func NewFashionService(db *gorm.DB) *FashionService {
	return &FashionService{
		db:     db,
		alerts: NewAlertService(db),
	}
}

func (s *FashionService) withVariants() *gorm.DB {
	return s.db.Preload("Variants")
}

// All returns every fashion product with variants, newest first
func (s *FashionService) All() ([]model.FashionProduct, error) {
	var products []model.FashionProduct
	if err := s.withVariants().Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list fashion products: %w", err)
	}
	return products, nil
}

// ByID returns one fashion product with variants
func (s *FashionService) ByID(id uint) (*model.FashionProduct, error) {
	var product model.FashionProduct
	if err := s.withVariants().First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "fashion product", Key: id}
		}
		return nil, fmt.Errorf("failed to load fashion product: %w", err)
	}
	return &product, nil
}

// BySKU returns one fashion product with variants, looked up by SKU
func (s *FashionService) BySKU(sku string) (*model.FashionProduct, error) {
	var product model.FashionProduct
	if err := s.withVariants().Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "fashion product", Key: sku}
		}
		return nil, fmt.Errorf("failed to load fashion product: %w", err)
	}
	return &product, nil
}

// Create adds a fashion product and its inline variants. Variants born at or
// below their minimum immediately raise alerts.
func (s *FashionService) Create(req *FashionProductRequest) (*model.FashionProduct, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.FashionProduct{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check fashion product name: %w", err)
	}
	if count > 0 {
		return nil, &ConflictError{Msg: "fashion product with this name already exists"}
	}

	product := model.FashionProduct{
		Name:             req.Name,
		SKU:              model.GenerateFashionSKU(req.Name, model.FashionCategory(req.Category)),
		Description:      req.Description,
		Category:         model.FashionCategory(req.Category),
		Brand:            req.Brand,
		BasePrice:        req.BasePrice,
		Season:           model.Season(req.Season),
		TargetGender:     model.Gender(req.TargetGender),
		Material:         req.Material,
		CareInstructions: req.CareInstructions,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create fashion product: %w", err)
		}

		alerts := NewAlertService(tx)
		for _, vr := range req.Variants {
			variant := model.ProductVariant{
				ProductID:       product.ID,
				Size:            model.Size(vr.Size),
				Color:           model.Color(vr.Color),
				Quantity:        vr.Quantity,
				MinStockLevel:   vr.MinStockLevel,
				PriceAdjustment: vr.PriceAdjustment,
				VariantSKU:      model.GenerateVariantSKU(product.SKU, model.Size(vr.Size), model.Color(vr.Color)),
			}
			if err := tx.Create(&variant).Error; err != nil {
				return fmt.Errorf("failed to create product variant: %w", err)
			}

			if variant.IsLowStock() || variant.IsOutOfStock() {
				if err := alerts.CheckVariant(&variant, &product); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Info("Fashion product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("variants", len(req.Variants)))
	return s.ByID(product.ID)
}

// Update edits a fashion product's own fields. Variants are untouched.
func (s *FashionService) Update(id uint, req *FashionProductRequest) (*model.FashionProduct, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var product model.FashionProduct
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "fashion product", Key: id}
		}
		return nil, fmt.Errorf("failed to load fashion product: %w", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = model.FashionCategory(req.Category)
	product.Brand = req.Brand
	product.BasePrice = req.BasePrice
	product.Season = model.Season(req.Season)
	product.TargetGender = model.Gender(req.TargetGender)
	product.Material = req.Material
	product.CareInstructions = req.CareInstructions

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update fashion product: %w", err)
	}
	return s.ByID(product.ID)
}

// Delete removes a fashion product and cascades to its variants
func (s *FashionService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.FashionProduct{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete fashion product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &NotFoundError{Resource: "fashion product", Key: id}
		}
		// Cascade regardless of whether the FK constraint made it into the schema
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariant{}).Error; err != nil {
			return fmt.Errorf("failed to delete product variants: %w", err)
		}
		return nil
	})
}

// ByCategory returns fashion products in one category
func (s *FashionService) ByCategory(category string) ([]model.FashionProduct, error) {
	cat := model.FashionCategory(strings.ToUpper(category))
	if !cat.Valid() {
		return nil, &ValidationError{Msg: "invalid category: " + category}
	}
	var products []model.FashionProduct
	if err := s.withVariants().Where("category = ?", cat).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list fashion products by category: %w", err)
	}
	return products, nil
}

// ByBrand returns fashion products of one brand, case-insensitively
func (s *FashionService) ByBrand(brand string) ([]model.FashionProduct, error) {
	var products []model.FashionProduct
	if err := s.withVariants().Where("LOWER(brand) = LOWER(?)", brand).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list fashion products by brand: %w", err)
	}
	return products, nil
}

// BySeason returns fashion products of one season
func (s *FashionService) BySeason(season string) ([]model.FashionProduct, error) {
	se := model.Season(strings.ToUpper(season))
	if !se.Valid() {
		return nil, &ValidationError{Msg: "invalid season: " + season}
	}
	var products []model.FashionProduct
	if err := s.withVariants().Where("season = ?", se).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list fashion products by season: %w", err)
	}
	return products, nil
}

// CurrentSeason returns products matching the calendar's season plus
// all-season items
func (s *FashionService) CurrentSeason() ([]model.FashionProduct, error) {
	current := model.SeasonForMonth(time.Now().Month())
	var products []model.FashionProduct
	if err := s.withVariants().
		Where("season = ? OR season = ?", current, model.SeasonAllSeason).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list current season products: %w", err)
	}
	return products, nil
}

// ByGender returns fashion products for one target audience
func (s *FashionService) ByGender(gender string) ([]model.FashionProduct, error) {
	g := model.Gender(strings.ToUpper(gender))
	if !g.Valid() {
		return nil, &ValidationError{Msg: "invalid target gender: " + gender}
	}
	var products []model.FashionProduct
	if err := s.withVariants().Where("target_gender = ?", g).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list fashion products by gender: %w", err)
	}
	return products, nil
}

// Search returns fashion products whose name contains the term,
// case-insensitively
func (s *FashionService) Search(term string) ([]model.FashionProduct, error) {
	var products []model.FashionProduct
	if err := s.withVariants().
		Where("LOWER(name) LIKE LOWER(?)", "%"+term+"%").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search fashion products: %w", err)
	}
	return products, nil
}

// ByPriceRange returns fashion products whose base price falls in [min, max]
func (s *FashionService) ByPriceRange(min, max float64) ([]model.FashionProduct, error) {
	if min < 0 || max < min {
		return nil, &ValidationError{Msg: "invalid price range"}
	}
	var products []model.FashionProduct
	if err := s.withVariants().
		Where("base_price >= ? AND base_price <= ?", min, max).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list fashion products by price range: %w", err)
	}
	return products, nil
}

// LowStock returns fashion products whose variant totals sit at or below
// their aggregate minimum
func (s *FashionService) LowStock() ([]model.FashionProduct, error) {
	products, err := s.All()
	if err != nil {
		return nil, err
	}
	low := make([]model.FashionProduct, 0)
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

// OutOfStock returns fashion products with no stock in any variant
func (s *FashionService) OutOfStock() ([]model.FashionProduct, error) {
	products, err := s.All()
	if err != nil {
		return nil, err
	}
	out := make([]model.FashionProduct, 0)
	for _, p := range products {
		if p.IsOutOfStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Trending returns the 20 most recently added fashion products
func (s *FashionService) Trending() ([]model.FashionProduct, error) {
	var products []model.FashionProduct
	if err := s.withVariants().Order("created_at DESC").Limit(20).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list trending products: %w", err)
	}
	return products, nil
}

// AvailableSizes returns the sizes with stock for one product, optionally
// restricted to a color
func (s *FashionService) AvailableSizes(productID uint, color string) ([]model.Size, error) {
	if _, err := s.ByID(productID); err != nil {
		return nil, err
	}
	if color != "" && !model.Color(color).Valid() {
		return nil, &ValidationError{Msg: "invalid color: " + color}
	}

	query := s.db.Model(&model.ProductVariant{}).
		Where("product_id = ? AND quantity > 0", productID)
	if color != "" {
		query = query.Where("color = ?", model.Color(color))
	}

	var sizes []model.Size
	if err := query.Distinct("size").Order("size").Pluck("size", &sizes).Error; err != nil {
		return nil, fmt.Errorf("failed to list available sizes: %w", err)
	}
	return sizes, nil
}

// AvailableColors returns the colors with stock for one product, optionally
// restricted to a size
func (s *FashionService) AvailableColors(productID uint, size string) ([]model.Color, error) {
	if _, err := s.ByID(productID); err != nil {
		return nil, err
	}
	if size != "" && !model.Size(size).Valid() {
		return nil, &ValidationError{Msg: "invalid size: " + size}
	}

	query := s.db.Model(&model.ProductVariant{}).
		Where("product_id = ? AND quantity > 0", productID)
	if size != "" {
		query = query.Where("size = ?", model.Size(size))
	}

	var colors []model.Color
	if err := query.Distinct("color").Order("color").Pluck("color", &colors).Error; err != nil {
		return nil, fmt.Errorf("failed to list available colors: %w", err)
	}
	return colors, nil
}
