package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
)

// ExportService renders the admin CSV downloads
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// TransactionsCSV exports the transaction ledger, newest first. When both
// dates parse as YYYY-MM-DD the range is inclusive of both days; on a parse
// error the full ledger is exported instead.
func (s *ExportService) TransactionsCSV(startDate, endDate string) (string, error) {
	var transactions []model.StockTransaction
	query := s.db.Order("created_at desc")

	if startDate != "" && endDate != "" {
		start, errStart := time.Parse("2006-01-02", startDate)
		end, errEnd := time.Parse("2006-01-02", endDate)
		if errStart == nil && errEnd == nil {
			end = end.Add(24*time.Hour - time.Second)
			query = query.Where("created_at BETWEEN ? AND ?", start, end)
		} else {
			logger.GetLogger().Warn("Invalid export date range, exporting all transactions",
				zap.String("startDate", startDate),
				zap.String("endDate", endDate))
		}
	}

	if err := query.Find(&transactions).Error; err != nil {
		return "", fmt.Errorf("failed to load transactions for export: %w", err)
	}

	var csv strings.Builder
	csv.WriteString("Date,Product Name,Product Details,Transaction Type,Quantity,User,Reason,Product ID,Transaction ID\n")

	for _, txn := range transactions {
		name := txn.EntityName
		if name == "" {
			name = "Unknown"
		}
		details := name
		if txn.VariantDetails != "" {
			details = fmt.Sprintf("%s (%s)", name, txn.VariantDetails)
		}

		var productID uint
		if txn.ProductID != nil {
			productID = *txn.ProductID
		} else if txn.FashionProductID != nil {
			productID = *txn.FashionProductID
		}

		writeCSVRow(&csv,
			formatCSVField(txn.CreatedAt.Format(time.RFC3339)),
			formatCSVField(name),
			formatCSVField(details),
			formatCSVField(string(txn.Type)),
			strconv.Itoa(txn.Quantity),
			formatCSVField(txn.Username),
			formatCSVField(txn.Reason),
			strconv.FormatUint(uint64(productID), 10),
			strconv.FormatUint(uint64(txn.ID), 10),
		)
	}

	logger.GetLogger().Info("Transactions CSV export completed",
		zap.Int("count", len(transactions)))
	return csv.String(), nil
}

// ProductsCSV exports the flat product catalog with a derived stock status
func (s *ExportService) ProductsCSV() (string, error) {
	var products []model.Product
	if err := s.db.Order("id asc").Find(&products).Error; err != nil {
		return "", fmt.Errorf("failed to load products for export: %w", err)
	}

	var csv strings.Builder
	csv.WriteString("Product Name,SKU,Description,Category,Current Stock,Min Stock Level,Price,Stock Status,Created Date,Last Updated\n")

	for i := range products {
		p := &products[i]
		writeCSVRow(&csv,
			formatCSVField(p.Name),
			formatCSVField(p.SKU),
			formatCSVField(p.Description),
			formatCSVField(p.Category),
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinStockLevel),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			formatCSVField(p.StockStatus()),
			formatCSVField(p.CreatedAt.Format(time.RFC3339)),
			formatCSVField(p.UpdatedAt.Format(time.RFC3339)),
		)
	}

	logger.GetLogger().Info("Products CSV export completed",
		zap.Int("count", len(products)))
	return csv.String(), nil
}

// FashionProductsCSV exports fashion products with one parent row per product
// followed by an indented sub-row per variant
func (s *ExportService) FashionProductsCSV() (string, error) {
	var products []model.FashionProduct
	if err := s.db.Preload("Variants").Order("id asc").Find(&products).Error; err != nil {
		return "", fmt.Errorf("failed to load fashion products for export: %w", err)
	}

	var csv strings.Builder
	csv.WriteString("Product Name,SKU,Description,Category,Brand,Season,Target Gender,Material,Base Price,Total Stock,Total Min Stock,Stock Status,Variants Count,Created Date,Last Updated\n")

	for i := range products {
		p := &products[i]
		writeCSVRow(&csv,
			formatCSVField(p.Name),
			formatCSVField(p.SKU),
			formatCSVField(p.Description),
			formatCSVField(p.Category.DisplayName()),
			formatCSVField(p.Brand),
			formatCSVField(p.Season.DisplayName()),
			formatCSVField(p.TargetGender.DisplayName()),
			formatCSVField(p.Material),
			strconv.FormatFloat(p.BasePrice, 'f', -1, 64),
			strconv.Itoa(p.TotalStock()),
			strconv.Itoa(p.TotalMinStock()),
			formatCSVField(stockStatusLabel(p.IsOutOfStock(), p.IsLowStock())),
			strconv.Itoa(len(p.Variants)),
			formatCSVField(p.CreatedAt.Format(time.RFC3339)),
			formatCSVField(p.UpdatedAt.Format(time.RFC3339)),
		)

		for j := range p.Variants {
			v := &p.Variants[j]
			writeCSVRow(&csv,
				"  - Variant",
				formatCSVField(v.VariantSKU),
				formatCSVField(fmt.Sprintf("Size: %s, Color: %s", v.Size.DisplayName(), v.Color.DisplayName())),
				"Variant",
				formatCSVField(p.Brand),
				formatCSVField(p.Season.DisplayName()),
				formatCSVField(p.TargetGender.DisplayName()),
				formatCSVField(p.Material),
				strconv.FormatFloat(v.FinalPrice(p.BasePrice), 'f', -1, 64),
				strconv.Itoa(v.Quantity),
				strconv.Itoa(v.MinStockLevel),
				formatCSVField(stockStatusLabel(v.IsOutOfStock(), v.IsLowStock())),
				"1",
				formatCSVField(v.CreatedAt.Format(time.RFC3339)),
				formatCSVField(v.UpdatedAt.Format(time.RFC3339)),
			)
		}
	}

	logger.GetLogger().Info("Fashion products CSV export completed",
		zap.Int("count", len(products)))
	return csv.String(), nil
}

func stockStatusLabel(outOfStock, lowStock bool) string {
	switch {
	case outOfStock:
		return "Out of Stock"
	case lowStock:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

func writeCSVRow(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, ","))
	b.WriteByte('\n')
}

// formatCSVField wraps fields containing commas, quotes or newlines in double
// quotes, doubling any inner quotes
func formatCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
}
