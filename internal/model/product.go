package model

import (
	"fmt"
	"strings"
	"time"
)

// Product represents a flat (non-variant) inventory item
type Product struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Name          string    `json:"name" gorm:"type:varchar(255);unique;not null"`
	SKU           string    `json:"sku" gorm:"type:varchar(100);unique"`
	Description   string    `json:"description" gorm:"type:text"`
	Category      string    `json:"category" gorm:"type:varchar(100);not null"`
	Quantity      int       `json:"quantity" gorm:"not null;default:0"`
	MinStockLevel int       `json:"minStockLevel" gorm:"not null;default:0"`
	Price         float64   `json:"price" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsLowStock reports whether the quantity has reached the configured minimum
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

// IsOutOfStock reports whether the product has no stock at all
func (p *Product) IsOutOfStock() bool {
	return p.Quantity == 0
}

// StockStatus returns the display status used by exports and dashboards
func (p *Product) StockStatus() string {
	switch {
	case p.IsOutOfStock():
		return "Out of Stock"
	case p.IsLowStock():
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// GenerateSKU derives a product SKU from its name: an alphanumeric prefix of
// the upper-cased name plus a millisecond suffix for uniqueness.
func GenerateSKU(name string) string {
	prefix := sanitizeSKUPart(name, 8)
	if prefix == "" {
		return fmt.Sprintf("SKU-%d", time.Now().UnixMilli())
	}
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli()%10000)
}

func sanitizeSKUPart(s string, max int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > max {
		out = out[:max]
	}
	return out
}
