package model

import "time"

// TransactionType is the signed intent of a stock movement
type TransactionType string

const (
	StockIn  TransactionType = "STOCK_IN"
	StockOut TransactionType = "STOCK_OUT"
)

func (t TransactionType) Valid() bool {
	return t == StockIn || t == StockOut
}

// EntityType distinguishes the kind of target a transaction moved stock on
type EntityType string

const (
	EntityRegularProduct EntityType = "REGULAR_PRODUCT"
	EntityFashionProduct EntityType = "FASHION_PRODUCT"
)

// StockTransaction is an append-only ledger entry for one stock movement.
// EntityName, EntityType and VariantDetails are snapshots taken at creation
// time; they are never re-derived after later renames.
type StockTransaction struct {
	ID               uint            `json:"id" gorm:"primarykey"`
	ProductID        *uint           `json:"productId" gorm:"index"`
	FashionProductID *uint           `json:"fashionProductId" gorm:"index"`
	ProductVariantID *uint           `json:"variantId" gorm:"index"`
	EntityName       string          `json:"entityName" gorm:"type:varchar(255)"`
	EntityType       EntityType      `json:"entityType" gorm:"type:varchar(20)"`
	VariantDetails   string          `json:"variantDetails" gorm:"type:varchar(120)"`
	Type             TransactionType `json:"type" gorm:"type:varchar(10);not null"`
	Quantity         int             `json:"quantity" gorm:"not null"`
	Reason           string          `json:"reason" gorm:"type:text"`
	UserID           uint            `json:"userId" gorm:"index"`
	Username         string          `json:"username" gorm:"type:varchar(100)"`
	CreatedAt        time.Time       `json:"createdAt"`
}
