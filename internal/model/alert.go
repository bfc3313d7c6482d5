package model

import "time"

// AlertType classifies a stock alert
type AlertType string

const (
	AlertLowStock   AlertType = "LOW_STOCK"
	AlertOutOfStock AlertType = "OUT_OF_STOCK"
)

func (t AlertType) Valid() bool {
	return t == AlertLowStock || t == AlertOutOfStock
}

// AlertStatus is the lifecycle state of an alert
type AlertStatus string

const (
	AlertActive   AlertStatus = "ACTIVE"
	AlertResolved AlertStatus = "RESOLVED"
)

// Alert flags a product whose stock dropped to or below its minimum level.
// Variant-sourced alerts carry the parent fashion product's id here; the
// size/color detail lives only in the message. ProductID is a plain column,
// not a foreign key: product deletion leaves orphaned rows behind that the
// listing paths tolerate and the cleanup operation purges.
type Alert struct {
	ID          uint        `json:"id" gorm:"primarykey"`
	ProductID   *uint       `json:"productId" gorm:"index"`
	ProductName string      `json:"productName" gorm:"type:varchar(255)"`
	Type        AlertType   `json:"type" gorm:"type:varchar(20);not null"`
	Message     string      `json:"message" gorm:"type:text"`
	Status      AlertStatus `json:"status" gorm:"type:varchar(10);not null;default:ACTIVE"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
