package models

import "time"

// Alert flags a product whose quantity crossed its reorder point. Alerts are
// toggled resolved/unresolved, never silently removed; every toggle stamps
// UpdatedDate and UpdatedBy.
type Alert struct {
	ID          int       `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int       `json:"productId" gorm:"column:product_id;not null;index"`
	ProductSKU  string    `json:"productSku" gorm:"column:product_sku;not null"`
	ProductName string    `json:"productName" gorm:"column:product_name;not null"`
	Resolved    bool      `json:"resolved" gorm:"column:resolved;not null;default:false"`
	CreatedDate time.Time `json:"createdDate" gorm:"column:created_date;autoCreateTime"`
	UpdatedDate time.Time `json:"updatedDate" gorm:"column:updated_date;autoUpdateTime"`
	CreatedBy   string    `json:"createdBy" gorm:"column:created_by"`
	UpdatedBy   string    `json:"updatedBy" gorm:"column:updated_by"`
}
