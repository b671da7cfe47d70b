package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/KennethTannn98/stockflow-console/pkg/enums"
)

// Product is an inventory listing. SKU is the unique business key and is
// immutable after creation.
type Product struct {
	ID          int             `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"column:name;not null"`
	SKU         string          `json:"sku" gorm:"column:sku;not null;uniqueIndex"`
	Category    string          `json:"category" gorm:"column:category;not null"`
	Quantity    int             `json:"quantity" gorm:"column:quantity;not null"`
	Price       decimal.Decimal `json:"price" gorm:"column:price;type:numeric(12,2);not null"`
	Reorder     int             `json:"reorder" gorm:"column:reorder;not null"`
	CreatedDate time.Time       `json:"createdDate" gorm:"column:created_date;autoCreateTime"`
	UpdatedDate time.Time       `json:"updatedDate" gorm:"column:updated_date;autoUpdateTime"`
	CreatedBy   string          `json:"createdBy" gorm:"column:created_by"`
	UpdatedBy   string          `json:"updatedBy" gorm:"column:updated_by"`
}

// Status derives the stock state from quantity against the reorder point.
func (p Product) Status() enums.StockStatus {
	switch {
	case p.Quantity == 0:
		return enums.StockStatusOutOfStock
	case p.Quantity <= p.Reorder:
		return enums.StockStatusLowStock
	default:
		return enums.StockStatusInStock
	}
}
