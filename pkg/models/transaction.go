package models

import (
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
)

// Transaction is a stock movement event. ProductSKU and ProductName are
// snapshots taken at creation time and survive later product renames.
type Transaction struct {
	ID          int                   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int                   `json:"productId" gorm:"column:product_id;not null;index"`
	ProductSKU  string                `json:"productSku" gorm:"column:product_sku;not null"`
	ProductName string                `json:"productName" gorm:"column:product_name;not null"`
	Quantity    int                   `json:"quantity" gorm:"column:quantity;not null"`
	Type        enums.TransactionType `json:"transactionType" gorm:"column:transaction_type;not null"`
	Reference   string                `json:"reference" gorm:"column:reference;not null"`
	Date        Date                  `json:"transactionDate" gorm:"column:transaction_date;type:date;not null"`
	CreatedBy   string                `json:"createdBy" gorm:"column:created_by"`
}
