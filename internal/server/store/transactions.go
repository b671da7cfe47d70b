package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/KennethTannn98/stockflow-console/pkg/db"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// TransactionRepo persists stock movements and applies their side effects:
// IN adds to the product quantity, OUT subtracts, ADJUSTMENT sets it
// outright. Crossing the reorder threshold raises an unresolved alert.
type TransactionRepo struct {
	client *db.Client
}

// TransactionFields are the writable movement columns.
type TransactionFields struct {
	ProductID int
	Quantity  int
	Type      enums.TransactionType
	Reference string
	Date      models.Date
}

// List returns every movement, newest first.
func (r *TransactionRepo) List(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.client.DB().WithContext(ctx).Order("id DESC").Find(&transactions).Error
	if err != nil {
		return nil, mapReadError(err, "transactions")
	}
	return transactions, nil
}

// ListByProduct returns the movement history of one product, newest first.
func (r *TransactionRepo) ListByProduct(ctx context.Context, productID int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.client.DB().WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, mapReadError(err, "transactions")
	}
	return transactions, nil
}

// Get returns one movement by ID.
func (r *TransactionRepo) Get(ctx context.Context, id int) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.client.DB().WithContext(ctx).First(&transaction, id).Error
	if err != nil {
		return nil, mapReadError(err, "transaction")
	}
	return &transaction, nil
}

// Create records a movement, applies it to the product quantity, and
// raises an alert when the product crosses its reorder point.
func (r *TransactionRepo) Create(ctx context.Context, fields TransactionFields, actor string) (*models.Transaction, error) {
	var created models.Transaction
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, fields.ProductID).Error; err != nil {
			return mapReadError(err, "product")
		}

		next, err := applyMovement(product.Quantity, fields.Type, fields.Quantity)
		if err != nil {
			return err
		}

		created = models.Transaction{
			ProductID:   product.ID,
			ProductSKU:  product.SKU,
			ProductName: product.Name,
			Quantity:    fields.Quantity,
			Type:        fields.Type,
			Reference:   fields.Reference,
			Date:        fields.Date,
			CreatedBy:   actor,
		}
		if err := tx.Create(&created).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
		}

		return applyQuantity(tx, &product, next, actor)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update corrects a movement: the old effect is reversed and the new one
// applied in the same database transaction.
func (r *TransactionRepo) Update(ctx context.Context, id int, fields TransactionFields, actor string) (*models.Transaction, error) {
	var updated models.Transaction
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var existing models.Transaction
		if err := tx.First(&existing, id).Error; err != nil {
			return mapReadError(err, "transaction")
		}
		if fields.ProductID != existing.ProductID {
			return pkgerrors.New(pkgerrors.CodeValidation, "a correction cannot move to another product")
		}

		var product models.Product
		if err := tx.First(&product, existing.ProductID).Error; err != nil {
			return mapReadError(err, "product")
		}

		reversed := reverseMovement(product.Quantity, existing.Type, existing.Quantity)
		next, err := applyMovement(reversed, fields.Type, fields.Quantity)
		if err != nil {
			return err
		}

		updates := map[string]any{
			"quantity":         fields.Quantity,
			"transaction_type": fields.Type,
			"reference":        fields.Reference,
			"transaction_date": fields.Date,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
		}
		if err := tx.First(&updated, id).Error; err != nil {
			return mapReadError(err, "transaction")
		}

		return applyQuantity(tx, &product, next, actor)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a movement and reverses its stock effect.
func (r *TransactionRepo) Delete(ctx context.Context, id int, actor string) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var existing models.Transaction
		if err := tx.First(&existing, id).Error; err != nil {
			return mapReadError(err, "transaction")
		}

		if err := tx.Delete(&models.Transaction{}, id).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete transaction")
		}

		var product models.Product
		err := tx.First(&product, existing.ProductID).Error
		if err != nil {
			// The product may be gone; the movement still deletes.
			return nil
		}

		next := reverseMovement(product.Quantity, existing.Type, existing.Quantity)
		return applyQuantity(tx, &product, next, actor)
	})
}

// applyMovement returns the product quantity after a movement.
func applyMovement(current int, kind enums.TransactionType, amount int) (int, error) {
	switch kind {
	case enums.TransactionTypeIn:
		return current + amount, nil
	case enums.TransactionTypeOut:
		if amount > current {
			return 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cannot remove %d units, only %d in stock", amount, current))
		}
		return current - amount, nil
	case enums.TransactionTypeAdjustment:
		return amount, nil
	default:
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown transaction type")
	}
}

// reverseMovement undoes a movement's effect. An adjustment set an absolute
// value, so there is nothing to restore; the quantity stands until the next
// movement.
func reverseMovement(current int, kind enums.TransactionType, amount int) int {
	switch kind {
	case enums.TransactionTypeIn:
		reversed := current - amount
		if reversed < 0 {
			return 0
		}
		return reversed
	case enums.TransactionTypeOut:
		return current + amount
	default:
		return current
	}
}

// applyQuantity persists the new quantity and raises an unresolved alert
// when the product crossed its reorder point on the way down.
func applyQuantity(tx *gorm.DB, product *models.Product, next int, actor string) error {
	previous := product.Quantity
	updates := map[string]any{
		"quantity":   next,
		"updated_by": actor,
	}
	if err := tx.Model(product).Updates(updates).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product quantity")
	}

	crossed := previous > product.Reorder && next <= product.Reorder
	if !crossed {
		return nil
	}

	var open int64
	err := tx.Model(&models.Alert{}).
		Where("product_id = ? AND resolved = ?", product.ID, false).
		Count(&open).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open alerts")
	}
	if open > 0 {
		return nil
	}

	alert := models.Alert{
		ProductID:   product.ID,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		Resolved:    false,
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	if err := tx.Create(&alert).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create alert")
	}
	return nil
}
