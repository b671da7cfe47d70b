package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/KennethTannn98/stockflow-console/pkg/db"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// ProductRepo persists the product catalog.
type ProductRepo struct {
	client *db.Client
}

// ProductFields are the writable product columns. The SKU only applies on
// create; updates never touch it.
type ProductFields struct {
	Name     string
	SKU      string
	Category string
	Quantity int
	Price    decimal.Decimal
	Reorder  int
}

// List returns every product, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.client.DB().WithContext(ctx).Order("id DESC").Find(&products).Error
	if err != nil {
		return nil, mapReadError(err, "products")
	}
	return products, nil
}

// Get returns one product by ID.
func (r *ProductRepo) Get(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := r.client.DB().WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, mapReadError(err, "product")
	}
	return &product, nil
}

// Create stores a new product. A duplicate SKU is a conflict.
func (r *ProductRepo) Create(ctx context.Context, fields ProductFields, actor string) (*models.Product, error) {
	product := models.Product{
		Name:      fields.Name,
		SKU:       fields.SKU,
		Category:  fields.Category,
		Quantity:  fields.Quantity,
		Price:     fields.Price,
		Reorder:   fields.Reorder,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
	err := r.client.DB().WithContext(ctx).Create(&product).Error
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return &product, nil
}

// Update edits a product in place, leaving the SKU untouched.
func (r *ProductRepo) Update(ctx context.Context, id int, fields ProductFields, actor string) (*models.Product, error) {
	product, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":       fields.Name,
		"category":   fields.Category,
		"quantity":   fields.Quantity,
		"price":      fields.Price,
		"reorder":    fields.Reorder,
		"updated_by": actor,
	}
	err = r.client.DB().WithContext(ctx).Model(product).Updates(updates).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return r.Get(ctx, id)
}

// Delete removes a product by ID.
func (r *ProductRepo) Delete(ctx context.Context, id int) error {
	result := r.client.DB().WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete product")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
