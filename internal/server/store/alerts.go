package store

import (
	"context"

	"github.com/KennethTannn98/stockflow-console/pkg/db"
	pkgerrors "github.com/KennethTannn98/stockflow-console/pkg/errors"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// AlertRepo persists low-stock alerts.
type AlertRepo struct {
	client *db.Client
}

// List returns every alert, newest first.
func (r *AlertRepo) List(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	err := r.client.DB().WithContext(ctx).Order("id DESC").Find(&alerts).Error
	if err != nil {
		return nil, mapReadError(err, "alerts")
	}
	return alerts, nil
}

// Get returns one alert by ID.
func (r *AlertRepo) Get(ctx context.Context, id int) (*models.Alert, error) {
	var alert models.Alert
	err := r.client.DB().WithContext(ctx).First(&alert, id).Error
	if err != nil {
		return nil, mapReadError(err, "alert")
	}
	return &alert, nil
}

// Create raises an alert for a product, snapshotting its SKU and name.
func (r *AlertRepo) Create(ctx context.Context, productID int, actor string) (*models.Alert, error) {
	var product models.Product
	err := r.client.DB().WithContext(ctx).First(&product, productID).Error
	if err != nil {
		return nil, mapReadError(err, "product")
	}

	alert := models.Alert{
		ProductID:   product.ID,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		Resolved:    false,
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	if err := r.client.DB().WithContext(ctx).Create(&alert).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create alert")
	}
	return &alert, nil
}

// SetResolved flips the resolved flag and stamps the acting user.
func (r *AlertRepo) SetResolved(ctx context.Context, id int, resolved bool, actor string) (*models.Alert, error) {
	alert, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"resolved":   resolved,
		"updated_by": actor,
	}
	if err := r.client.DB().WithContext(ctx).Model(alert).Updates(updates).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update alert")
	}
	return r.Get(ctx, id)
}

// Delete removes an alert by ID.
func (r *AlertRepo) Delete(ctx context.Context, id int) error {
	result := r.client.DB().WithContext(ctx).Delete(&models.Alert{}, id)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete alert")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "alert not found")
	}
	return nil
}
