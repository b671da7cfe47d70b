package screens

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/KennethTannn98/stockflow-console/internal/cache"
	"github.com/KennethTannn98/stockflow-console/internal/client"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
	"github.com/KennethTannn98/stockflow-console/pkg/tabular"
)

// Facet and sort field names of the products table.
const (
	ProductFacetStatus   = "status"
	ProductFacetCategory = "category"
)

// ProductDraft is the create form.
type ProductDraft struct {
	Name     string          `json:"name" validate:"required"`
	SKU      string          `json:"sku" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price" validate:"gt=0"`
	Reorder  int             `json:"reorder" validate:"gte=0"`
}

// ProductEditDraft is the edit form. The SKU is fixed at creation and has
// no place here.
type ProductEditDraft struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price" validate:"gt=0"`
	Reorder  int             `json:"reorder" validate:"gte=0"`
}

// Products is the product catalog screen.
type Products struct {
	*Table[models.Product]
	api *client.Client
}

// NewProducts builds the products screen over the shared client and cache.
func NewProducts(api *client.Client, store cache.Store, log *logger.Logger) *Products {
	view := tabular.NewView[models.Product]().
		SearchText(
			func(p models.Product) string { return p.Name },
			func(p models.Product) string { return p.SKU },
		).
		Facet(ProductFacetStatus, func(p models.Product) string { return p.Status().String() }).
		Facet(ProductFacetCategory, func(p models.Product) string { return p.Category }).
		SortField("name", tabular.ByText(func(p models.Product) string { return p.Name })).
		SortField("sku", tabular.ByOrdered(func(p models.Product) string { return p.SKU })).
		SortField("category", tabular.ByText(func(p models.Product) string { return p.Category })).
		SortField("quantity", tabular.ByOrdered(func(p models.Product) int { return p.Quantity })).
		SortField("price", tabular.ByDecimal(func(p models.Product) decimal.Decimal { return p.Price })).
		SortField("reorder", tabular.ByOrdered(func(p models.Product) int { return p.Reorder })).
		SortField("status", tabular.ByOrdered(func(p models.Product) string { return p.Status().String() }))

	screen := &Products{api: api}
	screen.Table = NewTable(view, tabular.DefaultPageSize, store,
		cache.EntityKey(cache.EntityProducts), api.ListProducts, log)
	return screen
}

// Create validates the draft and stores a new product.
func (s *Products) Create(ctx context.Context, draft ProductDraft) (*models.Product, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	keys := append([]cache.Key{cache.EntityKey(cache.EntityProducts)}, dashboardKeys()...)
	var created *models.Product
	err := s.runMutation(ctx, keys, func(ctx context.Context) error {
		product, err := s.api.CreateProduct(ctx, client.ProductCreate{
			Name:     draft.Name,
			SKU:      draft.SKU,
			Category: draft.Category,
			Quantity: draft.Quantity,
			Price:    draft.Price,
			Reorder:  draft.Reorder,
		})
		created = product
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update edits the product the open edit dialog points at.
func (s *Products) Update(ctx context.Context, id int, draft ProductEditDraft) (*models.Product, error) {
	if err := s.requireDialog(DialogEdit, id); err != nil {
		return nil, err
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	// Quantity and reorder edits move the dashboard counters too.
	keys := append([]cache.Key{
		cache.EntityKey(cache.EntityProducts),
		cache.RecordKey(cache.EntityProducts, id),
	}, dashboardKeys()...)
	var updated *models.Product
	err := s.runMutation(ctx, keys, func(ctx context.Context) error {
		product, err := s.api.UpdateProduct(ctx, id, client.ProductUpdate{
			Name:     draft.Name,
			Category: draft.Category,
			Quantity: draft.Quantity,
			Price:    draft.Price,
			Reorder:  draft.Reorder,
		})
		updated = product
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the product the open confirmation dialog points at.
func (s *Products) Delete(ctx context.Context, id int) error {
	if err := s.requireDialog(DialogConfirmDelete, id); err != nil {
		return err
	}

	keys := append([]cache.Key{
		cache.EntityKey(cache.EntityProducts),
		cache.RecordKey(cache.EntityProducts, id),
	}, dashboardKeys()...)
	return s.runMutation(ctx, keys, func(ctx context.Context) error {
		return s.api.DeleteProduct(ctx, id)
	})
}
