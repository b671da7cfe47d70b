package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// ProductCreate is the payload for a new product.
type ProductCreate struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Reorder  int             `json:"reorder"`
}

// ProductUpdate is the payload for editing a product. It deliberately has
// no SKU field; the SKU is fixed at creation.
type ProductUpdate struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Reorder  int             `json:"reorder"`
}

// ListProducts returns every product.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns one product by ID.
func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct stores a new product and returns the persisted record.
func (c *Client) CreateProduct(ctx context.Context, input ProductCreate) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies the edit payload to an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int, input ProductUpdate) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product by ID.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}
