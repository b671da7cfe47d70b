package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// TransactionInput is the payload for creating or correcting a stock
// movement. Product name and SKU are snapshotted server-side from the
// referenced product.
type TransactionInput struct {
	ProductID int                   `json:"productId"`
	Quantity  int                   `json:"quantity"`
	Type      enums.TransactionType `json:"transactionType"`
	Reference string                `json:"reference"`
	Date      models.Date           `json:"transactionDate"`
}

// ListTransactions returns every stock movement.
func (c *Client) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// ListTransactionsByProduct returns the movement history of one product.
func (c *Client) ListTransactionsByProduct(ctx context.Context, productID int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/product/%d", productID), nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetTransaction returns one stock movement by ID.
func (c *Client) GetTransaction(ctx context.Context, id int) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// CreateTransaction records a stock movement and returns the persisted record.
func (c *Client) CreateTransaction(ctx context.Context, input TransactionInput) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", input, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateTransaction corrects an existing movement.
func (c *Client) UpdateTransaction(ctx context.Context, id int, input TransactionInput) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/%d", id), input, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction removes a movement by ID.
func (c *Client) DeleteTransaction(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil)
}
