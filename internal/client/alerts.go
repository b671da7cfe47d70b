package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// AlertCreate is the payload for raising an alert by hand. The server
// snapshots the product's SKU and name.
type AlertCreate struct {
	ProductID int `json:"productId"`
}

// AlertUpdate flips the resolved flag of an alert.
type AlertUpdate struct {
	Resolved bool `json:"resolved"`
}

// ListAlerts returns every alert, resolved or not.
func (c *Client) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := c.do(ctx, http.MethodGet, "/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetAlert returns one alert by ID.
func (c *Client) GetAlert(ctx context.Context, id int) (*models.Alert, error) {
	var alert models.Alert
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/alerts/%d", id), nil, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// CreateAlert raises an alert for a product.
func (c *Client) CreateAlert(ctx context.Context, input AlertCreate) (*models.Alert, error) {
	var alert models.Alert
	if err := c.do(ctx, http.MethodPost, "/alerts", input, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// UpdateAlert sets the resolved flag of an alert.
func (c *Client) UpdateAlert(ctx context.Context, id int, input AlertUpdate) (*models.Alert, error) {
	var alert models.Alert
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/alerts/%d", id), input, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// DeleteAlert removes an alert by ID.
func (c *Client) DeleteAlert(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/alerts/%d", id), nil, nil)
}
