package client

import (
	"context"
	"net/http"

	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// DashboardStats returns the headline counters.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// MonthlyTransactions returns per-month IN/OUT totals for the chart.
func (c *Client) MonthlyTransactions(ctx context.Context) ([]models.MonthlyTransactionPoint, error) {
	var points []models.MonthlyTransactionPoint
	if err := c.do(ctx, http.MethodGet, "/dashboard/monthly-transactions", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// LowStocks returns products at or below their reorder point.
func (c *Client) LowStocks(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/dashboard/low-stocks", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// TodaysTransactions returns the movements recorded today.
func (c *Client) TodaysTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := c.do(ctx, http.MethodGet, "/dashboard/todays-transactions", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}
