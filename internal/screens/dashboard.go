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

// Dashboard is the landing screen: headline counters, the monthly chart
// data, today's movements, and a small paged low-stock widget.
type Dashboard struct {
	LowStock *Table[models.Product]

	api   *client.Client
	store cache.Store
}

// NewDashboard builds the dashboard screen.
func NewDashboard(api *client.Client, store cache.Store, log *logger.Logger) *Dashboard {
	view := tabular.NewView[models.Product]().
		SearchText(
			func(p models.Product) string { return p.Name },
			func(p models.Product) string { return p.SKU },
		).
		SortField("name", tabular.ByText(func(p models.Product) string { return p.Name })).
		SortField("quantity", tabular.ByOrdered(func(p models.Product) int { return p.Quantity })).
		SortField("price", tabular.ByDecimal(func(p models.Product) decimal.Decimal { return p.Price }))

	return &Dashboard{
		LowStock: NewTable(view, tabular.WidgetPageSize, store,
			cache.ScopedKey(cache.EntityDashboard, "lowstocks"), api.LowStocks, log),
		api:   api,
		store: store,
	}
}

// Stats returns the headline counters, cache-backed.
func (s *Dashboard) Stats(ctx context.Context) (*models.DashboardStats, error) {
	key := cache.ScopedKey(cache.EntityDashboard, "stats")
	return cache.Fetch(ctx, s.store, key, s.api.DashboardStats)
}

// MonthlyTransactions returns the per-month IN/OUT chart data, cache-backed.
func (s *Dashboard) MonthlyTransactions(ctx context.Context) ([]models.MonthlyTransactionPoint, error) {
	key := cache.ScopedKey(cache.EntityDashboard, "monthly")
	return cache.Fetch(ctx, s.store, key, s.api.MonthlyTransactions)
}

// TodaysTransactions returns the movements recorded today, cache-backed.
func (s *Dashboard) TodaysTransactions(ctx context.Context) ([]models.Transaction, error) {
	key := cache.ScopedKey(cache.EntityDashboard, "todays")
	return cache.Fetch(ctx, s.store, key, s.api.TodaysTransactions)
}
