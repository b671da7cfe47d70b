package store

import (
	"context"
	"time"

	"github.com/KennethTannn98/stockflow-console/pkg/db"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/models"
)

// monthlyWindow is how far back the chart data reaches.
const monthlyWindow = 12

// DashboardRepo computes the landing screen aggregates. The monthly
// grouping happens in Go so the queries stay identical across sqlite and
// postgres.
type DashboardRepo struct {
	client *db.Client
}

// Stats returns the headline counters.
func (r *DashboardRepo) Stats(ctx context.Context) (*models.DashboardStats, error) {
	conn := r.client.DB().WithContext(ctx)
	stats := &models.DashboardStats{}

	var totalProducts int64
	if err := conn.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return nil, mapReadError(err, "products")
	}
	var totalTransactions int64
	if err := conn.Model(&models.Transaction{}).Count(&totalTransactions).Error; err != nil {
		return nil, mapReadError(err, "transactions")
	}
	var openAlerts int64
	if err := conn.Model(&models.Alert{}).Where("resolved = ?", false).Count(&openAlerts).Error; err != nil {
		return nil, mapReadError(err, "alerts")
	}
	var outOfStock int64
	if err := conn.Model(&models.Product{}).Where("quantity = 0").Count(&outOfStock).Error; err != nil {
		return nil, mapReadError(err, "products")
	}
	var lowStock int64
	if err := conn.Model(&models.Product{}).Where("quantity > 0 AND quantity <= reorder").Count(&lowStock).Error; err != nil {
		return nil, mapReadError(err, "products")
	}

	stats.TotalProducts = int(totalProducts)
	stats.TotalTransactions = int(totalTransactions)
	stats.OpenAlerts = int(openAlerts)
	stats.OutOfStock = int(outOfStock)
	stats.LowStock = int(lowStock)
	return stats, nil
}

// MonthlyTransactions returns IN/OUT totals per month over the last year,
// oldest month first. Months without movements are present with zeroes.
func (r *DashboardRepo) MonthlyTransactions(ctx context.Context) ([]models.MonthlyTransactionPoint, error) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).
		AddDate(0, -(monthlyWindow - 1), 0)
	cutoff := models.NewDate(first.Year(), first.Month(), first.Day())

	var transactions []models.Transaction
	err := r.client.DB().WithContext(ctx).
		Where("transaction_date >= ?", cutoff).
		Find(&transactions).Error
	if err != nil {
		return nil, mapReadError(err, "transactions")
	}

	points := make([]models.MonthlyTransactionPoint, monthlyWindow)
	index := map[string]int{}
	for i := range points {
		month := first.AddDate(0, i, 0).Format("2006-01")
		points[i] = models.MonthlyTransactionPoint{Month: month}
		index[month] = i
	}

	for _, transaction := range transactions {
		i, ok := index[transaction.Date.Format("2006-01")]
		if !ok {
			continue
		}
		switch transaction.Type {
		case enums.TransactionTypeIn:
			points[i].In += transaction.Quantity
		case enums.TransactionTypeOut:
			points[i].Out += transaction.Quantity
		}
	}
	return points, nil
}

// LowStocks returns the products at or below their reorder point, lowest
// quantity first.
func (r *DashboardRepo) LowStocks(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.client.DB().WithContext(ctx).
		Where("quantity <= reorder").
		Order("quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, mapReadError(err, "products")
	}
	return products, nil
}

// TodaysTransactions returns the movements dated today, newest first.
func (r *DashboardRepo) TodaysTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.client.DB().WithContext(ctx).
		Where("transaction_date = ?", models.Today()).
		Order("id DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, mapReadError(err, "transactions")
	}
	return transactions, nil
}
