package controllers

import (
	"net/http"

	"github.com/KennethTannn98/stockflow-console/api/responses"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
)

// DashboardStats returns the headline counters.
func DashboardStats(dashboard *store.DashboardRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := dashboard.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// DashboardMonthlyTransactions returns twelve months of movement volume.
func DashboardMonthlyTransactions(dashboard *store.DashboardRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := dashboard.MonthlyTransactions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, points)
	}
}

// DashboardLowStocks returns products at or below their reorder level.
func DashboardLowStocks(dashboard *store.DashboardRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := dashboard.LowStocks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// DashboardTodaysTransactions returns movements dated today.
func DashboardTodaysTransactions(dashboard *store.DashboardRepo, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactions, err := dashboard.TodaysTransactions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactions)
	}
}
