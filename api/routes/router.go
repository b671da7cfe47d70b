// Package routes assembles the HTTP surface of the reference API server.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KennethTannn98/stockflow-console/api/controllers"
	"github.com/KennethTannn98/stockflow-console/api/middleware"
	"github.com/KennethTannn98/stockflow-console/internal/server/store"
	"github.com/KennethTannn98/stockflow-console/pkg/config"
	"github.com/KennethTannn98/stockflow-console/pkg/db"
	"github.com/KennethTannn98/stockflow-console/pkg/enums"
	"github.com/KennethTannn98/stockflow-console/pkg/logger"
	"github.com/KennethTannn98/stockflow-console/pkg/metrics"
)

// Dependencies carries everything the router mounts.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Store       *store.Store
	Registry    *prometheus.Registry
	Idempotency *middleware.IdempotencyStore
}

// NewRouter builds the full route tree. Everything under /api except the
// login endpoint requires a bearer token; /api/admin additionally requires
// the admin role. Mutations replay through the idempotency store.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	st := deps.Store

	var registerer prometheus.Registerer
	if deps.Registry != nil {
		registerer = deps.Registry
	}
	httpMetrics := metrics.NewHTTPMetrics(registerer)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, deps.DB))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Metrics(httpMetrics))

		r.Post("/auth/login", controllers.AuthLogin(st.Users, cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(deps.Idempotency, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductsList(st.Products, logg))
				r.Post("/", controllers.ProductsCreate(st.Products, logg))
				r.Get("/{id}", controllers.ProductsGet(st.Products, logg))
				r.Put("/{id}", controllers.ProductsUpdate(st.Products, logg))
				r.Delete("/{id}", controllers.ProductsDelete(st.Products, logg))
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", controllers.TransactionsList(st.Transactions, logg))
				r.Post("/", controllers.TransactionsCreate(st.Transactions, logg))
				r.Get("/product/{productId}", controllers.TransactionsListByProduct(st.Transactions, logg))
				r.Get("/{id}", controllers.TransactionsGet(st.Transactions, logg))
				r.Put("/{id}", controllers.TransactionsUpdate(st.Transactions, logg))
				r.Delete("/{id}", controllers.TransactionsDelete(st.Transactions, logg))
			})

			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", controllers.AlertsList(st.Alerts, logg))
				r.Post("/", controllers.AlertsCreate(st.Alerts, logg))
				r.Get("/{id}", controllers.AlertsGet(st.Alerts, logg))
				r.Put("/{id}", controllers.AlertsUpdate(st.Alerts, logg))
				r.Delete("/{id}", controllers.AlertsDelete(st.Alerts, logg))
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", controllers.DashboardStats(st.Dashboard, logg))
				r.Get("/monthly-transactions", controllers.DashboardMonthlyTransactions(st.Dashboard, logg))
				r.Get("/low-stocks", controllers.DashboardLowStocks(st.Dashboard, logg))
				r.Get("/todays-transactions", controllers.DashboardTodaysTransactions(st.Dashboard, logg))
			})

			r.Route("/admin/users", func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
				r.Get("/", controllers.UsersList(st.Users, logg))
				r.Post("/", controllers.UsersCreate(st.Users, cfg.Password, logg))
				r.Put("/username/{username}/role", controllers.UsersUpdateRole(st.Users, logg))
				r.Delete("/{id}", controllers.UsersDelete(st.Users, logg))
			})
		})
	})

	return r
}
