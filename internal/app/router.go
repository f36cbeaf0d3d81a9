package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/der-stern/stern-erp/internal/dashboard"
	"github.com/der-stern/stern-erp/internal/fulfillment"
	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/masterdata/suppliers"
	"github.com/der-stern/stern-erp/internal/observability"
	"github.com/der-stern/stern-erp/internal/sales/customers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	ProductsHandler    *products.Handler
	SuppliersHandler   *suppliers.Handler
	CustomersHandler   *customers.Handler
	OrdersHandler      *orders.Handler
	DashboardHandler   *dashboard.Handler
	FulfillmentHandler *fulfillment.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Stern defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if params.ProductsHandler != nil {
			r.Route("/products", params.ProductsHandler.MountRoutes)
		}
		if params.SuppliersHandler != nil {
			r.Route("/suppliers", func(r chi.Router) {
				if params.FulfillmentHandler != nil {
					r.Get("/picks", params.FulfillmentHandler.GetDailyPicks)
				}
				params.SuppliersHandler.MountRoutes(r)
			})
		}
		if params.CustomersHandler != nil {
			r.Route("/customers", params.CustomersHandler.MountRoutes)
		}
		if params.OrdersHandler != nil {
			r.Route("/orders", params.OrdersHandler.MountRoutes)
		}
		if params.DashboardHandler != nil {
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		}
	})

	return r
}
