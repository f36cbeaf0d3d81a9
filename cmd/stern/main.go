package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/der-stern/stern-erp/internal/app"
	"github.com/der-stern/stern-erp/internal/dashboard"
	"github.com/der-stern/stern-erp/internal/fulfillment"
	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/masterdata/suppliers"
	"github.com/der-stern/stern-erp/internal/observability"
	"github.com/der-stern/stern-erp/internal/platform/db"
	"github.com/der-stern/stern-erp/internal/platform/pdf"
	"github.com/der-stern/stern-erp/internal/pricing"
	"github.com/der-stern/stern-erp/internal/sales/customers"
	"github.com/der-stern/stern-erp/internal/sales/export"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	vatRates, err := cfg.ParseVATRates()
	if err != nil {
		logger.Error("parse vat rates", slog.Any("error", err))
		os.Exit(1)
	}

	formatter, err := pricing.NewFormatter(cfg.CurrencyLocale)
	if err != nil {
		logger.Error("init currency formatter", slog.Any("error", err))
		os.Exit(1)
	}

	pdfClient := pdf.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	orderExporter, err := export.NewOrderPDFExporter(pdfClient, formatter)
	if err != nil {
		logger.Error("init order exporter", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	productRepo := products.NewRepository(dbpool)
	productService := products.NewService(productRepo, vatRates)
	productHandler := products.NewHandler(logger, productService)

	supplierRepo := suppliers.NewRepository(dbpool)
	supplierService := suppliers.NewService(supplierRepo)
	supplierHandler := suppliers.NewHandler(logger, supplierService)

	customerRepo := customers.NewRepository(dbpool)
	customerService := customers.NewService(customerRepo)
	customerHandler := customers.NewHandler(logger, customerService)

	orderRepo := orders.NewRepository(dbpool)
	orderService := orders.NewService(orderRepo, customerRepo, productRepo)
	orderHandler := orders.NewHandler(logger, orderService, orderExporter)

	statsCache := dashboard.NewCache(redisClient, cfg.StatsCacheTTL)
	dashboardService := dashboard.NewService(orderRepo, productRepo, customerRepo, statsCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	fulfillmentService := fulfillment.NewService(orderRepo, supplierRepo)
	fulfillmentHandler := fulfillment.NewHandler(logger, fulfillmentService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		ProductsHandler:    productHandler,
		SuppliersHandler:   supplierHandler,
		CustomersHandler:   customerHandler,
		OrdersHandler:      orderHandler,
		DashboardHandler:   dashboardHandler,
		FulfillmentHandler: fulfillmentHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
