package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shopfrontdev/shopfront-backend/api/controllers/graphql"
	"github.com/shopfrontdev/shopfront-backend/api/routes"
	"github.com/shopfrontdev/shopfront-backend/internal/cart"
	"github.com/shopfrontdev/shopfront-backend/internal/orders"
	product "github.com/shopfrontdev/shopfront-backend/internal/products"
	"github.com/shopfrontdev/shopfront-backend/pkg/config"
	"github.com/shopfrontdev/shopfront-backend/pkg/db"
	"github.com/shopfrontdev/shopfront-backend/pkg/logger"
	"github.com/shopfrontdev/shopfront-backend/pkg/metrics"
	"github.com/shopfrontdev/shopfront-backend/pkg/migrate"
	"github.com/shopfrontdev/shopfront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	caps := orders.DetectCapabilities(dbClient.DB())
	if !caps.Full() {
		ctx := logg.WithFields(context.Background(), map[string]any{
			"has_total_amount": caps.HasTotalAmount,
			"has_status":       caps.HasStatus,
			"has_order_items":  caps.HasOrderItems,
		})
		logg.Warn(ctx, "order schema is missing optional pieces; running degraded")
	}

	productRepo := product.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())

	var productService product.Service
	if redisClient != nil {
		productService, err = product.NewService(productRepo, redisClient, cfg.Catalog.CacheTTL)
	} else {
		productService, err = product.NewService(productRepo, nil, cfg.Catalog.CacheTTL)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	// Order totals read prices straight from the database; the cached
	// service is only for storefront reads.
	pricingService, err := product.NewService(productRepo, nil, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, dbClient, productService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orderRepo, cartRepo, dbClient, pricingService, caps, cfg.Checkout.GuestCustomerName)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	operationMetrics := metrics.NewOperationMetrics(registry)

	gqlHandler, err := graphql.NewHandler(cartService, productService, orderService, logg, operationMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create graphql handler", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	var redisPinger redis.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisPinger, gqlHandler, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
