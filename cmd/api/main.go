package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simplyaboveaverage/multicart-backend/api/controllers"
	"github.com/simplyaboveaverage/multicart-backend/api/routes"
	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
	"github.com/simplyaboveaverage/multicart-backend/internal/carturl"
	"github.com/simplyaboveaverage/multicart-backend/internal/catalog"
	"github.com/simplyaboveaverage/multicart-backend/internal/checkouturl"
	"github.com/simplyaboveaverage/multicart-backend/internal/settings"
	"github.com/simplyaboveaverage/multicart-backend/internal/vendorformats"
	"github.com/simplyaboveaverage/multicart-backend/internal/wishlist"
	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
	"github.com/simplyaboveaverage/multicart-backend/pkg/db"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
	"github.com/simplyaboveaverage/multicart-backend/pkg/metrics"
	"github.com/simplyaboveaverage/multicart-backend/pkg/migrate"
	"github.com/simplyaboveaverage/multicart-backend/pkg/redis"
	"github.com/simplyaboveaverage/multicart-backend/pkg/state"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stateStore, err := state.NewRedis(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create state store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	linkMetrics := metrics.NewLinkMetrics(registry)

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo: catalog.NewRepository(dbClient.DB()),
		Cfg:  cfg.Catalog,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(stateStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	wishlistStore, err := wishlist.NewStore(stateStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist store", err)
		os.Exit(1)
	}
	wishlistConfirmer, err := wishlist.NewConfirmer(wishlistStore, cfg.Wishlist)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist confirmer", err)
		os.Exit(1)
	}

	formatStore, err := vendorformats.NewStore(stateStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor format store", err)
		os.Exit(1)
	}

	settingsStore, err := settings.NewStore(stateStore, cfg.Catalog, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings store", err)
		os.Exit(1)
	}

	cartLinkGen, err := carturl.NewGenerator(carturl.GeneratorParams{
		Formats: formatStore,
		Links:   linkMetrics,
		Logg:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart link generator", err)
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

	router := routes.NewRouter(routes.Deps{
		Cfg:            cfg,
		Logg:           logg,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadinessChecks: controllers.ReadinessChecks{
			"database": dbClient.Ping,
			"redis":    redisClient.Ping,
		},
		Catalog:         catalogService,
		Cart:            cartStore,
		Wishlist:        wishlistStore,
		WishlistConfirm: wishlistConfirmer,
		VendorFormats:   formatStore,
		Settings:        settingsStore,
		CartLinks:       cartLinkGen,
		CheckoutLinks:   checkouturl.NewGenerator(logg),
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
