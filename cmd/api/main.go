package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/quicklinkhq/quicklink-backend/api/routes"
	"github.com/quicklinkhq/quicklink-backend/internal/auth"
	"github.com/quicklinkhq/quicklink-backend/internal/cart"
	"github.com/quicklinkhq/quicklink-backend/internal/notifications"
	"github.com/quicklinkhq/quicklink-backend/internal/orders"
	"github.com/quicklinkhq/quicklink-backend/internal/products"
	"github.com/quicklinkhq/quicklink-backend/internal/properties"
	"github.com/quicklinkhq/quicklink-backend/internal/restaurants"
	"github.com/quicklinkhq/quicklink-backend/internal/rides"
	"github.com/quicklinkhq/quicklink-backend/internal/users"
	"github.com/quicklinkhq/quicklink-backend/pkg/auth/session"
	"github.com/quicklinkhq/quicklink-backend/pkg/config"
	"github.com/quicklinkhq/quicklink-backend/pkg/db"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
	"github.com/quicklinkhq/quicklink-backend/pkg/metrics"
	"github.com/quicklinkhq/quicklink-backend/pkg/migrate"
	"github.com/quicklinkhq/quicklink-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	storeBackend, err := cart.NewStoreBackend(dbClient.DB(), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store backend", err)
		os.Exit(1)
	}
	guestBackend, err := cart.NewGuestBackend(redisClient, redisClient, cfg.Cart.GuestTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create guest cart backend", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(storeBackend, guestBackend, notificationsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	productsService, err := products.NewService(products.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}
	restaurantsService, err := restaurants.NewService(restaurants.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create restaurants service", err)
		os.Exit(1)
	}
	propertiesService, err := properties.NewService(properties.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create properties service", err)
		os.Exit(1)
	}
	ridesService, err := rides.NewService(rides.NewRepository(dbClient.DB()), notificationsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create rides service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), cartService, notificationsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

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

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, httpMetrics, registry, routes.Services{
			Auth:          authService,
			Register:      registerService,
			Users:         userRepo,
			Cart:          cartService,
			Products:      productsService,
			Restaurants:   restaurantsService,
			Rides:         ridesService,
			Properties:    propertiesService,
			Orders:        ordersService,
			Notifications: notificationsService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
