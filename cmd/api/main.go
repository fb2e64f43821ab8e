package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/adorzia/adorzia-backend/api/routes"
	cartsvc "github.com/adorzia/adorzia-backend/internal/cart"
	checkoutsvc "github.com/adorzia/adorzia-backend/internal/checkout"
	"github.com/adorzia/adorzia-backend/internal/notifications"
	ordersvc "github.com/adorzia/adorzia-backend/internal/orders"
	product "github.com/adorzia/adorzia-backend/internal/products"
	"github.com/adorzia/adorzia-backend/pkg/config"
	"github.com/adorzia/adorzia-backend/pkg/db"
	"github.com/adorzia/adorzia-backend/pkg/email"
	"github.com/adorzia/adorzia-backend/pkg/logger"
	"github.com/adorzia/adorzia-backend/pkg/metrics"
	"github.com/adorzia/adorzia-backend/pkg/migrate"
	pkgredis "github.com/adorzia/adorzia-backend/pkg/redis"
	pkgstripe "github.com/adorzia/adorzia-backend/pkg/stripe"
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

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	var sender email.Sender
	if cfg.Resend.APIKey != "" {
		resendSender, err := email.NewResendSender(cfg.Resend, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap resend", err)
			os.Exit(1)
		}
		sender = resendSender
	} else {
		logg.Warn(context.Background(), "resend api key not set, order confirmation emails disabled")
	}

	httpMetrics := metrics.NewHTTPMetrics()
	commerceMetrics := metrics.NewCommerceMetrics(httpMetrics.Registry())

	productRepo := product.NewRepository(dbClient.DB())
	cartRepo := cartsvc.NewRepository(dbClient.DB())
	orderRepo := ordersvc.NewRepository(dbClient.DB())

	cartService, err := cartsvc.NewService(cartRepo, dbClient, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	sequenceReserver, err := checkoutsvc.NewSequenceReserver(dbClient.DB(), cfg.Commerce.OrderNumberPrefix)
	if err != nil {
		logg.Error(context.Background(), "failed to create order number reserver", err)
		os.Exit(1)
	}
	sessionClient := checkoutsvc.NewStripeSessionClient(stripeClient)

	checkoutService, err := checkoutsvc.NewService(cartRepo, productRepo, sessionClient, sequenceReserver, cfg.Commerce, commerceMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	notifier := notifications.NewService(sender, logg)

	ordersService, err := ordersvc.NewService(
		dbClient,
		orderRepo,
		cartRepo,
		productRepo,
		sessionClient,
		notifier,
		cfg.Commerce,
		commerceMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"stripe_env": stripeClient.Environment(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			productRepo,
			cartService,
			checkoutService,
			ordersService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
