package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/lunakids/lunakids-backend/api/routes"
	"github.com/lunakids/lunakids-backend/internal/cart"
	"github.com/lunakids/lunakids-backend/internal/chat"
	"github.com/lunakids/lunakids-backend/internal/checkout"
	"github.com/lunakids/lunakids-backend/internal/orders"
	products "github.com/lunakids/lunakids-backend/internal/products"
	"github.com/lunakids/lunakids-backend/internal/promos"
	"github.com/lunakids/lunakids-backend/internal/settings"
	"github.com/lunakids/lunakids-backend/internal/wishlist"
	"github.com/lunakids/lunakids-backend/pkg/config"
	"github.com/lunakids/lunakids-backend/pkg/db"
	"github.com/lunakids/lunakids-backend/pkg/logger"
	"github.com/lunakids/lunakids-backend/pkg/migrate"
	"github.com/lunakids/lunakids-backend/pkg/redis"
)

const shutdownGrace = 10 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	productRepo := products.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	wishlistRepo := wishlist.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	settingsRepo := settings.NewRepository(dbClient.DB())

	productService, err := products.NewService(productRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, dbClient, productService, redisClient, cfg.Cart.MutationLeaseTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		ProductRepo:  productRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.ServiceParams{
		Repo:           settingsRepo,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}
	if err := settingsService.EnsureAdminPassword(context.Background(), cfg.App.AdminBootstrapPassword); err != nil {
		logg.Error(context.Background(), "failed to seed admin credential", err)
		os.Exit(1)
	}

	promoService, err := promos.NewService(redisClient, cfg.Promo)
	if err != nil {
		logg.Error(context.Background(), "failed to create promo service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Cart:        cartService,
		Promos:      promoService,
		Settings:    settingsService,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		Tx:          dbClient,
		Guard:       redisClient,
		WhatsApp:    cfg.WhatsApp,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	// The chat relay only comes up when an upstream key is configured. The
	// route stays registered and answers with a service-unavailable error.
	var chatService chat.Service
	if cfg.Chat.APIKey != "" {
		chatClient, err := chat.NewClient(context.Background(), cfg.Chat, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create chat client", err)
			os.Exit(1)
		}
		chatService, err = chat.NewService(chatClient, redisClient, settingsService)
		if err != nil {
			logg.Error(context.Background(), "failed to create chat service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "chat api key not configured, assistant disabled")
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

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Products: productService,
			Cart:     cartService,
			Wishlist: wishlistService,
			Checkout: checkoutService,
			Orders:   orderService,
			Settings: settingsService,
			Promos:   promoService,
			Chat:     chatService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
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
