// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/config"
	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/domain/checkout"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
	"github.com/your-org/ecart-storefront/internal/domain/storefront"
	"github.com/your-org/ecart-storefront/internal/domain/user"
	"github.com/your-org/ecart-storefront/internal/infrastructure/storage"
	"github.com/your-org/ecart-storefront/internal/interfaces/http"
	"github.com/your-org/ecart-storefront/internal/pkg/auth"
	pkglogger "github.com/your-org/ecart-storefront/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := pkglogger.New(cfg.Logging)
	logger.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"backend":     cfg.Store.Backend,
	}).Info("Starting storefront")

	// Connect storage
	backend, err := storage.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open storage")
	}

	rules, err := pricing.ParseRules(cfg.Pricing.DiscountRate, cfg.Pricing.CouponDiscount, cfg.Pricing.PlatformFee)
	if err != nil {
		logger.WithError(err).Fatal("Invalid pricing configuration")
	}

	methods := make([]checkout.PaymentMethod, 0, len(cfg.Checkout.PaymentMethods))
	for _, m := range cfg.Checkout.PaymentMethods {
		methods = append(methods, checkout.PaymentMethod{Code: m.Key, Label: m.Value})
	}

	catalogService := catalog.NewService(backend.Store, catalog.CategoriesWithCollections(cfg.Store.CatalogCollections), logger)
	deps := storefront.Dependencies{
		Store:          backend.Store,
		Sessions:       backend.Sessions,
		Catalog:        catalogService,
		Users:          user.NewService(backend.Store, cfg.Store.UsersCollection, auth.NewPasswordManager(cfg), logger),
		Engine:         pricing.NewEngine(rules),
		PaymentMethods: methods,
		Collections: storefront.Collections{
			Cart:     cfg.Store.CartCollection,
			Wishlist: cfg.Store.WishlistCollection,
			Orders:   cfg.Store.OrdersCollection,
		},
		Logger: logger,
	}

	registry, err := storefront.NewRegistry(cfg.Registry.MaxShoppers, func(ctx context.Context, sessionID string) (*storefront.Shopper, error) {
		return storefront.NewShopper(ctx, deps, sessionID)
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to create shopper registry")
	}

	// Create and start HTTP server
	server := http.NewServer(cfg, logger, http.Dependencies{
		Registry:   registry,
		Catalog:    catalogService,
		JWTManager: auth.NewJWTManager(cfg),
		Redis:      backend.Redis,
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}
	registry.Close()
	if err := backend.Close(ctx); err != nil {
		logger.WithError(err).Error("Failed to close storage")
	}

	logger.Info("Server shutdown completed")
}
