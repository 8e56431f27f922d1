// cmd/migrate-passwords/main.go
package main

import (
	"context"
	"log"

	flag "github.com/spf13/pflag"

	"github.com/your-org/ecart-storefront/internal/config"
	"github.com/your-org/ecart-storefront/internal/domain/user"
	"github.com/your-org/ecart-storefront/internal/infrastructure/storage"
	"github.com/your-org/ecart-storefront/internal/pkg/auth"
	pkglogger "github.com/your-org/ecart-storefront/internal/pkg/logger"
)

// Rewrites every plaintext password in the users collection as a bcrypt hash
func main() {
	collection := flag.String("collection", "", "users collection (defaults to STORE_USERS_COLLECTION)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := pkglogger.New(cfg.Logging)
	if *collection == "" {
		*collection = cfg.Store.UsersCollection
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open storage")
	}
	defer backend.Close(ctx)

	users := user.NewService(backend.Store, *collection, auth.NewPasswordManager(cfg), logger)
	migrated, err := users.MigratePasswords(ctx)
	if err != nil {
		logger.WithError(err).WithField("migrated", migrated).Fatal("Password migration failed")
	}
	logger.WithField("migrated", migrated).Info("Password migration completed")
}
