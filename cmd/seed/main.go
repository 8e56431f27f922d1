// cmd/seed/main.go
package main

import (
	"context"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/your-org/ecart-storefront/internal/config"
	"github.com/your-org/ecart-storefront/internal/infrastructure/storage"
	pkglogger "github.com/your-org/ecart-storefront/internal/pkg/logger"
)

func main() {
	file := flag.StringP("file", "f", "db.json", "db.json export to load")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := pkglogger.New(cfg.Logging)

	f, err := os.Open(*file)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open seed file")
	}
	defer f.Close()

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open storage")
	}
	defer backend.Close(ctx)

	written, err := storage.Seed(ctx, backend.Store, f, logger)
	if err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	total := 0
	for _, n := range written {
		total += n
	}
	logger.WithFields(logrus.Fields{
		"backend":     cfg.Store.Backend,
		"collections": len(written),
		"records":     total,
	}).Info("Seeding completed")
}
