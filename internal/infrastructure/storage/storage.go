// Package storage opens the configured collection store and session store.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/config"
	"github.com/your-org/ecart-storefront/internal/domain/session"
	"github.com/your-org/ecart-storefront/internal/infrastructure/database/dynamo"
	mongostore "github.com/your-org/ecart-storefront/internal/infrastructure/database/mongo"
	"github.com/your-org/ecart-storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/ecart-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/memory"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/recordserver"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/rtdb"
)

// Backend is the opened storage for one process
type Backend struct {
	Store    remote.Store
	Sessions session.Store
	// Redis is set when any component uses Redis
	Redis *redis.Client

	closers []func(context.Context) error
}

// Close releases every connection the backend opened
func (b *Backend) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open connects the backend selected by cfg.Store.Backend
func Open(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Backend, error) {
	b := &Backend{}
	fail := func(err error) (*Backend, error) {
		_ = b.Close(context.Background())
		return nil, err
	}

	if cfg.NeedsRedis() {
		client, err := redis.NewConnection(cfg, logger)
		if err != nil {
			return fail(err)
		}
		b.Redis = client
		b.closers = append(b.closers, func(context.Context) error { return client.Close() })
	}

	switch cfg.Store.Backend {
	case config.BackendRecordServer:
		b.Store = recordserver.New(cfg.Store.BaseURL, cfg.Store.Timeout)
	case config.BackendRTDB:
		b.Store = rtdb.New(cfg.Store.BaseURL, cfg.Store.AuthToken, cfg.Store.Timeout)
	case config.BackendMemory:
		b.Store = memory.New()
	case config.BackendRedis:
		b.Store = redis.NewCollectionStore(b.Redis)
	case config.BackendPostgres:
		db, err := postgres.NewConnection(cfg, logger)
		if err != nil {
			return fail(err)
		}
		b.closers = append(b.closers, func(context.Context) error { return db.Close() })

		migration := postgres.NewMigration(db.GetDB(), logger)
		if err := migration.RunAutoMigrations(); err != nil {
			return fail(fmt.Errorf("database migration failed: %w", err))
		}
		if err := migration.CreateIndexes(); err != nil {
			logger.WithError(err).Warn("Index creation failed")
		}
		b.Store = postgres.NewDocumentStore(db.GetDB())
	case config.BackendMongo:
		client, err := mongostore.NewConnection(ctx, cfg, logger)
		if err != nil {
			return fail(err)
		}
		b.closers = append(b.closers, client.Close)
		b.Store = mongostore.NewDocumentStore(client.Database())
	case config.BackendDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return fail(err)
		}
		if cfg.Dynamo.Endpoint != "" {
			if err := dynamo.EnsureTable(ctx, client, cfg.Dynamo.Table); err != nil {
				return fail(err)
			}
		}
		b.Store = dynamo.NewDocumentStore(client, cfg.Dynamo.Table)
	default:
		return fail(fmt.Errorf("unknown store backend %q", cfg.Store.Backend))
	}

	if cfg.Session.Store == "redis" {
		b.Sessions = redis.NewSessionStore(b.Redis, cfg.Session.TTL)
	} else {
		b.Sessions = session.NewMemoryStore()
	}

	logger.WithFields(logrus.Fields{
		"backend":       cfg.Store.Backend,
		"session_store": cfg.Session.Store,
	}).Info("Storage opened")
	return b, nil
}
