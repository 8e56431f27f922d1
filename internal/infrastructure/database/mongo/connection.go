// internal/infrastructure/database/mongo/connection.go
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/your-org/ecart-storefront/internal/config"
)

// Client wraps the Mongo client and the configured database
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection connects and pings MongoDB
func NewConnection(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.WithField("database", cfg.Mongo.Database).Info("MongoDB connection established")
	return &Client{client: client, db: client.Database(cfg.Mongo.Database)}, nil
}

// Database returns the configured database
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close disconnects from MongoDB
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
