// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by STORE_BACKEND
const (
	BackendRecordServer = "recordserver"
	BackendRTDB         = "rtdb"
	BackendMemory       = "memory"
	BackendRedis        = "redis"
	BackendPostgres     = "postgres"
	BackendMongo        = "mongo"
	BackendDynamo       = "dynamodb"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Dynamo   DynamoConfig
	Session  SessionConfig
	JWT      JWTConfig
	Security SecurityConfig
	Pricing  PricingConfig
	Checkout CheckoutConfig
	Registry RegistryConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig selects and addresses the remote collection store
type StoreConfig struct {
	Backend            string
	BaseURL            string
	AuthToken          string
	Timeout            time.Duration
	UsersCollection    string
	CartCollection     string
	WishlistCollection string
	OrdersCollection   string
	// CatalogCollections maps category slug to collection name
	CatalogCollections map[string]string
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	KeyPrefix    string
}

// MongoConfig contains MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// DynamoConfig contains DynamoDB configuration
type DynamoConfig struct {
	Table    string
	Region   string
	Endpoint string
}

// SessionConfig contains browser session configuration
type SessionConfig struct {
	Store        string
	TTL          time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// JWTConfig contains session token signing configuration
type JWTConfig struct {
	Secret             string
	SessionTokenExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	MaxBodyBytes       int64
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// PricingConfig overrides the price breakdown constants
type PricingConfig struct {
	DiscountRate   string
	CouponDiscount int64
	PlatformFee    int64
}

// CheckoutConfig contains checkout configuration
type CheckoutConfig struct {
	// PaymentMethods maps method code to display label, in declaration order
	PaymentMethods []KeyValue
}

// RegistryConfig bounds the per-session shopper cache
type RegistryConfig struct {
	MaxShoppers int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// KeyValue is one ordered key=value pair
type KeyValue struct {
	Key   string
	Value string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "E-Cart Storefront"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:            getEnv("APP_PORT", "8080"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout:  getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			Backend:            getEnv("STORE_BACKEND", BackendRecordServer),
			BaseURL:            getEnv("STORE_BASE_URL", "http://localhost:3001"),
			AuthToken:          getEnv("STORE_AUTH_TOKEN", ""),
			Timeout:            getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),
			UsersCollection:    getEnv("STORE_USERS_COLLECTION", "users"),
			CartCollection:     getEnv("STORE_CART_COLLECTION", "cart"),
			WishlistCollection: getEnv("STORE_WISHLIST_COLLECTION", "wishlist"),
			OrdersCollection:   getEnv("STORE_ORDERS_COLLECTION", "checkorder"),
			CatalogCollections: getEnvAsMap("STORE_CATALOG_COLLECTIONS", map[string]string{}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "storefront_db"),
			User:         getEnv("DB_USER", "storefront_user"),
			Password:     getEnv("DB_PASSWORD", "storefront_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "ecart"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "ecart"),
		},
		Dynamo: DynamoConfig{
			Table:    getEnv("DYNAMO_TABLE", "ecart-documents"),
			Region:   getEnv("AWS_REGION", "us-east-1"),
			Endpoint: getEnv("DYNAMO_ENDPOINT", ""),
		},
		Session: SessionConfig{
			Store:        getEnv("SESSION_STORE", "memory"),
			TTL:          getEnvAsDuration("SESSION_TTL", 30*24*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session_id"),
			CookieDomain: getEnv("SESSION_COOKIE_DOMAIN", ""),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			SessionTokenExpiry: getEnvAsDuration("JWT_SESSION_EXPIRE", 30*24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			MaxBodyBytes:       getEnvAsInt64("MAX_BODY_BYTES", 1<<20),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Pricing: PricingConfig{
			DiscountRate:   getEnv("PRICING_DISCOUNT_RATE", "0.04"),
			CouponDiscount: getEnvAsInt64("PRICING_COUPON_DISCOUNT", 117),
			PlatformFee:    getEnvAsInt64("PRICING_PLATFORM_FEE", 4),
		},
		Checkout: CheckoutConfig{
			PaymentMethods: getEnvAsPairs("CHECKOUT_PAYMENT_METHODS", []KeyValue{
				{Key: "cod", Value: "Cash on Delivery"},
				{Key: "gpay", Value: "Google Pay (UPI)"},
				{Key: "phonepe", Value: "PhonePe (UPI)"},
			}),
		},
		Registry: RegistryConfig{
			MaxShoppers: getEnvAsInt("REGISTRY_MAX_SHOPPERS", 10000),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.Store.Backend {
	case BackendRecordServer, BackendRTDB:
		if c.Store.BaseURL == "" {
			return fmt.Errorf("STORE_BASE_URL is required for the %s backend", c.Store.Backend)
		}
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("DB_HOST, DB_NAME and DB_USER are required for the postgres backend")
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DATABASE are required for the mongo backend")
		}
	case BackendDynamo:
		if c.Dynamo.Table == "" {
			return fmt.Errorf("DYNAMO_TABLE is required for the dynamodb backend")
		}
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.NeedsRedis() && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}

	if len(c.Checkout.PaymentMethods) == 0 {
		return fmt.Errorf("CHECKOUT_PAYMENT_METHODS must name at least one method")
	}

	return nil
}

// NeedsRedis reports whether any component is configured to use Redis
func (c *Config) NeedsRedis() bool {
	return c.Store.Backend == BackendRedis || c.Session.Store == "redis"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// getEnvAsPairs parses "k1=v1,k2=v2", keeping declaration order
func getEnvAsPairs(key string, defaultValue []KeyValue) []KeyValue {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var pairs []KeyValue
	for _, part := range strings.Split(value, ",") {
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		pairs = append(pairs, KeyValue{Key: k, Value: strings.TrimSpace(v)})
	}
	return pairs
}

func getEnvAsMap(key string, defaultValue map[string]string) map[string]string {
	pairs := getEnvAsPairs(key, nil)
	if pairs == nil {
		return defaultValue
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.Key] = p.Value
	}
	return out
}
