package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRecordServer, cfg.Store.Backend)
	assert.Equal(t, "http://localhost:3001", cfg.Store.BaseURL)
	assert.Equal(t, "cart", cfg.Store.CartCollection)
	assert.Equal(t, "0.04", cfg.Pricing.DiscountRate)
	assert.Equal(t, int64(117), cfg.Pricing.CouponDiscount)
	assert.Equal(t, int64(4), cfg.Pricing.PlatformFee)
	require.Len(t, cfg.Checkout.PaymentMethods, 3)
	assert.Equal(t, "cod", cfg.Checkout.PaymentMethods[0].Key)
	assert.False(t, cfg.NeedsRedis())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", BackendRTDB)
	t.Setenv("STORE_BASE_URL", "https://shop-default-rtdb.example.com")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("STORE_CATALOG_COLLECTIONS", "mobiles=phones, tvs=televisions")
	t.Setenv("CHECKOUT_PAYMENT_METHODS", "cod=Cash,upi=UPI,broken")
	t.Setenv("SESSION_STORE", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRTDB, cfg.Store.Backend)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, map[string]string{"mobiles": "phones", "tvs": "televisions"}, cfg.Store.CatalogCollections)
	assert.Equal(t, []KeyValue{{Key: "cod", Value: "Cash"}, {Key: "upi", Value: "UPI"}}, cfg.Checkout.PaymentMethods)
	assert.True(t, cfg.NeedsRedis())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
			Store:    StoreConfig{Backend: BackendMemory},
			Session:  SessionConfig{Store: "memory"},
			Checkout: CheckoutConfig{PaymentMethods: []KeyValue{{Key: "cod", Value: "Cash"}}},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }},
		{"record server without url", func(c *Config) { c.Store.Backend = BackendRecordServer }},
		{"dynamo without table", func(c *Config) { c.Store.Backend = BackendDynamo }},
		{"redis sessions without host", func(c *Config) { c.Session.Store = "redis" }},
		{"unknown session store", func(c *Config) { c.Session.Store = "cookie" }},
		{"no payment methods", func(c *Config) { c.Checkout.PaymentMethods = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
