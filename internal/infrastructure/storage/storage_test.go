package storage

import (
	"context"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/ecart-storefront/internal/config"
	"github.com/your-org/ecart-storefront/internal/domain/session"
	"github.com/your-org/ecart-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/memory"
	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/recordserver"
)

func TestOpenMemory(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{
		Store:   config.StoreConfig{Backend: config.BackendMemory},
		Session: config.SessionConfig{Store: "memory"},
	}

	b, err := Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer b.Close(context.Background())

	assert.IsType(t, &memory.Store{}, b.Store)
	assert.IsType(t, &session.MemoryStore{}, b.Sessions)
	assert.Nil(t, b.Redis)
}

func TestOpenRecordServerWithRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{
		Store:   config.StoreConfig{Backend: config.BackendRecordServer, BaseURL: "http://localhost:3001"},
		Session: config.SessionConfig{Store: "redis"},
		Redis:   config.RedisConfig{Host: host, Port: port, KeyPrefix: "ecart"},
	}

	b, err := Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer b.Close(context.Background())

	assert.IsType(t, &recordserver.Store{}, b.Store)
	assert.IsType(t, &redis.SessionStore{}, b.Sessions)
	require.NotNil(t, b.Redis)

	require.NoError(t, b.Sessions.Save(context.Background(), "s1", session.State{LoggedIn: true, Username: "asha"}))
	assert.True(t, mr.Exists("ecart:session:s1"))
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Backend: "tape"}}, logger)
	assert.Error(t, err)
}
