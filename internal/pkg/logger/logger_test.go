package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/ecart-storefront/internal/config"
)

func TestNewWithOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	log.Info("hidden")
	log.WithField("username", "asha").Warn("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "asha", entry["username"])
	assert.Equal(t, "warning", entry["level"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	log := NewWithOutput(config.LoggingConfig{Level: "loud", Format: "text"}, &bytes.Buffer{})

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
