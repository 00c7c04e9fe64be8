package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"wishlist/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("wishlist", "json", "info", &buf)

	logger.Info("hello", "user_id", 7)
	logger.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "wishlist", entry["service"])
	assert.EqualValues(t, 7, entry["user_id"])
}

func TestSetup_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("wishlist", "text", "debug", &buf)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "service=wishlist")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("nonsense"))
}
