package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSONOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	Info().Msg("dropped")
	assert.Empty(t, buf.String())

	accounts := Component("accounts")
	accounts.Warn().Int64("userID", 3).Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "accounts", entry["component"])
	assert.Equal(t, "kept", entry["message"])
	assert.EqualValues(t, 3, entry["userID"])
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom("DEBUG", "pretty")
	assert.Equal(t, DebugLevel, cfg.Level)
	assert.True(t, cfg.Pretty)

	cfg = ConfigFrom("info", "json")
	assert.False(t, cfg.Pretty)

	Configure(ConfigFrom("nonsense", "json"))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
