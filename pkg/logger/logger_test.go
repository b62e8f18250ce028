package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConAppYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", App: "sst-matriz-legal", Out: &buf})

	c := l.Component("matriz")
	c.Info().Str("empresa_id", "e-1").Msg("sincronización completada")
	l.Debug().Msg("descartado por nivel")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.Equal(t, "sst-matriz-legal", ev["app"])
	assert.Equal(t, "matriz", ev["component"])
	assert.Equal(t, "e-1", ev["empresa_id"])
	assert.Equal(t, "info", ev["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}
