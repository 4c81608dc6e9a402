package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "tienda-admin", Out: &buf})

	c := l.Component("cache")
	c.Info().Str("key", "orders").Msg("snapshot guardado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "tienda-admin", line["service"])
	assert.Equal(t, "cache", line["component"])
	assert.Equal(t, "orders", line["key"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí aparece")
	assert.Contains(t, buf.String(), "sí aparece")
}
