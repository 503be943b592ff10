package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/plm-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, logger.ParseLevel(" ERROR "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("loquesea"))
}

func TestNew_ProduccionEmiteJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "plm-api", Out: &buf})
	t.Cleanup(func() { zerolog.DefaultContextLogger = nil })

	l.Debug().Msg("no debe salir")
	l.Info().Str("username", "alice").Msg("usuario registrado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "alice", entry["username"])
	assert.Equal(t, "usuario registrado", entry["message"])
	assert.Equal(t, "plm-api", entry["service"])
}

func TestNew_InstalaLoggerDeContexto(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	t.Cleanup(func() { zerolog.DefaultContextLogger = nil })

	zerolog.Ctx(context.Background()).Info().Msg("desde ctx")
	assert.Contains(t, buf.String(), "desde ctx")
}

func TestWithContext_PrefiereLoggerDelContexto(t *testing.T) {
	var global, local bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Out: &local})
	logger.New(logger.Config{Env: "production", Out: &global})
	t.Cleanup(func() { zerolog.DefaultContextLogger = nil })

	ctx := l.WithContext(context.Background())
	zerolog.Ctx(ctx).Info().Msg("por contexto")
	assert.Contains(t, local.String(), "por contexto")
	assert.NotContains(t, global.String(), "por contexto")
}
