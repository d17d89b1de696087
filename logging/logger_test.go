package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"converter-kit/logging"
)

func TestSlogLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	log := logging.NewSlogLogger(logging.LevelInfo, "json", &buf)
	log.Debug("hidden")
	log.Info("converter resolved", "source", "string", "target", "int")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converter resolved", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "int", entry["target"])
}

func TestSlogLogger_Text(t *testing.T) {
	var buf bytes.Buffer

	log := logging.NewSlogLogger(logging.LevelDebug, "text", &buf)
	log.Debug("resolving", "n", 3)

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "n=3")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", logging.LevelWarn.String())
	assert.Equal(t, "UNKNOWN", logging.Level(9).String())
}

func TestNoOp(t *testing.T) {
	log := logging.NoOp()
	assert.NotPanics(t, func() {
		log.Debug("x")
		log.Info("x")
		log.Warn("x")
		log.Error("x")
	})
}

func TestZapLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	log := logging.NewZapLogger(logging.LevelInfo, "json", &buf)
	log.Debug("hidden")
	log.Warn("converter registered", "target", "time.Time", "count", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converter registered", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "time.Time", entry["target"])
	assert.EqualValues(t, 2, entry["count"])
}

func TestZapAdapter_Observer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logging.NewZapAdapter(zap.New(core))

	log.Debug("converter created", "family", "number")
	log.Error("conversion failed")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.DebugLevel, entry.Level)
	assert.Equal(t, "number", entry.ContextMap()["family"])
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
}
