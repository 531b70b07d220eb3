package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer

	err := Init(Config{
		Level:          "info",
		Format:         "json",
		ServiceName:    "marketdesk-test",
		ServiceVersion: "0.0.1",
		Output:         &buf,
	})
	require.NoError(t, err)

	log.Info().Str("symbol", "AAPL").Msg("hello")
	log.Debug().Msg("filtered")

	out := buf.String()
	assert.Contains(t, out, `"service":"marketdesk-test"`)
	assert.Contains(t, out, `"symbol":"AAPL"`)
	assert.NotContains(t, out, "filtered")
}

func TestInit_InvalidLevel(t *testing.T) {
	err := Init(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestInit_FileEnabled(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer

	err := Init(Config{
		Level:         "info",
		Format:        "json",
		FileEnabled:   true,
		FilePath:      dir,
		RotationSize:  1,
		RetentionDays: 1,
		Output:        &buf,
	})
	require.NoError(t, err)

	log.Info().Msg("to app log")
	log.Error().Msg("to error log")

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "to app log")

	errLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errLog), "to error log")
	assert.NotContains(t, string(errLog), "to app log")
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	f := &levelFilter{Writer: &buf, min: zerolog.WarnLevel}

	_, _ = f.WriteLevel(zerolog.InfoLevel, []byte("info"))
	_, _ = f.WriteLevel(zerolog.ErrorLevel, []byte("error"))

	assert.Equal(t, "error", buf.String())
}
