package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"jobform-api/config"
	"jobform-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := logger.New(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	log.Info("form saved")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"form saved"`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := logger.New(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}
