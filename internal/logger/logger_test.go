package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trivia-challenge/internal/config"
)

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trivia.log")
	log, err := New(config.Log{Level: "debug", File: path})
	require.NoError(t, err)

	log.Debug("round started", zap.Int("amount", 5))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "round started", record["msg"])
	assert.Equal(t, "DEBUG", record["level"])
	assert.EqualValues(t, 5, record["amount"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.Log{Level: "chatty"})
	assert.Error(t, err)
}
