package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json")

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("catalog lookup failed", "code", "9780441172719")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog lookup failed", entry["msg"])
	assert.Equal(t, "9780441172719", entry["code"])
}

func TestNewTextDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "verbose", "text")

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
