package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)

	l.Info("prediction served",
		String("route", "/predict_price"),
		Int("status", 200),
		Float64("price", 42.5),
		Duration("duration_ms", 1500*time.Millisecond),
		Bool("cached", false),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "prediction served", entry["message"])
	assert.Equal(t, "/predict_price", entry["route"])
	assert.EqualValues(t, 200, entry["status"])
	assert.EqualValues(t, 42.5, entry["price"])
	assert.EqualValues(t, 1500, entry["duration_ms"])
	assert.Equal(t, false, entry["cached"])
}

func TestLoggerWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf).With(String("request_id", "abc"))

	l.Error("inference failed", Error(errors.New("boom")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "boom", entry["error"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "chatty", Output: "stdout"})
	assert.Error(t, err)
}

func TestNewWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	l, err := New(&Config{Level: "info", Format: "json", Output: path, MaxSizeMB: 1})
	require.NoError(t, err)

	l.Info("hello")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}
