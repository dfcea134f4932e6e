package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0wem/weblarek/internal/platform/logging"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	var buf bytes.Buffer

	logger := logging.New(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("shown", slog.String("module", "test"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "test", line["module"])
	assert.Same(t, logger, slog.Default())
}
