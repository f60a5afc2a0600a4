package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcWritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	calc := NewCalc(zerolog.New(&buf))

	calc.Warnf("loss from %d not restated", 2012)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "calculation", entry["component"])
	assert.Equal(t, "loss from 2012 not restated", entry["message"])
}

func TestCalcLevels(t *testing.T) {
	var buf bytes.Buffer
	calc := NewCalc(zerolog.New(&buf).Level(zerolog.InfoLevel))

	calc.Debugf("hidden")
	calc.Infof("shown")
	calc.Errorf("failed %s", "x")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"info"`)
	assert.Contains(t, lines[1], `"message":"failed x"`)
}

func TestSetup(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	logger := Setup(zerolog.WarnLevel, true, &buf)
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"message":"kept"`)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
