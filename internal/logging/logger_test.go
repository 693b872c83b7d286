package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_CachedPerComponent(t *testing.T) {
	a := NewLogger("dock")
	b := NewLogger("dock")
	c := NewLogger("config")
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "dock", a.Data["component"])
}

func TestConfigure_JSONAndLevel(t *testing.T) {
	t.Setenv(LevelEnv, "")
	var buf bytes.Buffer
	Configure(Options{Level: "warn", Format: "json", Output: &buf})
	defer Configure(Options{})

	logger := NewLogger("test-json")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "test-json", entry["component"])
}

func TestConfigure_EnvOverridesLevel(t *testing.T) {
	t.Setenv(LevelEnv, "debug")
	Configure(Options{Level: "error"})
	defer Configure(Options{})

	assert.Equal(t, logrus.DebugLevel, base.GetLevel())
}

func TestConfigure_InvalidLevelFallsBack(t *testing.T) {
	t.Setenv(LevelEnv, "")
	Configure(Options{Level: "loud"})
	defer Configure(Options{})

	assert.Equal(t, logrus.InfoLevel, base.GetLevel())
}
