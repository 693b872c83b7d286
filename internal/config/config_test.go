package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
domain: com.example.dock
badge_refresh: 30s
poll_interval: 250ms
include_others: true
collapse_notifications: true
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "com.example.dock", cfg.Domain)
	assert.Equal(t, 30*time.Second, cfg.BadgeRefresh.Duration())
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval.Duration())
	assert.True(t, cfg.IncludeOthers)
	assert.True(t, cfg.CollapseNotifications)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "badge_refresh: 30s\n")
	t.Setenv("DOCK_BADGE_REFRESH", "never")
	t.Setenv("DOCK_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Duration(0), cfg.BadgeRefresh)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "domain: [unclosed"},
		{"bad duration", "badge_refresh: soon"},
		{"empty domain", "domain: \"\""},
		{"poll too fast", "poll_interval: 1ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			assert.Error(t, err)
			assert.Equal(t, Default(), LoadOrDefault(path))
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"never", 0},
		{"OFF", 0},
		{"0", 0},
		{"5s", 5 * time.Second},
		{" 1m ", time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.Duration(), tt.in)
	}
	_, err := ParseDuration("fast")
	assert.Error(t, err)
}

func TestDuration_YAMLRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(struct {
		D Duration `yaml:"d"`
		N Duration `yaml:"n"`
	}{Duration(90 * time.Second), 0})
	require.NoError(t, err)
	assert.Contains(t, string(out), "d: 1m30s")
	assert.Contains(t, string(out), "n: never")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(PathEnv, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())

	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "dock-cli", "config.yaml"), DefaultPath())
}

func TestWatcher_EmitsReloadedConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "badge_refresh: 10s\n")

	w, err := NewWatcher(path, 10*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.WriteFile(path, []byte("badge_refresh: 45s\n"), 0o644))

	select {
	case cfg := <-w.Changes():
		assert.Equal(t, 45*time.Second, cfg.BadgeRefresh.Duration())
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config change")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "badge_refresh: 10s\n")

	w, err := NewWatcher(path, 10*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	select {
	case cfg := <-w.Changes():
		t.Fatalf("unexpected change: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}
