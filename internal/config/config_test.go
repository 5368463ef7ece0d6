package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "light", cfg.Theme)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	want := Config{BaseURL: "http://hunt.internal:8080", Theme: "dark"}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFillsMissingFields(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".huntctl")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{}`), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "light", cfg.Theme)
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".huntctl")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644))

	cfg, err := Load()
	require.Error(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBaseURL, "http://override.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://override.test", cfg.BaseURL)
}
