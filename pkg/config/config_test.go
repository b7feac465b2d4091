package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultStorageRoot, cfg.StorageRoot)
	assert.Equal(t, DefaultBindAddress, cfg.BindAddress)
	assert.Equal(t, DefaultServerBin, cfg.ServerBin)
	assert.Equal(t, []string{"serve"}, cfg.ServerArgs)
	assert.Equal(t, DefaultCompanionBin, cfg.CompanionBin)
	assert.Equal(t, DefaultReadyAttempts, cfg.ReadyAttempts)
	assert.Equal(t, time.Second, cfg.ReadyInterval)
	assert.Empty(t, cfg.SyncModels)
	assert.False(t, cfg.StrictReadinessGate)
}

func TestSplitModelsList(t *testing.T) {
	tests := []struct {
		name     string
		list     string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "vendor/name", []string{"vendor/name"}},
		{"multiple", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace and empties", " a , b ,,c, ", []string{"a", "b", "c"}},
		{"only separators", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitModelsList(tt.list))
		})
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		name     string
		bind     string
		expected string
	}{
		{"wildcard ipv4", "0.0.0.0:11434", "http://127.0.0.1:11434"},
		{"empty host", ":11434", "http://127.0.0.1:11434"},
		{"wildcard ipv6", "[::]:11434", "http://127.0.0.1:11434"},
		{"explicit host", "localhost:8080", "http://localhost:8080"},
		{"explicit ip", "10.0.0.5:9000", "http://10.0.0.5:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BindAddress: tt.bind}
			assert.Equal(t, tt.expected, cfg.ServerURL())
		})
	}
}

func TestReadinessURL(t *testing.T) {
	cfg := &Config{BindAddress: "0.0.0.0:11434"}

	assert.Equal(t, "http://127.0.0.1:11434/api/health", cfg.ReadinessURL())
}

func TestLoadFromFile_OverlaysDefaults(t *testing.T) {
	content := `
storage_root: /srv/models
ready_attempts: 5
sync_models:
  - vendor/name
  - other
`
	filename := filepath.Join(t.TempDir(), "entry.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))

	cfg, err := LoadFromFile(filename, Default())

	require.NoError(t, err)
	assert.Equal(t, "/srv/models", cfg.StorageRoot)
	assert.Equal(t, 5, cfg.ReadyAttempts)
	assert.Equal(t, []string{"vendor/name", "other"}, cfg.SyncModels)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultBindAddress, cfg.BindAddress)
	assert.Equal(t, DefaultServerBin, cfg.ServerBin)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"), Default())

	assert.Error(t, err)
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "entry.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("storage_root: [unclosed"), 0644))

	_, err := LoadFromFile(filename, Default())

	assert.Error(t, err)
}
