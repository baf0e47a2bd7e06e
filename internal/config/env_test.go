package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	os.Unsetenv(EnvAPIKey)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0644))

	require.NoError(t, LoadEnv(dir))
	assert.Equal(t, "from-dotenv", os.Getenv(EnvAPIKey))
}

func TestLoadEnvKeepsExisting(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-shell")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0644))

	require.NoError(t, LoadEnv(dir))
	assert.Equal(t, "from-shell", os.Getenv(EnvAPIKey))
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadEnv(t.TempDir()))
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		gemini string
		legacy string
		want   string
	}{
		{"gemini key", "g-key", "", "g-key"},
		{"legacy fallback", "", "l-key", "l-key"},
		{"gemini wins", "g-key", "l-key", "g-key"},
		{"none", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, tt.gemini)
			t.Setenv(EnvAPIKeyLegacy, tt.legacy)
			assert.Equal(t, tt.want, APIKey())
		})
	}
}
