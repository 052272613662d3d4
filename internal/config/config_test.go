package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.openai.com/v1", cfg.API.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.API.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 10, cfg.Chat.HistoryWindow)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.InDelta(t, 0.7, *cfg.Retrieval.MinScore, 1e-9)
	assert.Equal(t, "docs", cfg.Ingest.DocsDir)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
chat:
  model: gpt-4o
retrieval:
  top_k: 3
profile:
  name: Ana
  citizenship: Brazil
  age: 30
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.Chat.Model)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "Ana", cfg.Profile.Name)
	// untouched sections still get defaults
	assert.InDelta(t, 0.7, *cfg.Retrieval.MinScore, 1e-9)
	assert.InDelta(t, 0.2, *cfg.Chat.Temperature, 1e-9)
	assert.Equal(t, 10, cfg.Chat.HistoryWindow)
}

func TestLoadKeepsExplicitZeroTunables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
chat:
  temperature: 0
retrieval:
  min_score: 0
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	// an explicit 0 is a configuration choice, not an unset value
	require.NotNil(t, cfg.Chat.Temperature)
	assert.InDelta(t, 0.0, *cfg.Chat.Temperature, 1e-9)
	require.NotNil(t, cfg.Retrieval.MinScore)
	assert.InDelta(t, 0.0, *cfg.Retrieval.MinScore, 1e-9)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chat: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Chat.Model = "gpt-4-turbo"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4-turbo", loaded.Chat.Model)
}
