package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// APIConfig holds connection details shared by the embedding and chat
// clients. The credential itself lives only in the environment
// variable named by APIKeyEnv.
type APIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbeddingConfig configures the embedding client.
type EmbeddingConfig struct {
	Model string `yaml:"model"`
}

// ChatConfig configures the generative chat client and conversation
// handling. Temperature is a pointer so an explicit 0 is
// distinguishable from unset.
type ChatConfig struct {
	Model         string   `yaml:"model"`
	Temperature   *float64 `yaml:"temperature"`
	MaxTokens     int      `yaml:"max_tokens"`
	HistoryWindow int      `yaml:"history_window"`
}

// RetrievalConfig holds the retrieval tunables. MinScore is a pointer
// so an explicit 0 threshold is distinguishable from unset.
type RetrievalConfig struct {
	TopK     int      `yaml:"top_k"`
	MinScore *float64 `yaml:"min_score"`
}

// IngestConfig configures startup document ingestion.
type IngestConfig struct {
	DocsDir     string `yaml:"docs_dir"`
	CorpusPath  string `yaml:"corpus_path"`
	Concurrency int    `yaml:"concurrency"`
}

// ProfileConfig describes the user the assistant is serving; it feeds
// the citizenship-aware system prompt.
type ProfileConfig struct {
	Name        string `yaml:"name"`
	Citizenship string `yaml:"citizenship"`
	Age         int    `yaml:"age"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	API       APIConfig       `yaml:"api"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chat      ChatConfig      `yaml:"chat"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Profile   ProfileConfig   `yaml:"profile"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/mofachat/config.yaml.
// If neither exists, it writes defaults to ~/.config/mofachat/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mofachat", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.API.APIKeyEnv == "" {
		cfg.API.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.API.TimeoutSecs == 0 {
		cfg.API.TimeoutSecs = 60
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "gpt-4"
	}
	if cfg.Chat.Temperature == nil {
		cfg.Chat.Temperature = floatPtr(0.2)
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = 1000
	}
	if cfg.Chat.HistoryWindow == 0 {
		cfg.Chat.HistoryWindow = 10
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.MinScore == nil {
		cfg.Retrieval.MinScore = floatPtr(0.7)
	}
	if cfg.Ingest.DocsDir == "" {
		cfg.Ingest.DocsDir = "docs"
	}
	if cfg.Ingest.Concurrency == 0 {
		cfg.Ingest.Concurrency = 4
	}
}

func floatPtr(v float64) *float64 { return &v }
