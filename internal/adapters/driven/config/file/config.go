// Package file loads the payguard configuration from a TOML file.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file name inside the config directory.
const DefaultFileName = "config.toml"

// Config is the full payguard configuration.
type Config struct {
	// DataDir is where the vector index and ledger database live.
	// Empty defaults to ~/.payguard.
	DataDir string `toml:"data_dir"`

	Limits    LimitsConfig    `toml:"limits"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Screening ScreeningConfig `toml:"screening"`
}

// LimitsConfig holds the fallback transfer limits used when no policy
// document overrides them.
type LimitsConfig struct {
	PerTransaction float64 `toml:"per_transaction"`
	Daily          float64 `toml:"daily"`
}

// ChunkingConfig controls document chunking.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig controls policy retrieval during validation.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`

	// TopicTimeoutSeconds bounds each topic query during validation.
	TopicTimeoutSeconds int `toml:"topic_timeout_seconds"`
}

// TopicTimeout returns the per-topic timeout as a duration.
func (r RetrievalConfig) TopicTimeout() time.Duration {
	return time.Duration(r.TopicTimeoutSeconds) * time.Second
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv         string  `toml:"api_key_env"`
	Dimensions        int     `toml:"dimensions"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// ScreeningConfig overrides the sanctions screener lists. Empty slices
// keep the screener defaults.
type ScreeningConfig struct {
	SanctionedCountries []string `toml:"sanctioned_countries"`
	SanctionedNames     []string `toml:"sanctioned_names"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Limits: LimitsConfig{
			PerTransaction: 500,
			Daily:          1000,
		},
		Chunking: ChunkingConfig{
			Size:    1000,
			Overlap: 200,
		},
		Retrieval: RetrievalConfig{
			TopK:                5,
			TopicTimeoutSeconds: 10,
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			APIKeyEnv: "OPENAI_API_KEY",
		},
	}
}

// Load reads the config file at path and fills in defaults for any
// field left at its zero value. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// DefaultPath returns the config file path under the user's payguard
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".payguard", DefaultFileName), nil
}

// Save writes the configuration to path, creating the directory if
// needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(path, data, 0600)
}

// applyDefaults restores defaults for fields an explicit config file
// left unset. Partial files are common, a file that only sets limits
// should not zero out chunking.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Limits.PerTransaction <= 0 {
		cfg.Limits.PerTransaction = def.Limits.PerTransaction
	}
	if cfg.Limits.Daily <= 0 {
		cfg.Limits.Daily = def.Limits.Daily
	}
	if cfg.Chunking.Size <= 0 {
		cfg.Chunking.Size = def.Chunking.Size
	}
	if cfg.Chunking.Overlap < 0 {
		cfg.Chunking.Overlap = def.Chunking.Overlap
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.TopicTimeoutSeconds <= 0 {
		cfg.Retrieval.TopicTimeoutSeconds = def.Retrieval.TopicTimeoutSeconds
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = def.Embedding.Provider
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = def.Embedding.APIKeyEnv
	}
}
