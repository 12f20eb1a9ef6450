package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfig marks configuration problems that must stop startup.
var ErrConfig = errors.New("invalid configuration")

// ServerConfig configures the HTTP endpoint.
type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSecs     int    `yaml:"read_timeout_secs"`
	WriteTimeoutSecs    int    `yaml:"write_timeout_secs"`
	ShutdownTimeoutSecs int    `yaml:"shutdown_timeout_secs"`
}

// CorpusConfig points at the knowledge base file or directory.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// ChunkerConfig configures how the corpus is split into chunks.
type ChunkerConfig struct {
	MaxSize int `yaml:"max_size"`
}

// RetrievalConfig configures lexical ranking.
type RetrievalConfig struct {
	TopK     int     `yaml:"top_k"`
	MinScore float64 `yaml:"min_score"`
}

// GenerationConfig selects and configures the hosted language model.
type GenerationConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// APIKey returns the credential named by APIKeyEnv.
func (g GenerationConfig) APIKey() string {
	return strings.TrimSpace(os.Getenv(g.APIKeyEnv))
}

// RulesConfig optionally overrides the built-in rule tables.
type RulesConfig struct {
	File string `yaml:"file"`
}

// CacheConfig enables the generated-answer cache when Size > 0.
type CacheConfig struct {
	Size    int `yaml:"size"`
	TTLSecs int `yaml:"ttl_secs"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Generation GenerationConfig `yaml:"generation"`
	Rules      RulesConfig      `yaml:"rules"`
	Cache      CacheConfig      `yaml:"cache"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%w: decode %s: %v", ErrConfig, path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	applyEnv(cfg)
	applyConfigDefaults(cfg)
	return cfg, nil
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

// Validate reports configuration errors that make the service unusable.
func (c *AppConfig) Validate() error {
	switch c.Generation.Provider {
	case "cohere", "openai", "gemini":
	default:
		return fmt.Errorf("%w: unknown generation provider %q", ErrConfig, c.Generation.Provider)
	}
	if c.Generation.APIKey() == "" {
		return fmt.Errorf("%w: %s environment variable not set", ErrConfig, c.Generation.APIKeyEnv)
	}
	if c.Retrieval.MinScore < 0 || c.Retrieval.MinScore >= 1 {
		return fmt.Errorf("%w: retrieval.min_score must be in [0, 1)", ErrConfig)
	}
	return nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server:     ServerConfig{Addr: ":5000", ReadTimeoutSecs: 10, WriteTimeoutSecs: 60, ShutdownTimeoutSecs: 10},
		Corpus:     CorpusConfig{Path: "data"},
		Chunker:    ChunkerConfig{MaxSize: 500},
		Retrieval:  RetrievalConfig{TopK: 3, MinScore: 0.1},
		Generation: GenerationConfig{Provider: "cohere", TimeoutSecs: 30},
		Log:        LogConfig{Level: "info", Format: "console"},
		Metrics:    MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("HELPDESK_CORPUS"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv("HELPDESK_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HELPDESK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Chunker.MaxSize <= 0 {
		cfg.Chunker.MaxSize = 500
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	g := &cfg.Generation
	g.Provider = strings.ToLower(strings.TrimSpace(g.Provider))
	if g.Provider == "" {
		g.Provider = "cohere"
	}
	if g.TimeoutSecs <= 0 {
		g.TimeoutSecs = 30
	}
	switch g.Provider {
	case "cohere":
		if g.BaseURL == "" {
			g.BaseURL = "https://api.cohere.com"
		}
		if g.APIKeyEnv == "" {
			g.APIKeyEnv = "COHERE_API_KEY"
		}
		if g.Model == "" {
			g.Model = "command-r"
		}
	case "openai":
		if g.BaseURL == "" {
			g.BaseURL = "https://api.openai.com/v1"
		}
		if g.APIKeyEnv == "" {
			g.APIKeyEnv = "OPENAI_API_KEY"
		}
		if g.Model == "" {
			g.Model = "gpt-4o-mini"
		}
	case "gemini":
		if g.APIKeyEnv == "" {
			g.APIKeyEnv = "GEMINI_API_KEY"
		}
		if g.Model == "" {
			g.Model = "gemini-2.0-flash"
		}
	}
}
