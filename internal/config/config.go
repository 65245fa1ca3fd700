// Package config loads and validates the namefix configuration from
// .namefix/config.json, falling back to defaults when no file exists.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"namefix/internal/tier"
)

// ConfigDir is the per-project directory holding config, rules, and history.
const ConfigDir = ".namefix"

// Config represents the complete namefix configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Suggest SuggestConfig `json:"suggest" mapstructure:"suggest"`
	Diff    DiffConfig    `json:"diff" mapstructure:"diff"`
	Tier    TierConfig    `json:"tier" mapstructure:"tier"`
	Verify  VerifyConfig  `json:"verify" mapstructure:"verify"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// SuggestConfig configures the naming-suggestion client
type SuggestConfig struct {
	Model                string  `json:"model" mapstructure:"model"`
	MaxTokens            int     `json:"maxTokens" mapstructure:"maxTokens"`
	Temperature          float64 `json:"temperature" mapstructure:"temperature"`
	MaxRetries           int     `json:"maxRetries" mapstructure:"maxRetries"`
	APIKeyEnv            string  `json:"apiKeyEnv" mapstructure:"apiKeyEnv"`
	CacheTTLSeconds      int     `json:"cacheTtlSeconds" mapstructure:"cacheTtlSeconds"`
	CacheSize            int     `json:"cacheSize" mapstructure:"cacheSize"`
	MaxCandidatesPerFile int     `json:"maxCandidatesPerFile" mapstructure:"maxCandidatesPerFile"`
}

// DiffConfig configures the diff interpreter
type DiffConfig struct {
	// ModificationWindow is the line distance within which an addition
	// paired with a deletion counts as a modified line.
	ModificationWindow int `json:"modificationWindow" mapstructure:"modificationWindow"`
}

// TierConfig configures capability tier resolution
type TierConfig struct {
	Mode      string            `json:"mode" mapstructure:"mode"`
	ToolPaths map[string]string `json:"toolPaths" mapstructure:"toolPaths"`
}

// VerifyConfig configures post-rename verification
type VerifyConfig struct {
	TimeoutSeconds int `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
	// Commands overrides the built-in per-language checker argv,
	// keyed by language name. "{file}" expands to the target path.
	Commands map[string][]string `json:"commands" mapstructure:"commands"`
}

// HistoryConfig configures the rename journal
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Suggest: SuggestConfig{
			Model:                "gemini-2.5-flash",
			MaxTokens:            1024,
			Temperature:          0.2,
			MaxRetries:           2,
			APIKeyEnv:            "GEMINI_API_KEY",
			CacheTTLSeconds:      3600,
			CacheSize:            1024,
			MaxCandidatesPerFile: 10,
		},
		Diff: DiffConfig{
			ModificationWindow: 2,
		},
		Tier: TierConfig{
			Mode:      "auto",
			ToolPaths: map[string]string{},
		},
		Verify: VerifyConfig{
			TimeoutSeconds: 60,
			Commands:       map[string][]string{},
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .namefix/config.json
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ConfigDir))

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .namefix/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Suggest.Model == "" {
		return &ConfigError{Field: "suggest.model", Message: "model must not be empty"}
	}
	if c.Suggest.MaxTokens <= 0 {
		return &ConfigError{Field: "suggest.maxTokens", Message: "must be greater than zero"}
	}
	if c.Suggest.Temperature < 0 || c.Suggest.Temperature > 1 {
		return &ConfigError{Field: "suggest.temperature", Message: "must be between 0 and 1"}
	}
	if c.Suggest.MaxRetries < 0 {
		return &ConfigError{Field: "suggest.maxRetries", Message: "must not be negative"}
	}
	if c.Suggest.CacheTTLSeconds <= 0 {
		return &ConfigError{Field: "suggest.cacheTtlSeconds", Message: "must be greater than zero"}
	}
	if c.Suggest.CacheSize <= 0 {
		return &ConfigError{Field: "suggest.cacheSize", Message: "must be greater than zero"}
	}
	if c.Suggest.MaxCandidatesPerFile <= 0 {
		return &ConfigError{Field: "suggest.maxCandidatesPerFile", Message: "must be greater than zero"}
	}
	if c.Diff.ModificationWindow < 0 {
		return &ConfigError{Field: "diff.modificationWindow", Message: "must not be negative"}
	}
	if _, err := tier.ParseMode(c.Tier.Mode); err != nil {
		return &ConfigError{Field: "tier.mode", Message: err.Error()}
	}
	if c.Verify.TimeoutSeconds <= 0 {
		return &ConfigError{Field: "verify.timeoutSeconds", Message: "must be greater than zero"}
	}
	switch c.Logging.Format {
	case "json", "human":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be 'json' or 'human'"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
