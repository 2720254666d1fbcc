// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MATCHLY_PORT
const EnvPrefix = "MATCHLY"

// Config is loaded from an optional JSON or YAML file with environment overrides.
// All fields are optional; zero values fall back to Defaults().
type Config struct {
	// Service
	Port int `mapstructure:"port" json:"port,omitempty"`

	// Storage; at most one of DatabaseURL and SQLitePath may be set
	DatabaseURL string `mapstructure:"database_url" json:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `mapstructure:"sqlite_path" json:"sqlite_path,omitempty"`   // Local analysis history file
	RedisURL    string `mapstructure:"redis_url" json:"redis_url,omitempty"`       // L2 embedding cache

	// Embeddings
	GeminiAPIKey      string        `mapstructure:"gemini_api_key" json:"gemini_api_key,omitempty"`
	EmbeddingProvider string        `mapstructure:"embedding_provider" json:"embedding_provider,omitempty"` // gemini, hash or none
	EmbeddingModel    string        `mapstructure:"embedding_model" json:"embedding_model,omitempty"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl" json:"cache_ttl,omitempty"`
	CacheMaxEntries   int           `mapstructure:"cache_max_entries" json:"cache_max_entries,omitempty"`

	// Matching
	TaxonomyPath   string  `mapstructure:"taxonomy_path" json:"taxonomy_path,omitempty"` // YAML taxonomy override
	MatchThreshold float64 `mapstructure:"match_threshold" json:"match_threshold,omitempty"`

	// Limits
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" json:"max_upload_bytes,omitempty"`
	MaxJDChars     int   `mapstructure:"max_jd_chars" json:"max_jd_chars,omitempty"`

	// Behavior
	UseBrowser bool `mapstructure:"use_browser" json:"use_browser,omitempty"` // Render short job postings in a headless browser
	Verbose    bool `mapstructure:"verbose" json:"verbose,omitempty"`         // Print human-readable summaries
	LogJSON    bool `mapstructure:"log_json" json:"log_json,omitempty"`
	Debug      bool `mapstructure:"debug" json:"debug,omitempty"`
}

// Embedding providers accepted by Validate
var providers = map[string]bool{"gemini": true, "hash": true, "none": true}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:              8080,
		EmbeddingProvider: "hash",
		EmbeddingModel:    "text-embedding-004",
		CacheTTL:          24 * time.Hour,
		CacheMaxEntries:   10000,
		MatchThreshold:    0.65,
		MaxUploadBytes:    5 << 20,
		MaxJDChars:        100000,
	}
}

// envAliases binds the conventional unprefixed variables alongside MATCHLY_*
var envAliases = map[string]string{
	"database_url":   "DATABASE_URL",
	"redis_url":      "REDIS_URL",
	"gemini_api_key": "GEMINI_API_KEY",
}

// Load reads the configuration. path may be empty to use defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Defaults()
	for key, value := range map[string]any{
		"port":               defaults.Port,
		"database_url":       "",
		"sqlite_path":        "",
		"redis_url":          "",
		"gemini_api_key":     "",
		"embedding_provider": defaults.EmbeddingProvider,
		"embedding_model":    defaults.EmbeddingModel,
		"cache_ttl":          defaults.CacheTTL,
		"cache_max_entries":  defaults.CacheMaxEntries,
		"taxonomy_path":      "",
		"match_threshold":    defaults.MatchThreshold,
		"max_upload_bytes":   defaults.MaxUploadBytes,
		"max_jd_chars":       defaults.MaxJDChars,
		"use_browser":        false,
		"verbose":            false,
		"log_json":           false,
		"debug":              false,
	} {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), env); err != nil {
			return nil, fmt.Errorf("binding %s environment variable: %w", env, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("config error: 'match_threshold' must be in (0, 1]")
	}
	if c.MaxUploadBytes < 0 || c.MaxJDChars < 0 || c.CacheMaxEntries < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("config error: limits must be non-negative")
	}
	if c.EmbeddingProvider != "" && !providers[c.EmbeddingProvider] {
		return fmt.Errorf("config error: unknown 'embedding_provider' %q (valid: gemini, hash, none)", c.EmbeddingProvider)
	}
	if c.EmbeddingProvider == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: 'gemini_api_key' is required for the gemini embedding provider")
	}
	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// Bools cannot distinguish unset from false, so they are never merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" && result.SQLitePath == "" {
		result.DatabaseURL = defaults.DatabaseURL
		result.SQLitePath = defaults.SQLitePath
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.EmbeddingProvider == "" {
		result.EmbeddingProvider = defaults.EmbeddingProvider
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.CacheTTL == 0 {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.CacheMaxEntries == 0 {
		result.CacheMaxEntries = defaults.CacheMaxEntries
	}
	if result.TaxonomyPath == "" {
		result.TaxonomyPath = defaults.TaxonomyPath
	}
	if result.MatchThreshold == 0 {
		result.MatchThreshold = defaults.MatchThreshold
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.MaxJDChars == 0 {
		result.MaxJDChars = defaults.MaxJDChars
	}

	return result
}
