package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIKey is the public OMDb key the web client shipped with
const DefaultAPIKey = "b9bd48a6"

// Config holds all application configuration
type Config struct {
	OMDb    OMDbConfig    `mapstructure:"omdb"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Browser BrowserConfig `mapstructure:"browser"`
}

// OMDbConfig holds movie database client configuration
type OMDbConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// SearchConfig holds search-as-you-type behaviour
type SearchConfig struct {
	Debounce       time.Duration `mapstructure:"debounce"`         // Quiet period before a query fires
	MinQueryLength int           `mapstructure:"min_query_length"` // Shorter (trimmed) queries never hit the network
	RankResults    bool          `mapstructure:"rank_results"`     // Re-order results by title relevance
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // Empty = memory-only, nothing survives a restart
}

// BrowserConfig holds the command used to open IMDb pages and posters
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // Empty = system default (open/xdg-open/start)
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			APIKey:    DefaultAPIKey,
			BaseURL:   "https://www.omdbapi.com/",
			Timeout:   10 * time.Second,
			UserAgent: "Reel/1.0",
		},
		Search: SearchConfig{
			Debounce:       500 * time.Millisecond,
			MinQueryLength: 2,
			RankResults:    false,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "reel.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "reel.log"),
			Level: "INFO",
		},
		Browser: BrowserConfig{
			Command: "",
			Args:    []string{},
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	v := newViper(DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper builds a viper instance seeded with defaults so every key
// can be overridden from the environment (REEL_OMDB_API_KEY, ...)
func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	for key, value := range settings(defaults) {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// settings flattens cfg into viper keys (snake_case)
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"omdb.api_key":            cfg.OMDb.APIKey,
		"omdb.base_url":           cfg.OMDb.BaseURL,
		"omdb.timeout":            cfg.OMDb.Timeout,
		"omdb.user_agent":         cfg.OMDb.UserAgent,
		"search.debounce":         cfg.Search.Debounce,
		"search.min_query_length": cfg.Search.MinQueryLength,
		"search.rank_results":     cfg.Search.RankResults,
		"storage.path":            cfg.Storage.Path,
		"logging.file":            cfg.Logging.File,
		"logging.level":           cfg.Logging.Level,
		"browser.command":         cfg.Browser.Command,
		"browser.args":            cfg.Browser.Args,
	}
}

// Validate checks values that would otherwise fail later in confusing ways
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OMDb.APIKey) == "" {
		return errors.New("omdb.api_key is required")
	}
	if strings.TrimSpace(c.OMDb.BaseURL) == "" {
		return errors.New("omdb.base_url is required")
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative (got %s)", c.Search.Debounce)
	}
	if c.Search.MinQueryLength < 0 {
		return fmt.Errorf("search.min_query_length must not be negative (got %d)", c.Search.MinQueryLength)
	}
	return nil
}

// SaveConfig writes cfg to path, or to config.yaml in the default
// config directory when path is empty. Returns the file written.
func SaveConfig(cfg *Config, path string) (string, error) {
	if path == "" {
		path = filepath.Join(DefaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for key, value := range settings(cfg) {
		if d, ok := value.(time.Duration); ok {
			value = d.String()
		}
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// expandHome expands a leading ~ in path
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
