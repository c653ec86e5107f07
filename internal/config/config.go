package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/mediacat/internal/filter"
	"github.com/runnerr0/mediacat/internal/media"
)

// Default config file path.
const DefaultConfigPath = "~/.config/mediacat/config.yaml"

// Config holds all mediacat configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`

	// Extensions adds to or overrides DefaultExtensions, extension -> type.
	Extensions map[string]string `yaml:"extensions"`
}

type CatalogConfig struct {
	PrivacyThreshold int    `yaml:"privacy_threshold"`
	DefaultSort      string `yaml:"default_sort"`
	ThenBy           string `yaml:"then_by"`
}

type SearchConfig struct {
	MatchStrategy       string `yaml:"match_strategy"`
	ExpressionCacheSize int    `yaml:"expression_cache_size"`
}

type StorageConfig struct {
	Path              string `yaml:"path"`
	SQLiteFile        string `yaml:"sqlite_file"`
	Driver            string `yaml:"driver"`
	SQLiteJournalMode string `yaml:"sqlite_journal_mode"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML or
// fails Validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

var (
	validDrivers      = []string{"sqlite3", "sqlite"}
	validJournalModes = []string{"", "delete", "truncate", "persist", "memory", "wal", "off"}
	validLevels       = []string{"debug", "info", "warn", "error"}
	validFormats      = []string{"text", "json"}
)

// Validate checks every enumerated setting. All problems are reported
// together.
func (c *Config) Validate() error {
	var errs []error

	if c.Catalog.PrivacyThreshold < 0 {
		errs = append(errs, fmt.Errorf("catalog.privacy_threshold must not be negative, got %d", c.Catalog.PrivacyThreshold))
	}
	if _, err := filter.ParseSortKey(c.Catalog.DefaultSort); err != nil {
		errs = append(errs, fmt.Errorf("catalog.default_sort: %w", err))
	}
	if _, err := filter.ParseSortKey(c.Catalog.ThenBy); err != nil {
		errs = append(errs, fmt.Errorf("catalog.then_by: %w", err))
	}
	if _, err := filter.ParseMatchStrategy(c.Search.MatchStrategy); err != nil {
		errs = append(errs, fmt.Errorf("search.match_strategy: %w", err))
	}
	if c.Search.ExpressionCacheSize < 0 {
		errs = append(errs, fmt.Errorf("search.expression_cache_size must not be negative, got %d", c.Search.ExpressionCacheSize))
	}
	if err := oneOf("storage.driver", c.Storage.Driver, validDrivers); err != nil {
		errs = append(errs, err)
	}
	if err := oneOf("storage.sqlite_journal_mode", strings.ToLower(c.Storage.SQLiteJournalMode), validJournalModes); err != nil {
		errs = append(errs, err)
	}
	if err := oneOf("logging.level", strings.ToLower(c.Logging.Level), validLevels); err != nil {
		errs = append(errs, err)
	}
	if err := oneOf("logging.format", strings.ToLower(c.Logging.Format), validFormats); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ExtensionMap(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func oneOf(name, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: unknown value %q", name, value)
}

// DBPath returns the SQLite file the store lives in, with ~ expanded.
func (c *Config) DBPath() (string, error) {
	dir, err := ExpandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// ExtensionMap returns DefaultExtensions with the configured overrides
// applied.
func (c *Config) ExtensionMap() (map[string]media.FileType, error) {
	exts := DefaultExtensions()
	for ext, name := range c.Extensions {
		ft, err := media.ParseFileType(name)
		if err != nil {
			return nil, fmt.Errorf("extensions.%s: %w", ext, err)
		}
		exts[NormalizeExtension(ext)] = ft
	}
	return exts, nil
}
