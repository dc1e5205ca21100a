// Package config loads the optional YAML configuration file. Every
// value can also be supplied on the command line; flags win over file
// values, and missing values fall back to built-in defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
)

// DefaultFileName is looked up in the working directory when --config
// is not given.
const DefaultFileName = "wallpaper-rotator.yaml"

const defaultHelperTimeout = 30 * time.Second

// Config is the on-disk configuration. Order is left empty when the
// file does not set one, so the caller can fall back to the order
// persisted in the rotation state.
type Config struct {
	Folder    string        `yaml:"folder,omitempty"`
	Order     string        `yaml:"order,omitempty"`
	StateFile string        `yaml:"state_file,omitempty"`
	Helper    HelperConfig  `yaml:"helper,omitempty"`
	History   HistoryConfig `yaml:"history,omitempty"`
	Metrics   MetricsConfig `yaml:"metrics,omitempty"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
}

// HelperConfig tunes the multi-desktop helper invocation.
type HelperConfig struct {
	// Timeout is a Go duration string, for example "30s".
	Timeout string `yaml:"timeout,omitempty"`
}

// TimeoutDuration parses Timeout, falling back to the default when the
// field is empty or unusable.
func (h HelperConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(h.Timeout)
	if err != nil || d <= 0 {
		return defaultHelperTimeout
	}
	return d
}

// HistoryConfig controls the SQLite rotation journal. When Path is
// empty the journal lives next to the state file.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// MetricsConfig controls the Prometheus textfile export. An empty path
// disables the export.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path,omitempty"`
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Load reads the configuration file at configPath. A .env file in the
// working directory is loaded first so ${VAR} references in the YAML
// can resolve against it.
func Load(configPath string) (*Config, error) {
	loadDotenv()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, apperrors.ConfigInvalid(configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, apperrors.ConfigInvalid(configPath, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, apperrors.ConfigInvalid(configPath, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) validate() error {
	if c.Helper.Timeout != "" {
		d, err := time.ParseDuration(c.Helper.Timeout)
		if err != nil {
			return fmt.Errorf("helper.timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("helper.timeout must be positive, got %s", c.Helper.Timeout)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Helper.Timeout == "" {
		c.Helper.Timeout = defaultHelperTimeout.String()
	}
}

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	starter := Config{
		Folder: "${WallpaperDir}",
		Order:  "sequential",
		Helper: HelperConfig{Timeout: "30s"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}

	data, err := yaml.Marshal(&starter)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// loadDotenv pulls a .env file into the process environment so ${VAR}
// expansion in the YAML sees it. Existing variables are not overridden.
func loadDotenv() {
	for _, name := range []string{".env", ".env.local"} {
		if err := godotenv.Load(name); err == nil {
			slog.Debug("loaded environment file", slog.String("path", name))
			return
		}
	}
}
