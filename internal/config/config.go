package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults used by getver and getver-server.
type Config struct {
	// Package is the module path resolved when no package is given explicitly.
	Package string `yaml:"package"`
	// ReferencePath is where the upward search for a checkout starts.
	ReferencePath string `yaml:"reference_path"`
	// IncludeHead enables the checkout-derived version suffix.
	IncludeHead bool `yaml:"include_head"`
	// Extractor names the tag extractor backend: "git" or "go-git".
	Extractor string `yaml:"extractor"`
	// ServerAddress is the gRPC address served by getver-server and queried remotely.
	ServerAddress string `yaml:"server_addr"`
	// Timeout bounds remote calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the textual zap level.
	LogLevel string `yaml:"log_level"`
	// LogFile optionally mirrors logs into a rotated JSON file.
	LogFile string `yaml:"log_file"`
}

const (
	// DefaultConfigFilename is the default filename for getver settings.
	DefaultConfigFilename = "getver.yaml"

	// DefaultExtractor is the tag extractor used when none is configured.
	DefaultExtractor = "git"

	// DefaultServerAddress is the listen and dial address used when none is configured.
	DefaultServerAddress = "127.0.0.1:50151"

	// DefaultTimeout is the default duration for remote calls.
	DefaultTimeout = 5 * time.Second

	// DefaultLogLevel keeps the CLIs quiet unless something goes wrong.
	DefaultLogLevel = "warn"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownExtractor is returned for an extractor name no backend answers to.
	errUnknownExtractor = errors.New("unknown extractor")
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Validate only fills defaults on an empty config.
	_ = Validate(cfg) //nolint:errcheck // An empty config is always valid.

	return cfg
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOptional behaves like Load but returns defaults when the file does not exist.
// Any other failure, including invalid contents, is still an error.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes Config to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills unset fields with defaults.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.Extractor == "" {
		settings.Extractor = DefaultExtractor
	}

	if !IsKnownExtractor(settings.Extractor) {
		return fmt.Errorf("%w: %q", errUnknownExtractor, settings.Extractor)
	}

	if settings.ServerAddress == "" {
		settings.ServerAddress = DefaultServerAddress
	}

	if _, _, err := net.SplitHostPort(settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	return nil
}

// IsKnownExtractor reports whether name selects an available extractor backend.
func IsKnownExtractor(name string) bool {
	switch name {
	case "git", "go-git":
		return true
	default:
		return false
	}
}
