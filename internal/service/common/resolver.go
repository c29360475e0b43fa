//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"

	"github.com/oshokin/getver"
	"github.com/oshokin/getver/internal/config"
	"github.com/oshokin/getver/internal/logger"
	"github.com/oshokin/getver/internal/metadata"
	"github.com/oshokin/getver/internal/scm"
	"github.com/oshokin/getver/internal/version"
)

// LoadConfig reads settings for a binary. The default path may be absent, in
// which case defaults apply; an explicitly chosen file must exist.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" || path == config.DefaultConfigFilename {
		return config.LoadOptional(config.DefaultConfigFilename)
	}

	return config.Load(path)
}

// ConfigureLogger applies the logging settings of cfg to the global logger.
func ConfigureLogger(cfg *config.Config) error {
	if !logger.Configure(cfg.LogLevel, logger.FileOptions{Path: cfg.LogFile}) {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}

// NewResolver builds a resolver using the configured extractor. The version
// stamped into this binary is registered as the record for its own module.
func NewResolver(cfg *config.Config) (*getver.Resolver, error) {
	extractor, err := scm.New(cfg.Extractor)
	if err != nil {
		return nil, fmt.Errorf("select extractor: %w", err)
	}

	source := metadata.NewBuildInfoSource(metadata.WithStamp(version.ModulePath, version.Version))

	return getver.New(getver.WithMetadata(source), getver.WithExtractor(extractor)), nil
}

// DefaultPackage returns the configured package, or this module's path.
func DefaultPackage(cfg *config.Config) string {
	if cfg.Package != "" {
		return cfg.Package
	}

	return version.ModulePath
}
