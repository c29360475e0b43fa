package query

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/getver"
	"github.com/oshokin/getver/internal/config"
	"github.com/oshokin/getver/internal/logger"
	"github.com/oshokin/getver/internal/service/common"
)

// Options controls a single version query.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Package is the module path to resolve; empty uses the configured default.
	Package string
	// ReferencePath overrides where the checkout search starts.
	ReferencePath string
	// IncludeHead overrides the configured head augmentation when non-nil.
	IncludeHead *bool
	// Extractor overrides the configured tag extractor backend.
	Extractor string
	// Remote queries the getver-server at this address instead of resolving locally.
	Remote string
	// LogLevel overrides the configured log level.
	LogLevel string
}

// Run resolves the requested version and writes it to out followed by a newline.
func Run(ctx context.Context, opts *Options, out io.Writer) error {
	ctx = logger.WithName(ctx, "getver")

	cfg, err := loadSettings(opts)
	if err != nil {
		return err
	}

	packageName := opts.Package
	if packageName == "" {
		packageName = common.DefaultPackage(cfg)
	}

	var resolved string

	if opts.Remote != "" {
		resolved, err = resolveRemote(ctx, cfg, opts.Remote, packageName)
	} else {
		resolved, err = resolveLocal(ctx, cfg, packageName)
	}

	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, resolved); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	return nil
}

// loadSettings reads the configuration file and applies overrides from opts.
func loadSettings(opts *Options) (*config.Config, error) {
	cfg, err := common.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.ReferencePath != "" {
		cfg.ReferencePath = opts.ReferencePath
	}

	if opts.IncludeHead != nil {
		cfg.IncludeHead = *opts.IncludeHead
	}

	if opts.Extractor != "" {
		cfg.Extractor = opts.Extractor
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	if err := common.ConfigureLogger(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveLocal runs the resolver in process.
func resolveLocal(ctx context.Context, cfg *config.Config, packageName string) (string, error) {
	resolver, err := common.NewResolver(cfg)
	if err != nil {
		return "", err
	}

	logger.DebugKV(ctx, "Resolving locally",
		"package", packageName,
		"include_head", cfg.IncludeHead,
		"extractor", cfg.Extractor,
	)

	return resolver.Resolve(ctx, packageName,
		getver.WithReferencePath(cfg.ReferencePath),
		getver.WithHead(cfg.IncludeHead),
	), nil
}

// resolveRemote asks a getver-server to resolve the package.
func resolveRemote(ctx context.Context, cfg *config.Config, address, packageName string) (string, error) {
	client, err := common.Dial(ctx, address, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return "", fmt.Errorf("dial server: %w", err)
	}

	// Ensure connection cleanup on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Resolving remotely", "server_address", address, "package", packageName)

	return client.GetVersion(ctx, packageName, cfg.ReferencePath, cfg.IncludeHead)
}
