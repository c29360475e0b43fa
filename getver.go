package getver

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/getver/internal/logger"
	"github.com/oshokin/getver/internal/metadata"
	"github.com/oshokin/getver/internal/scm"
)

const (
	// PackageNotFound is returned when the build metadata has no record of the package.
	PackageNotFound = "<none!?>"
	// InvalidRepository replaces the repository version when a checkout marker
	// exists but the checkout cannot be described.
	InvalidRepository = "<none?!>"
)

// MetadataSource returns the recorded version of a package.
// A package without a record is reported with metadata.ErrPackageNotFound.
type MetadataSource interface {
	Version(name string) (string, error)
}

// TagExtractor derives a version from the checkout rooted at root.
// It reports scm.ErrUnavailable when it cannot run at all and
// scm.ErrInvalidRepository when root is not a usable checkout.
type TagExtractor interface {
	Describe(ctx context.Context, root string) (string, error)
}

// Resolver combines build metadata with checkout-derived versions.
// A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	// metadata answers the installed version of a package.
	metadata MetadataSource
	// extractor describes the enclosing checkout.
	extractor TagExtractor
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMetadata replaces the build metadata source.
func WithMetadata(source MetadataSource) Option {
	return func(r *Resolver) {
		if source != nil {
			r.metadata = source
		}
	}
}

// WithExtractor replaces the tag extractor.
func WithExtractor(extractor TagExtractor) Option {
	return func(r *Resolver) {
		if extractor != nil {
			r.extractor = extractor
		}
	}
}

// New creates a Resolver reading build information and shelling out to git by default.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		metadata:  metadata.NewBuildInfoSource(),
		extractor: scm.NewGitCLI(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// resolveOptions holds per-call parameters.
type resolveOptions struct {
	referencePath string
	includeHead   bool
}

// ResolveOption configures a single Resolve call.
type ResolveOption func(*resolveOptions)

// WithReferencePath sets where the search for a checkout starts.
// The default is the location of this package's source, then the executable.
func WithReferencePath(path string) ResolveOption {
	return func(o *resolveOptions) {
		o.referencePath = path
	}
}

// WithHead requests the checkout-derived version suffix.
func WithHead(include bool) ResolveOption {
	return func(o *resolveOptions) {
		o.includeHead = include
	}
}

// Resolve returns the recorded version of packageName, followed by the
// checkout version in parentheses when WithHead is set and a checkout encloses
// the reference path.
func (r *Resolver) Resolve(ctx context.Context, packageName string, opts ...ResolveOption) string {
	var options resolveOptions
	for _, opt := range opts {
		opt(&options)
	}

	ctx = logger.WithKV(logger.WithName(ctx, "getver"), "package", packageName)

	installed := r.installedVersion(ctx, packageName)
	if !options.includeHead {
		return installed
	}

	repository := r.repositoryVersion(ctx, options.referencePath)
	if repository == "" {
		return installed
	}

	return fmt.Sprintf("%s (%s)", installed, repository)
}

// installedVersion queries the metadata source and folds failures into PackageNotFound.
func (r *Resolver) installedVersion(ctx context.Context, packageName string) string {
	version, err := r.metadata.Version(packageName)
	if err != nil {
		if !errors.Is(err, metadata.ErrPackageNotFound) {
			logger.WarnKV(ctx, "Metadata lookup failed", "error", err)
		}

		return PackageNotFound
	}

	return version
}

// repositoryVersion describes the nearest enclosing checkout. It returns an
// empty string when there is no checkout or no extractor can run.
func (r *Resolver) repositoryVersion(ctx context.Context, referencePath string) string {
	start := referencePath
	if start == "" {
		start = defaultReferencePath()
	}

	root, found := findCheckoutRoot(start)
	if !found {
		logger.DebugKV(ctx, "No checkout encloses reference path", "reference_path", start)
		return ""
	}

	version, err := r.extractor.Describe(ctx, root)
	switch {
	case err == nil:
		return version
	case errors.Is(err, scm.ErrUnavailable):
		logger.DebugKV(ctx, "Tag extractor unavailable", "root", root, "error", err)
		return ""
	default:
		logger.DebugKV(ctx, "Checkout cannot be described", "root", root, "error", err)
		return InvalidRepository
	}
}

// defaultResolver backs GetVersion.
//
//nolint:gochecknoglobals // Resolver is immutable, sharing it is safe.
var defaultResolver = New()

// GetVersion resolves packageName with the default Resolver.
func GetVersion(ctx context.Context, packageName string, opts ...ResolveOption) string {
	return defaultResolver.Resolve(ctx, packageName, opts...)
}
