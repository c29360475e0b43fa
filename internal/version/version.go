package version

import (
	"context"
	"fmt"

	"github.com/oshokin/getver"
	"github.com/oshokin/getver/internal/metadata"
)

// ModulePath is the module path the getver binaries are built from.
const ModulePath = "github.com/oshokin/getver"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "dev"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Resolve returns the version of this module as the resolver sees it: the
// stamped Version when set, otherwise the embedded module version, optionally
// followed by the checkout description.
func Resolve(ctx context.Context, extractor getver.TagExtractor, includeHead bool) string {
	resolver := getver.New(
		getver.WithMetadata(metadata.NewBuildInfoSource(metadata.WithStamp(ModulePath, Version))),
		getver.WithExtractor(extractor),
	)

	return resolver.Resolve(ctx, ModulePath, getver.WithHead(includeHead))
}

// Short returns only the version string.
func Short() string {
	return Resolve(context.Background(), nil, false)
}

// Full returns a human-readable version string with commit and build time.
func Full(ctx context.Context, extractor getver.TagExtractor, includeHead bool) string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s",
		Resolve(ctx, extractor, includeHead), Commit, BuildTime)
}
