package metadata

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeBuildInfo returns a reader serving a fixed dependency graph.
func fakeBuildInfo() func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Path: "example.com/app", Version: "v1.2.3"},
			Deps: []*debug.Module{
				{Path: "example.com/lib", Version: "v0.4.0"},
				{
					Path:    "example.com/forked",
					Version: "v1.0.0",
					Replace: &debug.Module{Path: "example.com/fork", Version: "v1.0.1-fork"},
				},
				{
					Path:    "example.com/local",
					Version: "v2.0.0",
					Replace: &debug.Module{Path: "../local"},
				},
			},
		}, true
	}
}

// TestBuildInfoSource_Version covers main module, dependencies, replacements and misses.
func TestBuildInfoSource_Version(t *testing.T) {
	t.Parallel()

	source := NewBuildInfoSource(WithReader(fakeBuildInfo()))

	cases := map[string]string{
		"example.com/app":    "v1.2.3",
		"example.com/lib":    "v0.4.0",
		"example.com/forked": "v1.0.1-fork",
		"example.com/local":  "v2.0.0",
	}
	for path, want := range cases {
		got, err := source.Version(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	_, err := source.Version("example.com/missing")
	require.ErrorIs(t, err, ErrPackageNotFound)
}

// TestBuildInfoSource_Stamps checks stamped versions override the embedded record.
func TestBuildInfoSource_Stamps(t *testing.T) {
	t.Parallel()

	source := NewBuildInfoSource(
		WithReader(fakeBuildInfo()),
		WithStamp("example.com/app", "v1.3.0"),
		WithStamp("example.com/lib", "dev"),
		WithStamp("example.com/stamped-only", "v9.9.9"),
	)

	got, err := source.Version("example.com/app")
	require.NoError(t, err)
	require.Equal(t, "v1.3.0", got)

	// Placeholder stamps leave the embedded version in charge.
	got, err = source.Version("example.com/lib")
	require.NoError(t, err)
	require.Equal(t, "v0.4.0", got)

	got, err = source.Version("example.com/stamped-only")
	require.NoError(t, err)
	require.Equal(t, "v9.9.9", got)
}

// TestBuildInfoSource_NoBuildInfo treats a binary without build info as knowing no packages.
func TestBuildInfoSource_NoBuildInfo(t *testing.T) {
	t.Parallel()

	source := NewBuildInfoSource(WithReader(func() (*debug.BuildInfo, bool) { return nil, false }))

	_, err := source.Version("example.com/app")
	require.ErrorIs(t, err, ErrPackageNotFound)
}
