// Package version exposes build metadata for the getver binaries.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. Resolve reports the module version through the getver resolver,
// so an unstamped build falls back to the embedded module version and,
// on request, to the checkout it was built from.
package version
