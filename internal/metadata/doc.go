// Package metadata answers which version of a module is built into the
// running binary.
//
// The record is the module build information embedded by the Go toolchain,
// overlaid with versions stamped through -ldflags by release tooling.
package metadata
