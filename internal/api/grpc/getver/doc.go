// Package getver adapts the version resolver to the VersionService gRPC API.
//
// The transport validates request fields and delegates to the resolver.
package getver
