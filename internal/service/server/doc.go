// Package server runs the getver-server process: it loads settings, builds
// a resolver and serves the VersionService over gRPC until the context ends.
package server
