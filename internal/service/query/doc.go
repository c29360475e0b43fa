// Package query implements the getver command: resolve a package version
// locally or ask a running getver-server, and print it.
package query
