// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the VersionService with call timeouts.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
