// Package getver reports which version of a module a program is running.
//
// A Resolver asks the build metadata for the recorded version of a module
// and, on request, appends the version described by the enclosing git
// checkout:
//
//	getver.GetVersion(ctx, "github.com/oshokin/getver", getver.WithHead(true))
//	// "v1.4.0 (v1.4.0-3-g1a2b3c4)"
//
// Resolution never fails. Missing metadata resolves to PackageNotFound and a
// checkout that cannot be described resolves to InvalidRepository.
package getver
