// Package scm derives versions from source-control history.
//
// Extractors describe a checkout the way `git describe --tags --always --dirty`
// does: the nearest tag, the number of commits on top of it, and the
// abbreviated commit hash. GitCLI shells out to git; GoGit reads the object
// store in process through go-git.
package scm
