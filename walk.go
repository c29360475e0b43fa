package getver

import (
	"os"
	"path/filepath"
	"runtime"
)

// checkoutMarker names the entry that marks the root of a git working copy.
// It may be a directory or, for worktrees and submodules, a gitfile.
const checkoutMarker = ".git"

// findCheckoutRoot walks from start towards the filesystem root and returns
// the first directory containing a checkout marker.
func findCheckoutRoot(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	// A file reference starts the search in its directory.
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, checkoutMarker)); err == nil {
			return dir, true
		}

		if isFilesystemRoot(dir) {
			return "", false
		}

		dir = filepath.Dir(dir)
	}
}

// isFilesystemRoot reports whether dir is the root of its volume, such as
// "/" or `C:\`. dir must be absolute and clean.
func isFilesystemRoot(dir string) bool {
	volume := filepath.VolumeName(dir)
	rest := dir[len(volume):]

	return rest == "" || rest == string(filepath.Separator)
}

// defaultReferencePath returns the path of this source file as recorded at
// build time, or the running executable when the source is not on disk.
func defaultReferencePath() string {
	if _, file, _, ok := runtime.Caller(0); ok {
		if _, err := os.Stat(file); err == nil {
			return file
		}
	}

	if executable, err := os.Executable(); err == nil {
		return executable
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return string(filepath.Separator)
}
