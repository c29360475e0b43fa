package metadata

import (
	"errors"
	"runtime/debug"
)

// ErrPackageNotFound is returned when no record exists for the requested module.
var ErrPackageNotFound = errors.New("package not found")

// develVersion is what the toolchain records for a main module built from a working tree.
const develVersion = "(devel)"

// BuildInfoSource reads versions from build information and stamped overrides.
type BuildInfoSource struct {
	// read returns the build information of the running binary.
	read func() (*debug.BuildInfo, bool)
	// stamps maps module paths to versions injected at build time.
	stamps map[string]string
}

// Option configures a BuildInfoSource.
type Option func(*BuildInfoSource)

// WithStamp registers a build-time version for path. Empty and placeholder
// values such as "dev" are ignored so the embedded record still answers.
func WithStamp(path, version string) Option {
	return func(s *BuildInfoSource) {
		if path == "" || isPlaceholder(version) {
			return
		}

		s.stamps[path] = version
	}
}

// WithReader replaces debug.ReadBuildInfo.
func WithReader(read func() (*debug.BuildInfo, bool)) Option {
	return func(s *BuildInfoSource) {
		if read != nil {
			s.read = read
		}
	}
}

// NewBuildInfoSource creates a source backed by debug.ReadBuildInfo.
func NewBuildInfoSource(opts ...Option) *BuildInfoSource {
	source := &BuildInfoSource{
		read:   debug.ReadBuildInfo,
		stamps: make(map[string]string),
	}

	for _, opt := range opts {
		opt(source)
	}

	return source
}

// Version returns the recorded version of the module at path.
func (s *BuildInfoSource) Version(path string) (string, error) {
	if v, ok := s.stamps[path]; ok {
		return v, nil
	}

	info, ok := s.read()
	if !ok || info == nil {
		return "", ErrPackageNotFound
	}

	if info.Main.Path == path {
		return info.Main.Version, nil
	}

	for _, dep := range info.Deps {
		if dep == nil || dep.Path != path {
			continue
		}

		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version, nil
		}

		return dep.Version, nil
	}

	return "", ErrPackageNotFound
}

// isPlaceholder reports whether v is a default left by a build without stamping.
func isPlaceholder(v string) bool {
	switch v {
	case "", "dev", "devel", develVersion, "unknown", "none":
		return true
	default:
		return false
	}
}
