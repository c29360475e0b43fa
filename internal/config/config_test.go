package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty config gets every default.
	settings := new(Config)

	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultExtractor, settings.Extractor)
	require.Equal(t, DefaultServerAddress, settings.ServerAddress)
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultLogLevel, settings.LogLevel)

	// Unknown extractor.
	settings = &Config{Extractor: "svn"}
	require.ErrorIs(t, Validate(settings), errUnknownExtractor)

	// Bad address.
	settings = &Config{ServerAddress: "no-port"}
	require.Error(t, Validate(settings))

	// Nil config.
	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "getver.yaml")

	settings := &Config{
		Package:       "github.com/oshokin/getver",
		ReferencePath: dir,
		IncludeHead:   true,
		Extractor:     "go-git",
		ServerAddress: "127.0.0.1:50151",
		Timeout:       2 * time.Second,
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadOptional returns defaults for a missing file but reports broken files.
func TestLoadOptional(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadOptional(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("extractor: [unterminated"), DefaultFilePermissions))

	_, err = LoadOptional(broken)
	require.Error(t, err)
}
