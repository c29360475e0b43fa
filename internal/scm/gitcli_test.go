package scm

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireGit skips the test when no git executable is installed.
func requireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not found")
	}
}

// TestGitCLI_Unavailable maps a missing executable to ErrUnavailable.
func TestGitCLI_Unavailable(t *testing.T) {
	t.Parallel()

	extractor := NewGitCLI(WithLookPath(func(string) (string, error) {
		return "", exec.ErrNotFound
	}))

	_, err := extractor.Describe(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, exec.ErrNotFound)
}

// TestGitCLI_MissingBinary resolves a binary name that cannot exist.
func TestGitCLI_MissingBinary(t *testing.T) {
	t.Parallel()

	extractor := NewGitCLI(WithBinary("getver-no-such-git-binary"))

	_, err := extractor.Describe(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrUnavailable)
}

// TestGitCLI_InvalidRepository reports an empty .git directory as an invalid repository.
func TestGitCLI_InvalidRepository(t *testing.T) {
	t.Parallel()
	requireGit(t)

	_, err := NewGitCLI().Describe(context.Background(), bogusCheckout(t))
	require.ErrorIs(t, err, ErrInvalidRepository)
}

// TestGitCLI_Describe runs real git against a repository built with go-git.
func TestGitCLI_Describe(t *testing.T) {
	t.Parallel()
	requireGit(t)

	c := newCheckout(t)
	tagged := c.commit(t, "README.md", "hello")
	c.tag(t, "v1.2.3", tagged, "")
	c.commit(t, "README.md", "hello again")
	c.commit(t, "CHANGELOG.md", "notes")

	got, err := NewGitCLI().Describe(context.Background(), c.dir)
	require.NoError(t, err)
	require.Regexp(t, `^v1\.2\.3-2-g[0-9a-f]{7,}`, got)
}

// TestNew selects backends by name.
func TestNew(t *testing.T) {
	t.Parallel()

	extractor, err := New("")
	require.NoError(t, err)
	require.IsType(t, new(GitCLI), extractor)

	extractor, err = New(KindGoGit)
	require.NoError(t, err)
	require.IsType(t, new(GoGit), extractor)

	_, err = New("svn")
	require.ErrorIs(t, err, errUnknownKind)
}
