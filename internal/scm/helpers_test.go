package scm

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// checkout is a throwaway repository created with go-git.
type checkout struct {
	dir  string
	repo *git.Repository
}

// newCheckout initializes an empty non-bare repository in a temporary directory.
func newCheckout(t *testing.T) *checkout {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &checkout{dir: dir, repo: repo}
}

// signature returns a fixed author for test commits.
func signature() *object.Signature {
	return &object.Signature{
		Name:  "getver",
		Email: "getver@example.com",
		When:  time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC),
	}
}

// commit writes contents to name, stages it and commits.
func (c *checkout) commit(t *testing.T, name, contents string) plumbing.Hash {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(c.dir, name), []byte(contents), 0o600))

	worktree, err := c.repo.Worktree()
	require.NoError(t, err)

	_, err = worktree.Add(name)
	require.NoError(t, err)

	//nolint:exhaustruct // Only the author matters for tests.
	hash, err := worktree.Commit("update "+name, &git.CommitOptions{Author: signature()})
	require.NoError(t, err)

	return hash
}

// tag creates a lightweight tag, or an annotated one when message is set.
func (c *checkout) tag(t *testing.T, name string, hash plumbing.Hash, message string) {
	t.Helper()

	var opts *git.CreateTagOptions
	if message != "" {
		//nolint:exhaustruct // Signing is not exercised.
		opts = &git.CreateTagOptions{Tagger: signature(), Message: message}
	}

	_, err := c.repo.CreateTag(name, hash, opts)
	require.NoError(t, err)
}

// bogusCheckout returns a directory whose .git marker is an empty directory.
func bogusCheckout(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o750))

	return dir
}
