package scm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitCLI runs `git describe` against a checkout.
type GitCLI struct {
	// binary is the executable name looked up on PATH.
	binary string
	// lookPath resolves binary to a path.
	lookPath func(file string) (string, error)
}

// GitCLIOption configures a GitCLI.
type GitCLIOption func(*GitCLI)

// WithBinary overrides the git executable name or path.
func WithBinary(binary string) GitCLIOption {
	return func(g *GitCLI) {
		if binary != "" {
			g.binary = binary
		}
	}
}

// WithLookPath replaces exec.LookPath.
func WithLookPath(lookPath func(file string) (string, error)) GitCLIOption {
	return func(g *GitCLI) {
		if lookPath != nil {
			g.lookPath = lookPath
		}
	}
}

// NewGitCLI creates an extractor that shells out to git.
func NewGitCLI(opts ...GitCLIOption) *GitCLI {
	g := &GitCLI{
		binary:   "git",
		lookPath: exec.LookPath,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Describe returns `git describe --tags --always --dirty` for the checkout at root.
// The git directory is pinned to root/.git so an enclosing repository is never used.
func (g *GitCLI) Describe(ctx context.Context, root string) (string, error) {
	path, err := g.lookPath(g.binary)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	//nolint:gosec // Arguments are fixed apart from the checkout root.
	cmd := exec.CommandContext(ctx, path,
		"--git-dir", filepath.Join(root, ".git"),
		"--work-tree", root,
		"describe", "--tags", "--always", "--dirty",
	)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("git describe: %w", ctxErr)
		}

		return "", fmt.Errorf("%w: git describe: %s", ErrInvalidRepository, firstLine(stderr.String(), err))
	}

	described := strings.TrimSpace(stdout.String())
	if described == "" {
		return "", fmt.Errorf("%w: git describe printed nothing", ErrInvalidRepository)
	}

	return described, nil
}

// firstLine returns the first non-empty line of git's stderr, or the exit error text.
func firstLine(stderr string, err error) string {
	for line := range strings.Lines(stderr) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}

	return err.Error()
}
