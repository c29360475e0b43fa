package scm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the extractor cannot run in this environment.
	ErrUnavailable = errors.New("tag extractor unavailable")
	// ErrInvalidRepository means the root looked like a checkout but could not be described.
	ErrInvalidRepository = errors.New("not a valid repository")
	// errUnknownKind is returned by New for an unsupported extractor name.
	errUnknownKind = errors.New("unknown extractor kind")
)

const (
	// KindGit selects the git command line extractor.
	KindGit = "git"
	// KindGoGit selects the in-process go-git extractor.
	KindGoGit = "go-git"

	// abbrevLength is the number of hex digits in abbreviated hashes.
	abbrevLength = 7
	// dirtySuffix marks a worktree with uncommitted changes.
	dirtySuffix = "-dirty"
)

// Extractor describes the checkout rooted at a directory.
type Extractor interface {
	Describe(ctx context.Context, root string) (string, error)
}

// New returns the extractor registered under kind. An empty kind selects git.
//
//nolint:ireturn // Callers choose the backend at runtime.
func New(kind string) (Extractor, error) {
	switch kind {
	case "", KindGit:
		return NewGitCLI(), nil
	case KindGoGit:
		return NewGoGit(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownKind, kind)
	}
}
