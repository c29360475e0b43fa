package scm

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit describes checkouts in process with go-git. It never reports
// ErrUnavailable because it needs no external tooling.
type GoGit struct{}

// NewGoGit creates the in-process extractor.
func NewGoGit() *GoGit {
	return new(GoGit)
}

// Describe mirrors `git describe --tags --always --dirty` for the checkout at root.
func (*GoGit) Describe(ctx context.Context, root string) (string, error) {
	//nolint:exhaustruct // Remaining open options keep their defaults.
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", ErrInvalidRepository, root, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: read HEAD: %w", ErrInvalidRepository, err)
	}

	tagged, err := taggedCommits(repo)
	if err != nil {
		return "", fmt.Errorf("%w: list tags: %w", ErrInvalidRepository, err)
	}

	tag, distance, err := nearestTag(ctx, repo, head.Hash(), tagged)
	if err != nil {
		return "", err
	}

	abbrev := head.Hash().String()[:abbrevLength]

	var described string

	switch {
	case tag == "":
		described = abbrev
	case distance == 0:
		described = tag
	default:
		described = fmt.Sprintf("%s-%d-g%s", tag, distance, abbrev)
	}

	if isDirty(repo) {
		described += dirtySuffix
	}

	return described, nil
}

// taggedCommits maps commit hashes to the tag name pointing at them.
// Annotated tags are peeled; when several tags share a commit the greatest name wins.
func taggedCommits(repo *git.Repository) (map[plumbing.Hash]string, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, err
	}

	tagged := make(map[plumbing.Hash]string)

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()

		annotated, err := repo.TagObject(target)
		switch {
		case err == nil:
			commit, err := annotated.Commit()
			if err != nil {
				// Tags on trees or blobs never describe a commit.
				return nil //nolint:nilerr // Skipping non-commit tags is intended.
			}

			target = commit.Hash
		case !errors.Is(err, plumbing.ErrObjectNotFound):
			return err
		}

		name := ref.Name().Short()
		if current, ok := tagged[target]; !ok || name > current {
			tagged[target] = name
		}

		return nil
	})

	return tagged, err
}

// nearestTag walks history breadth-first from start and returns the first tag
// met together with its distance in commits.
func nearestTag(
	ctx context.Context,
	repo *git.Repository,
	start plumbing.Hash,
	tagged map[plumbing.Hash]string,
) (string, int, error) {
	if len(tagged) == 0 {
		return "", 0, nil
	}

	type step struct {
		hash     plumbing.Hash
		distance int
	}

	queue := []step{{hash: start}}
	seen := map[plumbing.Hash]struct{}{start: {}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return "", 0, fmt.Errorf("walk history: %w", err)
		}

		current := queue[0]
		queue = queue[1:]

		if name, ok := tagged[current.hash]; ok {
			return name, current.distance, nil
		}

		commit, err := object.GetCommit(repo.Storer, current.hash)
		if errors.Is(err, plumbing.ErrObjectNotFound) && current.hash != start {
			// Shallow clones stop history early.
			continue
		}

		if err != nil {
			return "", 0, fmt.Errorf("%w: load commit %s: %w", ErrInvalidRepository, current.hash, err)
		}

		for _, parent := range commit.ParentHashes {
			if _, ok := seen[parent]; ok {
				continue
			}

			seen[parent] = struct{}{}
			queue = append(queue, step{hash: parent, distance: current.distance + 1})
		}
	}

	return "", 0, nil
}

// isDirty reports tracked changes in the worktree. Untracked files do not count,
// matching git describe. Bare repositories and status failures count as clean.
func isDirty(repo *git.Repository) bool {
	worktree, err := repo.Worktree()
	if err != nil {
		return false
	}

	status, err := worktree.Status()
	if err != nil {
		return false
	}

	for _, file := range status {
		if file.Staging == git.Untracked && file.Worktree == git.Untracked {
			continue
		}

		if file.Staging != git.Unmodified || file.Worktree != git.Unmodified {
			return true
		}
	}

	return false
}
