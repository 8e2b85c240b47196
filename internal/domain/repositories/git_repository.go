package repositories

import (
	"context"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// GrepResult is the outcome of a `git grep` run in one checkout.
type GrepResult struct {
	Matched bool
	Output  string
}

// GitRepository abstracts the git operations the workspace commands need.
type GitRepository interface {
	// IsRepository returns true if dir holds a git checkout.
	IsRepository(dir string) bool

	// Clone checks repo out into dir on its default branch.
	Clone(ctx context.Context, repo entities.Repository, dir string) error

	// Fetch updates the remote refs of the checkout in dir.
	Fetch(ctx context.Context, dir string) error

	// Grep runs `git grep` with args inside dir. A run without matches is not an error.
	Grep(ctx context.Context, dir string, args []string) (GrepResult, error)
}
