package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

const (
	originRemote  = "origin"
	grepNoMatches = 1
)

// GitRepository clones and fetches with go-git and shells out to the git
// binary for `git grep`, whose options are passed through untouched.
type GitRepository struct {
	gitBinary string
}

var _ repositories.GitRepository = (*GitRepository)(nil)

// NewGitRepository creates a GitRepository using the git binary found in PATH.
func NewGitRepository() repositories.GitRepository {
	return &GitRepository{gitBinary: "git"}
}

// IsRepository returns true if dir can be opened as a git repository.
func (r *GitRepository) IsRepository(dir string) bool {
	_, err := gogit.PlainOpen(dir)
	return err == nil
}

// Clone clones repo into dir and checks out its default branch.
func (r *GitRepository) Clone(ctx context.Context, repo entities.Repository, dir string) error {
	logger.Debugf("Cloning %s (%s) into %s", repo.RemoteURL, repo.DefaultBranch, dir)
	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:           repo.RemoteURL,
		RemoteName:    originRemote,
		ReferenceName: plumbing.NewBranchReferenceName(repo.DefaultBranch),
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", repo.RemoteURL, err)
	}
	return nil
}

// Fetch updates the origin refs of the checkout in dir.
func (r *GitRepository) Fetch(ctx context.Context, dir string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", dir, err)
	}

	err = repo.FetchContext(ctx, &gogit.FetchOptions{RemoteName: originRemote})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch %s: %w", dir, err)
	}
	return nil
}

// Grep runs `git grep args...` inside dir.
func (r *GitRepository) Grep(ctx context.Context, dir string, args []string) (repositories.GrepResult, error) {
	cmd := exec.CommandContext(ctx, r.gitBinary, append([]string{"grep"}, args...)...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == grepNoMatches {
			return repositories.GrepResult{Output: string(output)}, nil
		}
		stderr := ""
		if exitErr != nil {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return repositories.GrepResult{}, fmt.Errorf("git grep in %s: %w %s", dir, err, stderr)
	}

	return repositories.GrepResult{Matched: true, Output: string(output)}, nil
}
