package commands

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

const defaultJobs = 4

// Sync is the interface for the sync command.
type Sync interface {
	Execute(ctx context.Context, opts SyncOptions) (*SyncReport, error)
}

// SyncOptions holds runtime options for the sync command.
type SyncOptions struct {
	Manifest ManifestOptions
	Root     string
	Groups   []string
	Jobs     int
	DryRun   bool
}

// SyncReport lists what happened to each selected repository, in manifest order.
type SyncReport struct {
	Cloned  []string
	Fetched []string
	Failed  []SyncFailure
}

// SyncFailure records a repository that could not be synchronized.
type SyncFailure struct {
	Src string
	Err error
}

type syncAction int

const (
	syncSkipped syncAction = iota
	syncCloned
	syncFetched
)

type syncResult struct {
	action syncAction
	err    error
}

// SyncCommand clones missing repositories and fetches existing ones.
type SyncCommand struct {
	loader *ManifestLoader
	git    repositories.GitRepository
}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand(loader *ManifestLoader, git repositories.GitRepository) *SyncCommand {
	return &SyncCommand{
		loader: loader,
		git:    git,
	}
}

// Execute synchronizes every selected repository with at most opts.Jobs
// repositories in flight. A failing repository does not stop the others.
func (it *SyncCommand) Execute(ctx context.Context, opts SyncOptions) (*SyncReport, error) {
	manifest, err := it.loader.Load(ctx, opts.Manifest)
	if err != nil {
		return nil, err
	}
	repos, err := selectRepositories(manifest, opts.Groups)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = defaultJobs
	}

	results := make([]syncResult, len(repos))
	var group errgroup.Group
	group.SetLimit(jobs)
	for i, repo := range repos {
		group.Go(func() error {
			results[i] = it.syncRepository(ctx, repo, filepath.Join(opts.Root, repo.Src), opts.DryRun)
			return nil
		})
	}
	_ = group.Wait()

	report := &SyncReport{}
	for i, result := range results {
		src := repos[i].Src
		switch {
		case result.err != nil:
			report.Failed = append(report.Failed, SyncFailure{Src: src, Err: result.err})
		case result.action == syncCloned:
			report.Cloned = append(report.Cloned, src)
		case result.action == syncFetched:
			report.Fetched = append(report.Fetched, src)
		}
	}

	logger.Infof(
		"Sync complete: %d cloned, %d fetched, %d errors",
		len(report.Cloned), len(report.Fetched), len(report.Failed),
	)
	return report, nil
}

func (it *SyncCommand) syncRepository(
	ctx context.Context,
	repo entities.Repository,
	dir string,
	dryRun bool,
) syncResult {
	if err := ctx.Err(); err != nil {
		return syncResult{err: err}
	}

	if it.git.IsRepository(dir) {
		if dryRun {
			logger.Infof("[dry-run] Would fetch %s", repo.Src)
			return syncResult{action: syncSkipped}
		}
		logger.Infof("Fetching %s ...", repo.Src)
		if err := it.git.Fetch(ctx, dir); err != nil {
			logger.Errorf("Failed to fetch %s: %v", repo.Src, err)
			return syncResult{err: err}
		}
		return syncResult{action: syncFetched}
	}

	if dryRun {
		logger.Infof("[dry-run] Would clone %s (%s) into %s", repo.RemoteURL, repo.DefaultBranch, repo.Src)
		return syncResult{action: syncSkipped}
	}
	logger.Infof("Cloning %s into %s ...", repo.RemoteURL, repo.Src)
	if err := it.git.Clone(ctx, repo, dir); err != nil {
		logger.Errorf("Failed to clone %s: %v", repo.Src, err)
		return syncResult{err: err}
	}
	return syncResult{action: syncCloned}
}
