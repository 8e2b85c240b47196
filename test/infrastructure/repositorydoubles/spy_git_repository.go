//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
// It is safe for concurrent use, as the sync command calls it from several goroutines.
type SpyGitRepository struct {
	mu sync.Mutex

	// --- IsRepository ---
	ExistingDirs map[string]bool // dir -> cloned

	// --- Clone ---
	CloneErrs  map[string]error // dir -> error
	ClonedDirs []string

	// --- Fetch ---
	FetchErrs   map[string]error // dir -> error
	FetchedDirs []string

	// --- Grep ---
	GrepResults map[string]repositories.GrepResult // dir -> result
	GrepErrs    map[string]error                   // dir -> error
	GrepCalls   []GrepCall
}

// GrepCall records a single invocation of Grep.
type GrepCall struct {
	Dir  string
	Args []string
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) IsRepository(dir string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ExistingDirs[dir]
}

func (s *SpyGitRepository) Clone(_ context.Context, _ entities.Repository, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.CloneErrs[dir]; err != nil {
		return err
	}
	s.ClonedDirs = append(s.ClonedDirs, dir)
	return nil
}

func (s *SpyGitRepository) Fetch(_ context.Context, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FetchErrs[dir]; err != nil {
		return err
	}
	s.FetchedDirs = append(s.FetchedDirs, dir)
	return nil
}

func (s *SpyGitRepository) Grep(_ context.Context, dir string, args []string) (repositories.GrepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GrepCalls = append(s.GrepCalls, GrepCall{Dir: dir, Args: append([]string(nil), args...)})
	if err := s.GrepErrs[dir]; err != nil {
		return repositories.GrepResult{}, err
	}
	return s.GrepResults[dir], nil
}
