package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

// Path display modes of the grep command.
const (
	PathNone     = "none"
	PathAbsolute = "absolute"
	PathWorktree = "worktree"
	PathProject  = "project"
)

// PathModes lists the accepted values of GrepOptions.PathMode.
var PathModes = []string{PathNone, PathAbsolute, PathWorktree, PathProject} //nolint:gochecknoglobals // flag choices

// Grep is the interface for the grep command.
type Grep interface {
	Execute(ctx context.Context, opts GrepOptions, out io.Writer) (bool, error)
}

// GrepOptions holds runtime options for the grep command.
type GrepOptions struct {
	Manifest    ManifestOptions
	Root        string
	Groups      []string
	PathMode    string   // One of PathModes; defaults to PathProject
	Pattern     string
	GitGrepArgs []string // Extra options passed to git grep as-is
}

// GrepCommand runs `git grep` in every selected checkout.
type GrepCommand struct {
	loader *ManifestLoader
	git    repositories.GitRepository
}

// NewGrepCommand creates a new GrepCommand.
func NewGrepCommand(loader *ManifestLoader, git repositories.GitRepository) *GrepCommand {
	return &GrepCommand{
		loader: loader,
		git:    git,
	}
}

// Execute greps every selected repository present in the workspace, writing
// matches to out. It returns true when at least one repository matched.
func (it *GrepCommand) Execute(ctx context.Context, opts GrepOptions, out io.Writer) (bool, error) {
	pathMode := opts.PathMode
	if pathMode == "" {
		pathMode = PathProject
	}
	if !slices.Contains(PathModes, pathMode) {
		return false, fmt.Errorf("invalid path mode %q (expected one of %s)",
			pathMode, strings.Join(PathModes, ", "))
	}
	if opts.Pattern == "" {
		return false, errors.New("a pattern is required")
	}

	manifest, err := it.loader.Load(ctx, opts.Manifest)
	if err != nil {
		return false, err
	}
	repos, err := selectRepositories(manifest, opts.Groups)
	if err != nil {
		return false, err
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve workspace root %q: %w", opts.Root, err)
	}

	args := buildGrepArgs(opts.GitGrepArgs, pathMode, opts.Pattern)
	matched := false
	for _, repo := range repos {
		dir := filepath.Join(root, repo.Src)
		if !it.git.IsRepository(dir) {
			logger.Warnf("Skipping %s: not cloned in %s", repo.Src, dir)
			continue
		}

		logger.Infof("Looking in %s ...", repo.Src)
		result, grepErr := it.git.Grep(ctx, dir, args)
		if grepErr != nil {
			logger.Errorf("Failed to grep %s: %v", repo.Src, grepErr)
			continue
		}

		if result.Output != "" {
			if _, writeErr := fmt.Fprintln(out, formatGrepOutput(result.Output, pathMode, repo, dir)); writeErr != nil {
				return matched, writeErr
			}
		}
		if result.Matched {
			matched = true
		}
	}

	return matched, nil
}

// buildGrepArgs appends the file name flags required by the path mode and the pattern.
func buildGrepArgs(extra []string, pathMode, pattern string) []string {
	args := slices.Clone(extra)
	if pathMode == PathNone {
		args = append(args, "-h")
	} else {
		args = append(args, "-H")
		if pathMode == PathAbsolute || pathMode == PathWorktree {
			args = append(args, "-I", "--null")
		}
	}
	return append(args, pattern)
}

// formatGrepOutput prefixes file names with the checkout path (absolute) or the
// repository src (worktree). Other modes leave git's output untouched.
func formatGrepOutput(output, pathMode string, repo entities.Repository, dir string) string {
	output = strings.TrimRight(output, "\n")
	if pathMode != PathAbsolute && pathMode != PathWorktree {
		return output
	}

	prefix := dir
	if pathMode == PathWorktree {
		prefix = repo.Src
	}

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		parts := strings.Split(line, "\x00")
		parts[0] = filepath.Join(prefix, parts[0])
		lines[i] = strings.Join(parts, ":")
	}
	return strings.Join(lines, "\n")
}
