package commands

import (
	"context"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// Info is the interface for the info command.
type Info interface {
	Execute(ctx context.Context, opts InfoOptions) (*InfoReport, error)
}

// InfoOptions holds runtime options for the info command.
type InfoOptions struct {
	Manifest ManifestOptions
	Root     string
}

// InfoReport summarizes a workspace and its manifest.
type InfoReport struct {
	Root         string
	URL          string // Empty when the manifest does not declare its origin
	Branch       string
	Groups       []string
	Remotes      []entities.Remote
	Repositories int
	Review       bool
}

// InfoCommand describes the workspace manifest.
type InfoCommand struct {
	loader *ManifestLoader
}

// NewInfoCommand creates a new InfoCommand.
func NewInfoCommand(loader *ManifestLoader) *InfoCommand {
	return &InfoCommand{loader: loader}
}

// Execute loads the manifest and reports its origin, groups, remotes and review usage.
func (it *InfoCommand) Execute(ctx context.Context, opts InfoOptions) (*InfoReport, error) {
	manifest, err := it.loader.Load(ctx, opts.Manifest)
	if err != nil {
		return nil, err
	}

	repos, _ := manifest.Repositories()
	return &InfoReport{
		Root:         opts.Root,
		URL:          manifest.URL(),
		Branch:       manifest.Branch(),
		Groups:       manifest.GroupNames(),
		Remotes:      manifest.Remotes(),
		Repositories: len(repos),
		Review:       manifest.Review(),
	}, nil
}
