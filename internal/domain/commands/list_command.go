package commands

import (
	"context"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// List is the interface for the list command.
type List interface {
	Execute(ctx context.Context, opts ListOptions) ([]entities.Repository, error)
}

// ListOptions holds runtime options for the list command.
type ListOptions struct {
	Manifest ManifestOptions
	Groups   []string // Empty selects every repository
}

// ListCommand selects repositories of the manifest.
type ListCommand struct {
	loader *ManifestLoader
}

// NewListCommand creates a new ListCommand.
func NewListCommand(loader *ManifestLoader) *ListCommand {
	return &ListCommand{loader: loader}
}

// Execute returns the selected repositories in manifest order.
func (it *ListCommand) Execute(ctx context.Context, opts ListOptions) ([]entities.Repository, error) {
	manifest, err := it.loader.Load(ctx, opts.Manifest)
	if err != nil {
		return nil, err
	}
	return selectRepositories(manifest, opts.Groups)
}
