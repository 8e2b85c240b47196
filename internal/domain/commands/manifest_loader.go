package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/multirepo/internal/infrastructure/repositories"
)

const maxGroupSuggestions = 3

// ManifestOptions tells a command where its manifest lives.
type ManifestOptions struct {
	Location string // Local path or http(s) URL
	Format   string // Optional; inferred from Location when empty
}

// ManifestLoader fetches, decodes and resolves manifests.
type ManifestLoader struct {
	documents repositories.DocumentRepository
	registry  *infraRepos.ManifestRegistry
}

// NewManifestLoader creates a ManifestLoader.
func NewManifestLoader(
	documents repositories.DocumentRepository,
	registry *infraRepos.ManifestRegistry,
) *ManifestLoader {
	return &ManifestLoader{
		documents: documents,
		registry:  registry,
	}
}

// Load returns the fully resolved manifest found at opts.Location.
func (it *ManifestLoader) Load(ctx context.Context, opts ManifestOptions) (*entities.Manifest, error) {
	if opts.Location == "" {
		return nil, errors.New("no manifest location configured")
	}

	decoder, err := it.registry.Resolve(opts.Location, opts.Format)
	if err != nil {
		return nil, err
	}

	data, err := it.documents.Fetch(ctx, opts.Location)
	if err != nil {
		return nil, err
	}

	raw, err := decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", opts.Location, err)
	}

	manifest, err := entities.NewManifest(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", opts.Location, err)
	}

	logger.Debugf("Loaded %s manifest %s", decoder.Format(), opts.Location)
	return manifest, nil
}

// selectRepositories returns the repositories of the requested groups (all when
// none), logging close group names when a requested group does not exist.
func selectRepositories(manifest *entities.Manifest, groups []string) ([]entities.Repository, error) {
	repos, err := manifest.Repositories(groups...)
	if err == nil {
		return repos, nil
	}

	if errors.Is(err, entities.ErrUnknownGroupRequested) {
		for _, name := range groups {
			if _, ok := manifest.Group(name); ok {
				continue
			}
			if suggestions := suggestGroups(name, manifest.GroupNames()); len(suggestions) > 0 {
				logger.Warnf("Unknown group %q, did you mean: %s?", name, strings.Join(suggestions, ", "))
			}
		}
	}
	return nil, err
}

// suggestGroups returns the group names fuzzily matching name, best first.
func suggestGroups(name string, groups []string) []string {
	matches := fuzzy.Find(name, groups)
	suggestions := make([]string, 0, maxGroupSuggestions)
	for _, match := range matches {
		if len(suggestions) == maxGroupSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return suggestions
}
