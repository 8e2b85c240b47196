//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/multirepo/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RawManifestBuilder helps create raw manifests with a fluent interface.
type RawManifestBuilder struct {
	*testkit.BaseBuilder
	url          string
	branch       string
	remotes      []entities.RawRemote
	repositories []entities.RawRepository
	groups       []entities.RawGroup
}

// NewRawManifestBuilder creates a builder holding a single "origin" remote.
func NewRawManifestBuilder() *RawManifestBuilder {
	return &RawManifestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		remotes:     []entities.RawRemote{{Name: "origin", URL: "git@example.com"}},
	}
}

// WithURL sets the manifest origin.
func (b *RawManifestBuilder) WithURL(url string) *RawManifestBuilder {
	b.url = url
	return b
}

// WithBranch sets the manifest branch.
func (b *RawManifestBuilder) WithBranch(branch string) *RawManifestBuilder {
	b.branch = branch
	return b
}

// WithoutRemotes drops every remote, including the default one.
func (b *RawManifestBuilder) WithoutRemotes() *RawManifestBuilder {
	b.remotes = nil
	return b
}

// WithRemote appends a remote.
func (b *RawManifestBuilder) WithRemote(name, url string, review bool) *RawManifestBuilder {
	b.remotes = append(b.remotes, entities.RawRemote{Name: name, URL: url, Review: review})
	return b
}

// WithProject appends a repository declaring only its project.
func (b *RawManifestBuilder) WithProject(project string) *RawManifestBuilder {
	return b.WithRepository(entities.RawRepository{Project: project})
}

// WithRepository appends a repository.
func (b *RawManifestBuilder) WithRepository(repo entities.RawRepository) *RawManifestBuilder {
	b.repositories = append(b.repositories, repo)
	return b
}

// WithGroup appends a group.
func (b *RawManifestBuilder) WithGroup(name string, projects ...string) *RawManifestBuilder {
	b.groups = append(b.groups, entities.RawGroup{Name: name, Projects: projects})
	return b
}

// Build creates the raw manifest (satisfies testkit.Builder interface).
func (b *RawManifestBuilder) Build() interface{} {
	return b.BuildRawManifest()
}

// BuildRawManifest creates the raw manifest with a concrete return type.
func (b *RawManifestBuilder) BuildRawManifest() *entities.RawManifest {
	return &entities.RawManifest{
		URL:          b.url,
		Branch:       b.branch,
		Remotes:      append([]entities.RawRemote(nil), b.remotes...),
		Repositories: append([]entities.RawRepository(nil), b.repositories...),
		Groups:       append([]entities.RawGroup(nil), b.groups...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RawManifestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.url = ""
	b.branch = ""
	b.remotes = []entities.RawRemote{{Name: "origin", URL: "git@example.com"}}
	b.repositories = nil
	b.groups = nil
	return b
}

// Clone creates a deep copy of the RawManifestBuilder.
func (b *RawManifestBuilder) Clone() testkit.Builder {
	return &RawManifestBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		url:          b.url,
		branch:       b.branch,
		remotes:      append([]entities.RawRemote(nil), b.remotes...),
		repositories: append([]entities.RawRepository(nil), b.repositories...),
		groups:       append([]entities.RawGroup(nil), b.groups...),
	}
}
