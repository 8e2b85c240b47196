//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/multirepo/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositoryBuilder helps create resolved repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	project       string
	src           string
	remote        entities.Remote
	defaultBranch string
	review        bool
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		project:       "foo/bar.git",
		src:           "foo/bar",
		remote:        entities.Remote{Name: "origin", URL: "git@example.com"},
		defaultBranch: "master",
	}
}

// WithProject sets the project and its checkout path.
func (b *RepositoryBuilder) WithProject(project, src string) *RepositoryBuilder {
	b.project = project
	b.src = src
	return b
}

// WithRemote sets the remote.
func (b *RepositoryBuilder) WithRemote(remote entities.Remote) *RepositoryBuilder {
	b.remote = remote
	return b
}

// WithDefaultBranch sets the default branch.
func (b *RepositoryBuilder) WithDefaultBranch(branch string) *RepositoryBuilder {
	b.defaultBranch = branch
	return b
}

// WithReview sets the effective review status.
func (b *RepositoryBuilder) WithReview(review bool) *RepositoryBuilder {
	b.review = review
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type.
func (b *RepositoryBuilder) BuildRepository() entities.Repository {
	return entities.Repository{
		Project:       b.project,
		Src:           b.src,
		RemoteName:    b.remote.Name,
		Remote:        b.remote,
		RemoteURL:     b.remote.JoinURL(b.project),
		DefaultBranch: b.defaultBranch,
		Review:        b.review,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.project = "foo/bar.git"
	b.src = "foo/bar"
	b.remote = entities.Remote{Name: "origin", URL: "git@example.com"}
	b.defaultBranch = "master"
	b.review = false
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	return &RepositoryBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		project:       b.project,
		src:           b.src,
		remote:        b.remote,
		defaultBranch: b.defaultBranch,
		review:        b.review,
	}
}
