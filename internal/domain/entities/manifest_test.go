//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/test/domain/entitybuilders"
)

func boolPtr(b bool) *bool { return &b }

func TestNewManifest(t *testing.T) {
	t.Parallel()

	t.Run("should resolve a repository declared with explicit attributes", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithRepository(entities.RawRepository{Project: "foo/bar.git", Src: "lib/bar", Branch: "next"}).
			BuildRawManifest()

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.NoError(t, err)
		repos, err := manifest.Repositories()
		require.NoError(t, err)
		require.Len(t, repos, 1)
		assert.Equal(t, "lib/bar", repos[0].Src)
		assert.Equal(t, "git@example.com:foo/bar.git", repos[0].RemoteURL)
		assert.Equal(t, "next", repos[0].DefaultBranch)
	})

	t.Run("should resolve the sole remote when a repository does not name one", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().WithProject("foo.git").BuildRawManifest()

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.NoError(t, err)
		repo, ok := manifest.Repository("foo.git")
		require.True(t, ok)
		assert.Equal(t, "origin", repo.RemoteName)
		remote, err := manifest.Remote(repo.RemoteName)
		require.NoError(t, err)
		assert.Equal(t, entities.Remote{Name: "origin", URL: "git@example.com"}, remote)
	})

	t.Run("should default to the first declared remote when several exist", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithRemote("gerrit", "http://gerrit:8080", true).
			WithProject("foo.git").
			BuildRawManifest()

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.NoError(t, err)
		repo, _ := manifest.Repository("foo.git")
		assert.Equal(t, "origin", repo.RemoteName)
		assert.False(t, repo.Review)
	})

	t.Run("should default the branch to master and keep explicit branches", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithProject("bar.git").
			WithRepository(entities.RawRepository{Project: "foo.git", Branch: "devel"}).
			BuildRawManifest()

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.NoError(t, err)
		repos, _ := manifest.Repositories()
		assert.Equal(t, "master", repos[0].DefaultBranch)
		assert.Equal(t, "devel", repos[1].DefaultBranch)
	})

	t.Run("should strip only an exact trailing .git suffix from the derived src", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithProject("qi/libqi.git").
			WithProject("tools/legit").
			WithProject("docs/readme.GIT").
			BuildRawManifest()

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.NoError(t, err)
		repos, _ := manifest.Repositories()
		assert.Equal(t, "qi/libqi", repos[0].Src)
		assert.Equal(t, "tools/legit", repos[1].Src)
		assert.Equal(t, "docs/readme.GIT", repos[2].Src)
	})

	t.Run("should inherit review and join scheme URLs with a slash", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithRemote("gerrit", "http://gerrit:8080", true).
			WithRepository(entities.RawRepository{Project: "foo/bar.git", Src: "lib/bar", Remote: "gerrit"}).
			BuildRawManifest()

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.NoError(t, err)
		repo, ok := manifest.Repository("foo/bar.git")
		require.True(t, ok)
		assert.Equal(t, "lib/bar", repo.Src)
		assert.Equal(t, "http://gerrit:8080/foo/bar.git", repo.RemoteURL)
		assert.True(t, repo.Review)
		assert.Nil(t, repo.ReviewOverride)
		assert.True(t, manifest.Review())
	})

	t.Run("should let a repository override the review flag of its remote", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithRemote("gerrit", "http://gerrit:8080", true).
			WithRepository(entities.RawRepository{Project: "a.git", Remote: "gerrit", Review: boolPtr(false)}).
			WithRepository(entities.RawRepository{Project: "b.git", Review: boolPtr(true)}).
			BuildRawManifest()

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.NoError(t, err)
		a, _ := manifest.Repository("a.git")
		b, _ := manifest.Repository("b.git")
		assert.False(t, a.Review)
		require.NotNil(t, a.ReviewOverride)
		assert.False(t, *a.ReviewOverride)
		assert.True(t, b.Review)
	})

	t.Run("should allow repositories to reference remotes declared after them", func(t *testing.T) {
		t.Parallel()

		// given
		raw := &entities.RawManifest{
			Repositories: []entities.RawRepository{{Project: "foo.git", Remote: "late"}},
			Remotes: []entities.RawRemote{
				{Name: "origin", URL: "git@example.com"},
				{Name: "late", URL: "ssh://git@late.example.com"},
			},
		}

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.NoError(t, err)
		repo, _ := manifest.Repository("foo.git")
		assert.Equal(t, "ssh://git@late.example.com/foo.git", repo.RemoteURL)
	})

	t.Run("should fail with the remote and project when the remote is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithRepository(entities.RawRepository{Project: "foo/bar.git", Src: "lib/bar", Remote: "invalid"}).
			BuildRawManifest()

		// when
		manifest, err := entities.NewManifest(raw)

		// then
		require.Error(t, err)
		assert.Nil(t, manifest)
		assert.ErrorIs(t, err, entities.ErrUnknownRemoteReference)
		assert.Equal(t, "No matching remote: invalid for repo foo/bar.git", err.Error())
	})

	t.Run("should fail when no remote is declared at all", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().WithoutRemotes().WithProject("foo.git").BuildRawManifest()

		// when
		_, err := entities.NewManifest(raw)

		// then
		require.ErrorIs(t, err, entities.ErrUnknownRemoteReference)
		assert.Contains(t, err.Error(), "foo.git")
	})

	t.Run("should reject duplicate remote names", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().WithRemote("origin", "git@other.com", false).BuildRawManifest()

		// when
		_, err := entities.NewManifest(raw)

		// then
		require.ErrorIs(t, err, entities.ErrDuplicateRemoteName)
		assert.Contains(t, err.Error(), "origin")
	})

	t.Run("should reject duplicate projects", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithProject("foo.git").
			WithRepository(entities.RawRepository{Project: "foo.git", Src: "elsewhere"}).
			BuildRawManifest()

		// when
		_, err := entities.NewManifest(raw)

		// then
		require.ErrorIs(t, err, entities.ErrDuplicateProject)
		assert.Contains(t, err.Error(), "foo.git")
	})

	t.Run("should reject repositories sharing a checkout path", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			raw   *entities.RawManifest
			owner string
			other string
		}{
			{
				name:  "derived src",
				raw:   entitybuilders.NewRawManifestBuilder().WithProject("foo.git").WithProject("foo").BuildRawManifest(),
				owner: "foo.git",
				other: "foo",
			},
			{
				name: "explicit src",
				raw: entitybuilders.NewRawManifestBuilder().
					WithRepository(entities.RawRepository{Project: "a.git", Src: "lib/x"}).
					WithRepository(entities.RawRepository{Project: "b.git", Src: "lib/x/"}).
					BuildRawManifest(),
				owner: "a.git",
				other: "b.git",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// when
				manifest, err := entities.NewManifest(tt.raw)

				// then
				require.ErrorIs(t, err, entities.ErrDuplicateSrc)
				assert.Nil(t, manifest)
				assert.Contains(t, err.Error(), tt.owner)
				assert.Contains(t, err.Error(), tt.other)
			})
		}
	})

	t.Run("should reject duplicate group names", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithProject("foo.git").
			WithGroup("core", "foo.git").
			WithGroup("core").
			BuildRawManifest()

		// when
		_, err := entities.NewManifest(raw)

		// then
		require.ErrorIs(t, err, entities.ErrDuplicateGroupName)
		assert.Contains(t, err.Error(), "core")
	})

	t.Run("should report every unknown member of a group at once", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithProject("foo.git").
			WithGroup("foo-group", "foo.git", "bar.git", "baz.git").
			BuildRawManifest()

		// when
		_, err := entities.NewManifest(raw)

		// then
		require.ErrorIs(t, err, entities.ErrUnknownGroupMember)
		var membersErr *entities.UnknownMembersError
		require.True(t, errors.As(err, &membersErr))
		assert.Equal(t, "foo-group", membersErr.Group)
		assert.Equal(t, []string{"bar.git", "baz.git"}, membersErr.Members)
		assert.Contains(t, err.Error(), "foo-group")
		assert.Contains(t, err.Error(), "bar.git")
		assert.Contains(t, err.Error(), "baz.git")
		assert.NotContains(t, err.Error(), "foo.git,")
	})

	t.Run("should reject malformed elements", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			raw  *entities.RawManifest
		}{
			{
				name: "remote without name",
				raw:  &entities.RawManifest{Remotes: []entities.RawRemote{{URL: "git@example.com"}}},
			},
			{
				name: "remote without url",
				raw:  &entities.RawManifest{Remotes: []entities.RawRemote{{Name: "origin"}}},
			},
			{
				name: "repository without project",
				raw:  entitybuilders.NewRawManifestBuilder().WithProject("").BuildRawManifest(),
			},
			{
				name: "group without name",
				raw:  entitybuilders.NewRawManifestBuilder().WithGroup("").BuildRawManifest(),
			},
			{
				name: "group member without name",
				raw:  entitybuilders.NewRawManifestBuilder().WithGroup("core", "").BuildRawManifest(),
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// when
				manifest, err := entities.NewManifest(tt.raw)

				// then
				require.ErrorIs(t, err, entities.ErrMalformedDocument)
				assert.Nil(t, manifest)
			})
		}
	})

	t.Run("should keep the manifest origin and default its branch", func(t *testing.T) {
		t.Parallel()

		// given
		withBranch := entitybuilders.NewRawManifestBuilder().
			WithURL("git@example.com:manifest.git").
			WithBranch("release").
			BuildRawManifest()
		withoutBranch := entitybuilders.NewRawManifestBuilder().BuildRawManifest()

		// when
		first, firstErr := entities.NewManifest(withBranch)
		second, secondErr := entities.NewManifest(withoutBranch)

		// then
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		assert.Equal(t, "git@example.com:manifest.git", first.URL())
		assert.Equal(t, "release", first.Branch())
		assert.Empty(t, second.URL())
		assert.Equal(t, "master", second.Branch())
	})
}

func TestManifestRepositories(t *testing.T) {
	t.Parallel()

	qimManifest := func() *entities.RawManifest {
		return entitybuilders.NewRawManifestBuilder().
			WithProject("qi/libqi.git").
			WithProject("qi/libqimessaging.git").
			WithProject("qi/naoqi.git").
			WithGroup("qim", "qi/libqimessaging.git", "qi/libqi.git").
			WithGroup("naoqi", "qi/naoqi.git", "qi/libqi.git").
			BuildRawManifest()
	}

	t.Run("should return every repository in document order without groups", func(t *testing.T) {
		t.Parallel()

		// given
		manifest, err := entities.NewManifest(qimManifest())
		require.NoError(t, err)

		// when
		repos, err := manifest.Repositories()

		// then
		require.NoError(t, err)
		require.Len(t, repos, 3)
		assert.Equal(t, "qi/libqi.git", repos[0].Project)
		assert.Equal(t, "qi/libqimessaging.git", repos[1].Project)
		assert.Equal(t, "qi/naoqi.git", repos[2].Project)
	})

	t.Run("should return group members in manifest order", func(t *testing.T) {
		t.Parallel()

		// given
		manifest, err := entities.NewManifest(qimManifest())
		require.NoError(t, err)

		// when
		repos, err := manifest.Repositories("qim")

		// then
		require.NoError(t, err)
		require.Len(t, repos, 2)
		assert.Equal(t, "git@example.com:qi/libqi.git", repos[0].RemoteURL)
		assert.Equal(t, "git@example.com:qi/libqimessaging.git", repos[1].RemoteURL)
	})

	t.Run("should return the union of several groups without duplicates", func(t *testing.T) {
		t.Parallel()

		// given
		manifest, err := entities.NewManifest(qimManifest())
		require.NoError(t, err)

		// when
		repos, err := manifest.Repositories("naoqi", "qim")

		// then
		require.NoError(t, err)
		projects := make([]string, 0, len(repos))
		for _, repo := range repos {
			projects = append(projects, repo.Project)
		}
		assert.Equal(t, []string{"qi/libqi.git", "qi/libqimessaging.git", "qi/naoqi.git"}, projects)
	})

	t.Run("should fail with the group name when the group is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		manifest, err := entities.NewManifest(qimManifest())
		require.NoError(t, err)

		// when
		repos, err := manifest.Repositories("qim", "mygroup")

		// then
		require.ErrorIs(t, err, entities.ErrUnknownGroupRequested)
		assert.Nil(t, repos)
		assert.Contains(t, err.Error(), "No such group: mygroup")
	})

	t.Run("should not let callers mutate the manifest through returned values", func(t *testing.T) {
		t.Parallel()

		// given
		raw := entitybuilders.NewRawManifestBuilder().
			WithRepository(entities.RawRepository{Project: "foo.git", Review: boolPtr(true)}).
			WithGroup("core", "foo.git").
			BuildRawManifest()
		manifest, err := entities.NewManifest(raw)
		require.NoError(t, err)

		// when
		repos, _ := manifest.Repositories()
		repos[0].Src = "changed"
		*repos[0].ReviewOverride = false
		groups := manifest.Groups()
		groups[0].Projects[0] = "changed"

		// then
		again, _ := manifest.Repository("foo.git")
		assert.Equal(t, "foo", again.Src)
		assert.True(t, *again.ReviewOverride)
		group, ok := manifest.Group("core")
		require.True(t, ok)
		assert.Equal(t, []string{"foo.git"}, group.Projects)
	})

	t.Run("should give identical results when the same document is resolved twice", func(t *testing.T) {
		t.Parallel()

		// given
		first, firstErr := entities.NewManifest(qimManifest())
		second, secondErr := entities.NewManifest(qimManifest())
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)

		// when
		firstRepos, _ := first.Repositories("qim")
		secondRepos, _ := second.Repositories("qim")

		// then
		assert.Equal(t, firstRepos, secondRepos)
		assert.Equal(t, first.Remotes(), second.Remotes())
		assert.Equal(t, first.Groups(), second.Groups())
	})
}

func TestManifestLookups(t *testing.T) {
	t.Parallel()

	// given
	raw := entitybuilders.NewRawManifestBuilder().
		WithRemote("gerrit", "http://gerrit:8080", true).
		WithProject("foo.git").
		WithGroup("b-group", "foo.git").
		WithGroup("a-group").
		BuildRawManifest()
	manifest, err := entities.NewManifest(raw)
	require.NoError(t, err)

	t.Run("should fail to look up an unknown remote", func(t *testing.T) {
		t.Parallel()

		// when
		_, remoteErr := manifest.Remote("nope")

		// then
		require.ErrorIs(t, remoteErr, entities.ErrUnknownRemoteReference)
		assert.Contains(t, remoteErr.Error(), "nope")
	})

	t.Run("should list remotes and groups in declaration order", func(t *testing.T) {
		t.Parallel()

		// when
		remotes := manifest.Remotes()
		names := manifest.GroupNames()

		// then
		require.Len(t, remotes, 2)
		assert.Equal(t, "origin", remotes[0].Name)
		assert.Equal(t, "gerrit", remotes[1].Name)
		assert.Equal(t, []string{"b-group", "a-group"}, names)
	})

	t.Run("should report missing repositories and groups", func(t *testing.T) {
		t.Parallel()

		// when
		_, repoFound := manifest.Repository("bar.git")
		_, groupFound := manifest.Group("c-group")

		// then
		assert.False(t, repoFound)
		assert.False(t, groupFound)
	})

	t.Run("should report that no repository uses review", func(t *testing.T) {
		t.Parallel()

		// then
		assert.False(t, manifest.Review())
	})
}
