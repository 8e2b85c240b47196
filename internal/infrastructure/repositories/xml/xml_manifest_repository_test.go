//go:build unit

package xml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	xmlRepo "github.com/rios0rios0/multirepo/internal/infrastructure/repositories/xml"
)

func TestManifestRepository_Decode(t *testing.T) {
	t.Parallel()

	t.Run("should decode remotes, repositories and groups in document order", func(t *testing.T) {
		t.Parallel()

		// given
		repository := xmlRepo.NewManifestRepository()
		data := []byte(`<manifest url="git@example.com:manifest.git" branch="next">
  <remote name="origin" url="git@example.com" />
  <remote name="gerrit" url="http://gerrit:8080" review="true" />
  <repo project="qi/libqi.git" />
  <repo project="foo/bar.git" src="lib/bar" branch="devel" remote="gerrit" review="false" />
  <groups>
    <group name="qim">
      <project name="qi/libqi.git" />
      <project name="foo/bar.git" />
    </group>
  </groups>
</manifest>`)

		// when
		raw, err := repository.Decode(data)

		// then
		require.NoError(t, err)
		assert.Equal(t, "git@example.com:manifest.git", raw.URL)
		assert.Equal(t, "next", raw.Branch)
		assert.Equal(t, []entities.RawRemote{
			{Name: "origin", URL: "git@example.com"},
			{Name: "gerrit", URL: "http://gerrit:8080", Review: true},
		}, raw.Remotes)
		require.Len(t, raw.Repositories, 2)
		assert.Equal(t, "qi/libqi.git", raw.Repositories[0].Project)
		assert.Nil(t, raw.Repositories[0].Review)
		assert.Equal(t, "lib/bar", raw.Repositories[1].Src)
		assert.Equal(t, "devel", raw.Repositories[1].Branch)
		assert.Equal(t, "gerrit", raw.Repositories[1].Remote)
		require.NotNil(t, raw.Repositories[1].Review)
		assert.False(t, *raw.Repositories[1].Review)
		assert.Equal(t, []entities.RawGroup{
			{Name: "qim", Projects: []string{"qi/libqi.git", "foo/bar.git"}},
		}, raw.Groups)
	})

	t.Run("should reject elements and attributes outside the schema", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			data     string
			contains string
		}{
			{
				name:     "misspelled attribute",
				data:     `<manifest><remote name="origin" url="git@example.com" reveiw="true" /></manifest>`,
				contains: `unknown attribute "reveiw" in <remote>`,
			},
			{
				name:     "wrapped repositories",
				data:     `<manifest><repos><repo project="foo.git" /></repos></manifest>`,
				contains: "unknown element <repos> in <manifest>",
			},
			{
				name:     "misspelled group",
				data:     `<manifest><groups><grp name="core" /></groups></manifest>`,
				contains: "unknown element <grp> in <groups>",
			},
			{
				name:     "unknown repository child",
				data:     `<manifest><repo project="foo.git"><branch>next</branch></repo></manifest>`,
				contains: "unknown element <branch> in <repo>",
			},
			{
				name:     "unknown project attribute",
				data:     `<manifest><groups><group name="core"><project path="foo.git" /></group></groups></manifest>`,
				contains: `unknown attribute "path" in <project>`,
			},
			{
				name:     "unknown manifest attribute",
				data:     `<manifest revision="main" />`,
				contains: `unknown attribute "revision" in <manifest>`,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				repository := xmlRepo.NewManifestRepository()

				// when
				raw, err := repository.Decode([]byte(tt.data))

				// then
				require.ErrorIs(t, err, entities.ErrMalformedDocument)
				assert.Nil(t, raw)
				assert.Contains(t, err.Error(), tt.contains)
			})
		}
	})

	t.Run("should reject malformed documents", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			data string
		}{
			{name: "empty document", data: ""},
			{name: "unclosed element", data: `<manifest><remote name="origin"`},
			{name: "wrong root element", data: `<project name="foo" />`},
			{name: "invalid boolean", data: `<manifest><repo project="foo.git" review="maybe" /></manifest>`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				repository := xmlRepo.NewManifestRepository()

				// when
				raw, err := repository.Decode([]byte(tt.data))

				// then
				require.ErrorIs(t, err, entities.ErrMalformedDocument)
				assert.Nil(t, raw)
				assert.Contains(t, err.Error(), "Malformed xml manifest")
			})
		}
	})

	t.Run("should describe itself as the xml format", func(t *testing.T) {
		t.Parallel()

		// given
		repository := xmlRepo.NewManifestRepository()

		// when / then
		assert.Equal(t, "xml", repository.Format())
		assert.Equal(t, []string{".xml"}, repository.Extensions())
	})
}
