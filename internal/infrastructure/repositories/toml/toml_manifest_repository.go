package toml

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

const formatName = "toml"

type manifestDocument struct {
	URL     string           `toml:"url"`
	Branch  string           `toml:"branch"`
	Remotes []remoteDocument `toml:"remote"`
	Repos   []repoDocument   `toml:"repo"`
	Groups  []groupDocument  `toml:"group"`
}

type remoteDocument struct {
	Name   string `toml:"name"`
	URL    string `toml:"url"`
	Review bool   `toml:"review"`
}

type repoDocument struct {
	Project string `toml:"project"`
	Src     string `toml:"src"`
	Branch  string `toml:"branch"`
	Remote  string `toml:"remote"`
	Review  *bool  `toml:"review"`
}

type groupDocument struct {
	Name     string   `toml:"name"`
	Projects []string `toml:"projects"`
}

// ManifestRepository decodes TOML manifests made of [[remote]], [[repo]] and
// [[group]] tables.
type ManifestRepository struct{}

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

// NewManifestRepository creates the TOML manifest decoder.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

func (r *ManifestRepository) Format() string { return formatName }

func (r *ManifestRepository) Extensions() []string { return []string{".toml"} }

// Decode parses a TOML document, rejecting keys outside the manifest schema.
func (r *ManifestRepository) Decode(data []byte) (*entities.RawManifest, error) {
	var doc manifestDocument
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, entities.NewMalformedDocumentError(formatName, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, entities.NewMalformedDocumentError(formatName,
			fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
	}

	raw := &entities.RawManifest{
		URL:    doc.URL,
		Branch: doc.Branch,
	}
	for _, remote := range doc.Remotes {
		raw.Remotes = append(raw.Remotes, entities.RawRemote(remote))
	}
	for _, repo := range doc.Repos {
		raw.Repositories = append(raw.Repositories, entities.RawRepository(repo))
	}
	for _, group := range doc.Groups {
		raw.Groups = append(raw.Groups, entities.RawGroup(group))
	}

	return raw, nil
}
