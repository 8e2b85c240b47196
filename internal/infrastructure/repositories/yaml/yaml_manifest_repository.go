package yaml

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

const formatName = "yaml"

type manifestDocument struct {
	URL     string           `yaml:"url"`
	Branch  string           `yaml:"branch"`
	Remotes []remoteDocument `yaml:"remotes"`
	Repos   []repoDocument   `yaml:"repos"`
	Groups  []groupDocument  `yaml:"groups"`
}

type remoteDocument struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Review bool   `yaml:"review"`
}

type repoDocument struct {
	Project string `yaml:"project"`
	Src     string `yaml:"src"`
	Branch  string `yaml:"branch"`
	Remote  string `yaml:"remote"`
	Review  *bool  `yaml:"review"`
}

type groupDocument struct {
	Name     string   `yaml:"name"`
	Projects []string `yaml:"projects"`
}

// ManifestRepository decodes YAML manifests:
//
//	url: git@example.com:manifest.git
//	remotes:
//	  - name: origin
//	    url: git@example.com
//	repos:
//	  - project: foo/bar.git
//	    src: lib/bar
//	groups:
//	  - name: core
//	    projects: [foo/bar.git]
type ManifestRepository struct{}

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

// NewManifestRepository creates the YAML manifest decoder.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

func (r *ManifestRepository) Format() string { return formatName }

func (r *ManifestRepository) Extensions() []string { return []string{".yaml", ".yml"} }

// Decode parses a YAML document, rejecting keys outside the manifest schema.
func (r *ManifestRepository) Decode(data []byte) (*entities.RawManifest, error) {
	var doc manifestDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, entities.NewMalformedDocumentError(formatName, err)
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
