package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

const formatName = "xml"

type manifestElement struct {
	XMLName      struct{}        `xml:"manifest"`
	URL          string          `xml:"url,attr"`
	Branch       string          `xml:"branch,attr"`
	Remotes      []remoteElement `xml:"remote"`
	Repos        []repoElement   `xml:"repo"`
	Groups       []groupsElement `xml:"groups"`
	Unknown      []xml.Name      `xml:",any"`
	UnknownAttrs []xml.Attr      `xml:",any,attr"`
}

type remoteElement struct {
	Name         string     `xml:"name,attr"`
	URL          string     `xml:"url,attr"`
	Review       bool       `xml:"review,attr"`
	Unknown      []xml.Name `xml:",any"`
	UnknownAttrs []xml.Attr `xml:",any,attr"`
}

type repoElement struct {
	Project      string     `xml:"project,attr"`
	Src          string     `xml:"src,attr"`
	Branch       string     `xml:"branch,attr"`
	Remote       string     `xml:"remote,attr"`
	Review       *bool      `xml:"review,attr"`
	Unknown      []xml.Name `xml:",any"`
	UnknownAttrs []xml.Attr `xml:",any,attr"`
}

type groupsElement struct {
	Groups       []groupElement `xml:"group"`
	Unknown      []xml.Name     `xml:",any"`
	UnknownAttrs []xml.Attr     `xml:",any,attr"`
}

type groupElement struct {
	Name         string           `xml:"name,attr"`
	Projects     []projectElement `xml:"project"`
	Unknown      []xml.Name       `xml:",any"`
	UnknownAttrs []xml.Attr       `xml:",any,attr"`
}

type projectElement struct {
	Name         string     `xml:"name,attr"`
	Unknown      []xml.Name `xml:",any"`
	UnknownAttrs []xml.Attr `xml:",any,attr"`
}

// checkKnown rejects child elements and attributes outside the manifest schema.
func checkKnown(element string, children []xml.Name, attrs []xml.Attr) error {
	if len(children) > 0 {
		return fmt.Errorf("unknown element <%s> in <%s>", children[0].Local, element)
	}
	if len(attrs) > 0 {
		return fmt.Errorf("unknown attribute %q in <%s>", attrs[0].Name.Local, element)
	}
	return nil
}

// ManifestRepository decodes the historical XML manifest format.
type ManifestRepository struct{}

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

// NewManifestRepository creates the XML manifest decoder.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

func (r *ManifestRepository) Format() string { return formatName }

func (r *ManifestRepository) Extensions() []string { return []string{".xml"} }

// Decode parses an XML <manifest> document.
func (r *ManifestRepository) Decode(data []byte) (*entities.RawManifest, error) {
	var doc manifestElement
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, entities.NewMalformedDocumentError(formatName, err)
	}

	raw, err := toRawManifest(&doc)
	if err != nil {
		return nil, entities.NewMalformedDocumentError(formatName, err)
	}
	return raw, nil
}

func toRawManifest(doc *manifestElement) (*entities.RawManifest, error) {
	if err := checkKnown("manifest", doc.Unknown, doc.UnknownAttrs); err != nil {
		return nil, err
	}

	raw := &entities.RawManifest{
		URL:    doc.URL,
		Branch: doc.Branch,
	}
	for _, remote := range doc.Remotes {
		if err := checkKnown("remote", remote.Unknown, remote.UnknownAttrs); err != nil {
			return nil, err
		}
		raw.Remotes = append(raw.Remotes, entities.RawRemote{
			Name:   remote.Name,
			URL:    remote.URL,
			Review: remote.Review,
		})
	}
	for _, repo := range doc.Repos {
		if err := checkKnown("repo", repo.Unknown, repo.UnknownAttrs); err != nil {
			return nil, err
		}
		raw.Repositories = append(raw.Repositories, entities.RawRepository{
			Project: repo.Project,
			Src:     repo.Src,
			Branch:  repo.Branch,
			Remote:  repo.Remote,
			Review:  repo.Review,
		})
	}
	for _, groups := range doc.Groups {
		if err := checkKnown("groups", groups.Unknown, groups.UnknownAttrs); err != nil {
			return nil, err
		}
		for _, group := range groups.Groups {
			if err := checkKnown("group", group.Unknown, group.UnknownAttrs); err != nil {
				return nil, err
			}
			rawGroup := entities.RawGroup{Name: group.Name}
			for _, project := range group.Projects {
				if err := checkKnown("project", project.Unknown, project.UnknownAttrs); err != nil {
					return nil, err
				}
				rawGroup.Projects = append(rawGroup.Projects, project.Name)
			}
			raw.Groups = append(raw.Groups, rawGroup)
		}
	}

	return raw, nil
}
