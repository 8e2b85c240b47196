package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

const (
	formatName   = "hcl"
	documentName = "manifest.hcl"
)

var (
	manifestSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "url"},
			{Name: "branch"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "remote", LabelNames: []string{"name"}},
			{Type: "repo", LabelNames: []string{"project"}},
			{Type: "group", LabelNames: []string{"name"}},
		},
	}
	remoteSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "url"},
			{Name: "review"},
		},
	}
	repoSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "src"},
			{Name: "branch"},
			{Name: "remote"},
			{Name: "review"},
		},
	}
	groupSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "projects"},
		},
	}
)

// ManifestRepository decodes HCL manifests:
//
//	url = "git@example.com:manifest.git"
//
//	remote "origin" {
//	  url = "git@example.com"
//	}
//
//	repo "foo/bar.git" {
//	  src    = "lib/bar"
//	  branch = "next"
//	}
//
//	group "core" {
//	  projects = ["foo/bar.git"]
//	}
type ManifestRepository struct{}

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

// NewManifestRepository creates the HCL manifest decoder.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

func (r *ManifestRepository) Format() string { return formatName }

func (r *ManifestRepository) Extensions() []string { return []string{".hcl"} }

// Decode parses an HCL document. Blocks are read in source order.
func (r *ManifestRepository) Decode(data []byte) (*entities.RawManifest, error) {
	raw, err := decodeManifest(data)
	if err != nil {
		return nil, entities.NewMalformedDocumentError(formatName, err)
	}
	return raw, nil
}

func decodeManifest(data []byte) (*entities.RawManifest, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, documentName)
	if diags.HasErrors() {
		return nil, diags
	}

	content, contentDiags := file.Body.Content(manifestSchema)
	if contentDiags.HasErrors() {
		return nil, contentDiags
	}

	var raw entities.RawManifest
	var err error
	if raw.URL, err = stringAttribute(content.Attributes, "url"); err != nil {
		return nil, err
	}
	if raw.Branch, err = stringAttribute(content.Attributes, "branch"); err != nil {
		return nil, err
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "remote":
			remote, remoteErr := decodeRemote(block)
			if remoteErr != nil {
				return nil, remoteErr
			}
			raw.Remotes = append(raw.Remotes, remote)
		case "repo":
			repo, repoErr := decodeRepository(block)
			if repoErr != nil {
				return nil, repoErr
			}
			raw.Repositories = append(raw.Repositories, repo)
		case "group":
			group, groupErr := decodeGroup(block)
			if groupErr != nil {
				return nil, groupErr
			}
			raw.Groups = append(raw.Groups, group)
		}
	}

	return &raw, nil
}

func decodeRemote(block *hcl.Block) (entities.RawRemote, error) {
	attrs, diags := block.Body.Content(remoteSchema)
	if diags.HasErrors() {
		return entities.RawRemote{}, diags
	}

	remote := entities.RawRemote{Name: block.Labels[0]}
	var err error
	if remote.URL, err = stringAttribute(attrs.Attributes, "url"); err != nil {
		return remote, err
	}
	review, err := boolAttribute(attrs.Attributes, "review")
	if err != nil {
		return remote, err
	}
	if review != nil {
		remote.Review = *review
	}
	return remote, nil
}

func decodeRepository(block *hcl.Block) (entities.RawRepository, error) {
	attrs, diags := block.Body.Content(repoSchema)
	if diags.HasErrors() {
		return entities.RawRepository{}, diags
	}

	repo := entities.RawRepository{Project: block.Labels[0]}
	var err error
	if repo.Src, err = stringAttribute(attrs.Attributes, "src"); err != nil {
		return repo, err
	}
	if repo.Branch, err = stringAttribute(attrs.Attributes, "branch"); err != nil {
		return repo, err
	}
	if repo.Remote, err = stringAttribute(attrs.Attributes, "remote"); err != nil {
		return repo, err
	}
	if repo.Review, err = boolAttribute(attrs.Attributes, "review"); err != nil {
		return repo, err
	}
	return repo, nil
}

func decodeGroup(block *hcl.Block) (entities.RawGroup, error) {
	attrs, diags := block.Body.Content(groupSchema)
	if diags.HasErrors() {
		return entities.RawGroup{}, diags
	}

	group := entities.RawGroup{Name: block.Labels[0]}
	attr, ok := attrs.Attributes["projects"]
	if !ok {
		return group, nil
	}

	val, err := attributeValue(attr)
	if err != nil || val.IsNull() {
		return group, err
	}
	valType := val.Type()
	if !valType.IsTupleType() && !valType.IsListType() && !valType.IsSetType() {
		return group, fmt.Errorf("%s: projects must be a list of strings", attr.Range)
	}
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || elem.Type() != cty.String {
			return group, fmt.Errorf("%s: projects must be a list of strings", attr.Range)
		}
		group.Projects = append(group.Projects, elem.AsString())
	}
	return group, nil
}

func attributeValue(attr *hcl.Attribute) (cty.Value, error) {
	val, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("%s: %s must be a constant", attr.Range, attr.Name)
	}
	return val, nil
}

func stringAttribute(attrs hcl.Attributes, name string) (string, error) {
	attr, ok := attrs[name]
	if !ok {
		return "", nil
	}
	val, err := attributeValue(attr)
	if err != nil || val.IsNull() {
		return "", err
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("%s: %s must be a string", attr.Range, name)
	}
	return val.AsString(), nil
}

func boolAttribute(attrs hcl.Attributes, name string) (*bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return nil, nil //nolint:nilnil // absent attribute is not an error
	}
	val, err := attributeValue(attr)
	if err != nil || val.IsNull() {
		return nil, err
	}
	if val.Type() != cty.Bool {
		return nil, fmt.Errorf("%s: %s must be a boolean", attr.Range, name)
	}
	b := val.True()
	return &b, nil
}
