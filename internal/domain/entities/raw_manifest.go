package entities

// RawManifest is the decoded, not yet validated manifest document.
// Decoders of every serialization produce this representation; empty strings mean "absent".
type RawManifest struct {
	URL          string
	Branch       string
	Remotes      []RawRemote
	Repositories []RawRepository
	Groups       []RawGroup
}

// RawRemote is one <remote> element.
type RawRemote struct {
	Name   string
	URL    string
	Review bool
}

// RawRepository is one <repo> element.
type RawRepository struct {
	Project string
	Src     string
	Branch  string
	Remote  string
	Review  *bool // nil when the document does not override review
}

// RawGroup is one <group> element with its <project> references.
type RawGroup struct {
	Name     string
	Projects []string
}
