package entities

import "strings"

const schemeSeparator = "://"

// Remote is a named upstream location repositories are fetched from.
type Remote struct {
	Name   string
	URL    string
	Review bool // Changes go through code review
}

// JoinURL builds the clone URL of project on this remote.
// URLs carrying a scheme ("http://gerrit:8080") join with "/", scp-like
// host specs ("git@example.com") join with ":".
func (r Remote) JoinURL(project string) string {
	if strings.Contains(r.URL, schemeSeparator) {
		return r.URL + "/" + project
	}
	return r.URL + ":" + project
}
