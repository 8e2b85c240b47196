package entities

import "slices"

// Group is a named selection of projects used for bulk operations.
type Group struct {
	Name     string
	Projects []string
}

// Contains reports whether project is a member of the group.
func (g Group) Contains(project string) bool {
	return slices.Contains(g.Projects, project)
}

// resolveGroup checks every member against the declared projects and reports
// all unknown members at once.
func resolveGroup(raw RawGroup, known map[string]int) (Group, error) {
	if raw.Name == "" {
		return Group{}, newManifestError(ErrMalformedDocument, "Group without name attribute")
	}

	var unknown []string
	for _, project := range raw.Projects {
		if project == "" {
			return Group{}, newManifestError(ErrMalformedDocument,
				"Project without name attribute in group %s", raw.Name)
		}
		if _, ok := known[project]; !ok {
			unknown = append(unknown, project)
		}
	}
	if len(unknown) > 0 {
		return Group{}, &UnknownMembersError{Group: raw.Name, Members: unknown}
	}

	return Group{Name: raw.Name, Projects: slices.Clone(raw.Projects)}, nil
}
