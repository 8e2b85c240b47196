package entities

import (
	"path"
	"slices"
)

// Manifest is the validated, read-only description of a multi-repository workspace.
// It is only obtainable through NewManifest, which either resolves the whole
// document or fails.
type Manifest struct {
	url      string
	branch   string
	remotes  *remoteTable
	repos    []Repository
	repoIdx  map[string]int // project -> position in repos
	groups   []Group
	groupIdx map[string]int
}

type remoteTable struct {
	byName map[string]Remote
	order  []string
}

// NewManifest validates raw and resolves every default. Remotes are resolved
// first so repositories may reference remotes declared after them, then
// repositories, then groups against the known projects.
func NewManifest(raw *RawManifest) (*Manifest, error) {
	remotes, err := buildRemoteTable(raw.Remotes)
	if err != nil {
		return nil, err
	}

	repos := make([]Repository, 0, len(raw.Repositories))
	repoIdx := make(map[string]int, len(raw.Repositories))
	srcOwners := make(map[string]string, len(raw.Repositories)) // cleaned src -> project
	for _, rawRepo := range raw.Repositories {
		repo, resolveErr := resolveRepository(rawRepo, remotes)
		if resolveErr != nil {
			return nil, resolveErr
		}
		if _, exists := repoIdx[repo.Project]; exists {
			return nil, newManifestError(ErrDuplicateProject,
				"Project %s is declared more than once", repo.Project)
		}
		src := path.Clean(repo.Src)
		if owner, exists := srcOwners[src]; exists {
			return nil, newManifestError(ErrDuplicateSrc,
				"Projects %s and %s share the src %s", owner, repo.Project, src)
		}
		srcOwners[src] = repo.Project
		repoIdx[repo.Project] = len(repos)
		repos = append(repos, repo)
	}

	groups := make([]Group, 0, len(raw.Groups))
	groupIdx := make(map[string]int, len(raw.Groups))
	for _, rawGroup := range raw.Groups {
		group, groupErr := resolveGroup(rawGroup, repoIdx)
		if groupErr != nil {
			return nil, groupErr
		}
		if _, exists := groupIdx[group.Name]; exists {
			return nil, newManifestError(ErrDuplicateGroupName,
				"Group %s is declared more than once", group.Name)
		}
		groupIdx[group.Name] = len(groups)
		groups = append(groups, group)
	}

	branch := raw.Branch
	if branch == "" {
		branch = defaultBranch
	}

	return &Manifest{
		url:      raw.URL,
		branch:   branch,
		remotes:  remotes,
		repos:    repos,
		repoIdx:  repoIdx,
		groups:   groups,
		groupIdx: groupIdx,
	}, nil
}

func buildRemoteTable(raw []RawRemote) (*remoteTable, error) {
	table := &remoteTable{
		byName: make(map[string]Remote, len(raw)),
		order:  make([]string, 0, len(raw)),
	}
	for _, r := range raw {
		if r.Name == "" {
			return nil, newManifestError(ErrMalformedDocument, "Remote without name attribute")
		}
		if r.URL == "" {
			return nil, newManifestError(ErrMalformedDocument, "Remote %s has no url attribute", r.Name)
		}
		if _, exists := table.byName[r.Name]; exists {
			return nil, newManifestError(ErrDuplicateRemoteName,
				"Remote %s is declared more than once", r.Name)
		}
		table.byName[r.Name] = Remote{Name: r.Name, URL: r.URL, Review: r.Review}
		table.order = append(table.order, r.Name)
	}
	return table, nil
}

// defaultRemoteName is the remote used by repositories that do not name one:
// the first remote of the document, or "" when there is none.
func defaultRemoteName(remotes *remoteTable) string {
	if len(remotes.order) == 0 {
		return ""
	}
	return remotes.order[0]
}

// URL returns where the manifest itself comes from, "" when unknown.
func (m *Manifest) URL() string { return m.url }

// Branch returns the branch the manifest is tracked on.
func (m *Manifest) Branch() string { return m.branch }

// Repositories returns all repositories in document order, or, when groups are
// given, the repositories belonging to any of them. Each repository appears once
// and the document order is kept regardless of the order inside the groups.
func (m *Manifest) Repositories(groups ...string) ([]Repository, error) {
	if len(groups) == 0 {
		return cloneRepositories(m.repos), nil
	}

	selected := make([]bool, len(m.repos))
	for _, name := range groups {
		idx, ok := m.groupIdx[name]
		if !ok {
			return nil, newManifestError(ErrUnknownGroupRequested, "No such group: %s", name)
		}
		for _, project := range m.groups[idx].Projects {
			selected[m.repoIdx[project]] = true
		}
	}

	var repos []Repository
	for i, repo := range m.repos {
		if selected[i] {
			repos = append(repos, repo.clone())
		}
	}
	return repos, nil
}

// Repository looks a repository up by its project path.
func (m *Manifest) Repository(project string) (Repository, bool) {
	idx, ok := m.repoIdx[project]
	if !ok {
		return Repository{}, false
	}
	return m.repos[idx].clone(), true
}

// Remote looks a remote up by name.
func (m *Manifest) Remote(name string) (Remote, error) {
	remote, ok := m.remotes.byName[name]
	if !ok {
		return Remote{}, newManifestError(ErrUnknownRemoteReference, "No such remote: %s", name)
	}
	return remote, nil
}

// Remotes returns the remotes in declaration order.
func (m *Manifest) Remotes() []Remote {
	remotes := make([]Remote, 0, len(m.remotes.order))
	for _, name := range m.remotes.order {
		remotes = append(remotes, m.remotes.byName[name])
	}
	return remotes
}

// Group looks a group up by name.
func (m *Manifest) Group(name string) (Group, bool) {
	idx, ok := m.groupIdx[name]
	if !ok {
		return Group{}, false
	}
	group := m.groups[idx]
	return Group{Name: group.Name, Projects: slices.Clone(group.Projects)}, true
}

// Groups returns the groups in declaration order.
func (m *Manifest) Groups() []Group {
	groups := make([]Group, 0, len(m.groups))
	for _, g := range m.groups {
		groups = append(groups, Group{Name: g.Name, Projects: slices.Clone(g.Projects)})
	}
	return groups
}

// GroupNames returns the group names in declaration order.
func (m *Manifest) GroupNames() []string {
	names := make([]string, 0, len(m.groups))
	for _, g := range m.groups {
		names = append(names, g.Name)
	}
	return names
}

// Review reports whether any repository of the manifest goes through code review.
func (m *Manifest) Review() bool {
	for _, repo := range m.repos {
		if repo.Review {
			return true
		}
	}
	return false
}

func cloneRepositories(repos []Repository) []Repository {
	cloned := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		cloned = append(cloned, repo.clone())
	}
	return cloned
}
