package entities

import "strings"

const (
	defaultBranch = "master"
	gitSuffix     = ".git"
)

// Repository is one project declared in a manifest, with every default resolved.
type Repository struct {
	Project        string // Path of the project on its remote, e.g. "foo/bar.git"
	Src            string // Checkout path relative to the workspace root
	RemoteName     string
	Remote         Remote
	RemoteURL      string
	DefaultBranch  string
	ReviewOverride *bool // Per-repository override of Remote.Review
	Review         bool  // Effective review status
}

// resolveRepository turns a raw entry into a Repository using the completed remote table.
func resolveRepository(raw RawRepository, remotes *remoteTable) (Repository, error) {
	if raw.Project == "" {
		return Repository{}, newManifestError(ErrMalformedDocument, "Repository without project attribute")
	}

	remoteName := raw.Remote
	if remoteName == "" {
		remoteName = defaultRemoteName(remotes)
	}
	remote, ok := remotes.byName[remoteName]
	if !ok {
		return Repository{}, newManifestError(ErrUnknownRemoteReference,
			"No matching remote: %s for repo %s", remoteName, raw.Project)
	}

	repo := Repository{
		Project:       raw.Project,
		Src:           raw.Src,
		RemoteName:    remoteName,
		Remote:        remote,
		RemoteURL:     remote.JoinURL(raw.Project),
		DefaultBranch: raw.Branch,
		Review:        remote.Review,
	}
	if repo.Src == "" {
		repo.Src = strings.TrimSuffix(raw.Project, gitSuffix)
	}
	if repo.DefaultBranch == "" {
		repo.DefaultBranch = defaultBranch
	}
	if raw.Review != nil {
		override := *raw.Review
		repo.ReviewOverride = &override
		repo.Review = override
	}

	return repo, nil
}

func (r Repository) clone() Repository {
	if r.ReviewOverride != nil {
		override := *r.ReviewOverride
		r.ReviewOverride = &override
	}
	return r
}
