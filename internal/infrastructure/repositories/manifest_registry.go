package repositories

import (
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"

	domainRepos "github.com/rios0rios0/multirepo/internal/domain/repositories"
)

// DefaultManifestFormat is used when a location has no recognizable extension.
const DefaultManifestFormat = "xml"

// ManifestRegistry manages all registered manifest decoders.
type ManifestRegistry struct {
	formats    map[string]domainRepos.ManifestRepository
	extensions map[string]string // extension -> format
}

// NewManifestRegistry creates an empty manifest registry.
func NewManifestRegistry() *ManifestRegistry {
	return &ManifestRegistry{
		formats:    make(map[string]domainRepos.ManifestRepository),
		extensions: make(map[string]string),
	}
}

// Register adds a decoder under its format name and extensions.
func (r *ManifestRegistry) Register(m domainRepos.ManifestRepository) {
	r.formats[m.Format()] = m
	for _, ext := range m.Extensions() {
		r.extensions[ext] = m.Format()
	}
}

// Get returns the decoder for the given format name.
func (r *ManifestRegistry) Get(format string) (domainRepos.ManifestRepository, error) {
	m, ok := r.formats[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown manifest format: %q (supported: %s)",
			format, strings.Join(r.Names(), ", "))
	}
	return m, nil
}

// Resolve returns the decoder for a manifest location. An explicit format wins,
// otherwise the extension of the path (or of the URL path) decides, falling back
// to DefaultManifestFormat.
func (r *ManifestRegistry) Resolve(location, format string) (domainRepos.ManifestRepository, error) {
	if format != "" {
		return r.Get(format)
	}

	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	}
	if name, ok := r.extensions[strings.ToLower(path.Ext(p))]; ok {
		return r.formats[name], nil
	}
	return r.Get(DefaultManifestFormat)
}

// Names returns the sorted list of registered format names.
func (r *ManifestRegistry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
