package repositories

import (
	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// ManifestRepository abstracts one serialization of the manifest document (XML, YAML, etc.).
// Implementations only decode: validation and defaults belong to entities.NewManifest.
type ManifestRepository interface {
	// Format returns the format identifier (e.g. "xml", "yaml").
	Format() string

	// Extensions returns the file extensions, dot included, the format is inferred from.
	Extensions() []string

	// Decode parses data into the raw manifest. Any failure is an
	// entities.ErrMalformedDocument error.
	Decode(data []byte) (*entities.RawManifest, error)
}
