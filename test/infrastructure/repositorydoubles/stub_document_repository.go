//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

// StubDocumentRepository implements repositories.DocumentRepository from an in-memory map.
type StubDocumentRepository struct {
	Documents map[string]string // location -> content
	FetchErr  error
	// spy: locations that were requested
	FetchedLocations []string
}

var _ repositories.DocumentRepository = (*StubDocumentRepository)(nil)

func (s *StubDocumentRepository) Fetch(_ context.Context, location string) ([]byte, error) {
	s.FetchedLocations = append(s.FetchedLocations, location)
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	content, ok := s.Documents[location]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", location)
	}
	return []byte(content), nil
}
