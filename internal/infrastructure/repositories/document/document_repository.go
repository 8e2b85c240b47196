package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/multirepo/internal/domain/entities"
	"github.com/rios0rios0/multirepo/internal/domain/repositories"
)

const (
	defaultRetryMax = 3
	defaultTimeout  = 30 * time.Second
	maxDocumentSize = 10 << 20
)

// ErrDocumentTooLarge is returned when a remote manifest exceeds the size limit.
var ErrDocumentTooLarge = errors.New("manifest exceeds 10 MiB")

// DocumentRepository reads manifests from disk or over HTTP(S), retrying
// transient HTTP failures.
type DocumentRepository struct {
	client *retryablehttp.Client
}

var _ repositories.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a DocumentRepository with the default retry policy.
func NewDocumentRepository() repositories.DocumentRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.HTTPClient.Timeout = defaultTimeout
	client.Logger = leveledLogger{}
	return NewDocumentRepositoryWithClient(client)
}

// NewDocumentRepositoryWithClient creates a DocumentRepository around a preconfigured client.
func NewDocumentRepositoryWithClient(client *retryablehttp.Client) *DocumentRepository {
	return &DocumentRepository{client: client}
}

// Fetch returns the raw document found at location.
func (r *DocumentRepository) Fetch(ctx context.Context, location string) ([]byte, error) {
	if entities.IsRemoteLocation(location) {
		return r.fetchURL(ctx, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", location, err)
	}
	return data, nil
}

func (r *DocumentRepository) fetchURL(ctx context.Context, location string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %q: %w", location, err)
	}

	logger.Debugf("Fetching manifest from %s", location)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest %q: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch manifest %q: unexpected status %s", location, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", location, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("failed to fetch manifest %q: %w", location, ErrDocumentTooLarge)
	}
	return data, nil
}
