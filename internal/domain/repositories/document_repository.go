package repositories

import "context"

// DocumentRepository reads a manifest document from a local path or an http(s) URL.
type DocumentRepository interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}
