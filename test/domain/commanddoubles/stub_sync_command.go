//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
)

// StubSyncCommand is a stub implementation of commands.Sync.
type StubSyncCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *commands.SyncReport
	LastOpts         commands.SyncOptions
}

var _ commands.Sync = (*StubSyncCommand)(nil)

func (s *StubSyncCommand) Execute(_ context.Context, opts commands.SyncOptions) (*commands.SyncReport, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.Report == nil && s.ExecuteErr == nil {
		return &commands.SyncReport{}, nil
	}
	return s.Report, s.ExecuteErr
}
