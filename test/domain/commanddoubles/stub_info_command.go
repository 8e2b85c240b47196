//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
)

// StubInfoCommand is a stub implementation of commands.Info.
type StubInfoCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *commands.InfoReport
	LastOpts         commands.InfoOptions
}

var _ commands.Info = (*StubInfoCommand)(nil)

func (s *StubInfoCommand) Execute(_ context.Context, opts commands.InfoOptions) (*commands.InfoReport, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Report, s.ExecuteErr
}
