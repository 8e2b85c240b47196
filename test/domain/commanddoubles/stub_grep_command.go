//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
)

// StubGrepCommand is a stub implementation of commands.Grep.
type StubGrepCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Matched          bool
	Output           string // written to the output writer on Execute
	LastOpts         commands.GrepOptions
}

var _ commands.Grep = (*StubGrepCommand)(nil)

func (s *StubGrepCommand) Execute(_ context.Context, opts commands.GrepOptions, out io.Writer) (bool, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.Output != "" {
		if _, err := io.WriteString(out, s.Output); err != nil {
			return false, err
		}
	}
	return s.Matched, s.ExecuteErr
}
