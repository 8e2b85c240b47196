//go:build unit

package controllers_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/multirepo/internal/infrastructure/controllers"
)

// newCommand builds a cobra command carrying the global flags of the root command
// and the controller-specific ones.
func newCommand(t *testing.T, controller any, flags map[string]string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().StringP("manifest", "m", "", "")
	cmd.Flags().String("format", "", "")
	cmd.Flags().String("root", "", "")
	if binder, ok := controller.(controllers.FlagBinder); ok {
		binder.AddFlags(cmd)
	}
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "multirepo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
