package controllers

import (
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

const groupFlag = "group"

// FlagBinder is implemented by controllers with subcommand-specific flags.
type FlagBinder interface {
	AddFlags(cmd *cobra.Command)
}

// workspace is the manifest location and checkout root resolved from the
// settings file and the global flags. Flags win over settings.
type workspace struct {
	manifest commands.ManifestOptions
	root     string
	settings *entities.Settings // nil when only --manifest was given
}

func resolveWorkspace(cmd *cobra.Command) (*workspace, error) {
	configPath, _ := cmd.Flags().GetString("config")
	location, _ := cmd.Flags().GetString("manifest")
	format, _ := cmd.Flags().GetString("format")
	root, _ := cmd.Flags().GetString("root")

	if configPath == "" && location == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			return nil, fmt.Errorf(
				"no config file found: %w\nSpecify one with --config, pass --manifest or create multirepo.yaml",
				err,
			)
		}
		configPath = found
	}

	ws := &workspace{}
	if configPath != "" {
		logger.Debugf("Using config file: %s", configPath)
		settings, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		ws.settings = settings
		ws.manifest = commands.ManifestOptions{
			Location: settings.Manifest.Location,
			Format:   settings.Manifest.Format,
		}
		ws.root = settings.Root
	}

	if location != "" {
		ws.manifest.Location = location
	}
	if format != "" {
		ws.manifest.Format = format
	}
	if root != "" {
		ws.root = root
	}
	if ws.root == "" {
		ws.root = "."
	}
	absRoot, err := filepath.Abs(ws.root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root %q: %w", ws.root, err)
	}
	ws.root = absRoot
	return ws, nil
}

func addGroupFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceP(groupFlag, "g", nil, "Only use repositories of this group (repeatable)")
}
