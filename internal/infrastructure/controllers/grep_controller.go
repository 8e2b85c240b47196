package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// ErrNoMatch is returned when no repository matched the pattern.
var ErrNoMatch = errors.New("no match found")

// GrepController handles the "grep" subcommand.
type GrepController struct {
	command commands.Grep
}

// NewGrepController creates a new GrepController.
func NewGrepController(command commands.Grep) *GrepController {
	return &GrepController{command: command}
}

// GetBind returns the Cobra command metadata for the grep controller.
func (it *GrepController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "grep [-- git grep options] PATTERN",
		Short: "Run git grep on every repository",
		Long: `Run git grep on every repository of the workspace.

Options are the same as in git grep, preceded by -- to escape the leading '-':

  multirepo grep -- -niC2 foo`,
	}
}

// Execute greps the selected repositories. The last argument is the pattern,
// the others are passed to git grep.
func (it *GrepController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 0 {
		return errors.New("a pattern is required")
	}
	groups, _ := cmd.Flags().GetStringSlice(groupFlag)
	pathMode, _ := cmd.Flags().GetString("path")

	ws, err := resolveWorkspace(cmd)
	if err != nil {
		return err
	}

	matched, err := it.command.Execute(ctx, commands.GrepOptions{
		Manifest:    ws.manifest,
		Root:        ws.root,
		Groups:      groups,
		PathMode:    pathMode,
		Pattern:     args[len(args)-1],
		GitGrepArgs: args[:len(args)-1],
	}, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("grep failed: %w", err)
	}
	if !matched {
		return ErrNoMatch
	}
	return nil
}

// AddFlags adds the grep-specific flags to the given Cobra command.
func (it *GrepController) AddFlags(cmd *cobra.Command) {
	addGroupFlag(cmd)
	cmd.Flags().String("path", commands.PathProject,
		fmt.Sprintf("Type of path to print (%s)", strings.Join(commands.PathModes, ", ")),
	)
}
