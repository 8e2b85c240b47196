package controllers

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// InfoController handles the "info" subcommand.
type InfoController struct {
	command commands.Info
}

// NewInfoController creates a new InfoController.
func NewInfoController(command commands.Info) *InfoController {
	return &InfoController{command: command}
}

// GetBind returns the Cobra command metadata for the info controller.
func (it *InfoController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "info",
		Short: "Display info about the current workspace",
		Long: `Display where the workspace manifest comes from, its groups,
its remotes, and whether code review is used.`,
	}
}

// Execute prints the workspace summary.
func (it *InfoController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	ws, err := resolveWorkspace(cmd)
	if err != nil {
		return err
	}

	report, err := it.command.Execute(ctx, commands.InfoOptions{
		Manifest: ws.manifest,
		Root:     ws.root,
	})
	if err != nil {
		return fmt.Errorf("info failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if report.URL != "" {
		fmt.Fprintf(out, "Manifest configured for %s\n", report.Root)
		fmt.Fprintf(out, "url:    %s\n", report.URL)
		fmt.Fprintf(out, "branch: %s\n", report.Branch)
	} else {
		logger.Warn("No manifest url configured, the manifest does not declare where it comes from")
	}
	if len(report.Groups) > 0 {
		fmt.Fprintf(out, "groups: %s\n", strings.Join(report.Groups, ", "))
	}
	for _, remote := range report.Remotes {
		review := ""
		if remote.Review {
			review = " (review)"
		}
		fmt.Fprintf(out, "remote: %s %s%s\n", remote.Name, remote.URL, review)
	}
	fmt.Fprintf(out, "repositories: %d\n", report.Repositories)
	if !report.Review {
		logger.Warn("Not using code review")
	}
	return nil
}
