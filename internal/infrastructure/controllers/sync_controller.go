package controllers

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// ErrSyncFailed is returned when at least one repository could not be synchronized.
var ErrSyncFailed = errors.New("sync failed")

// SyncController handles the "sync" subcommand.
type SyncController struct {
	command commands.Sync
}

// NewSyncController creates a new SyncController.
func NewSyncController(command commands.Sync) *SyncController {
	return &SyncController{command: command}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync",
		Short: "Clone or fetch the repositories of the manifest",
		Long: `Clone every repository of the manifest missing from the workspace
on its default branch, and fetch the ones already cloned.
Use --group to restrict the sync to one or more groups.`,
	}
}

// Execute synchronizes the workspace.
func (it *SyncController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	groups, _ := cmd.Flags().GetStringSlice(groupFlag)
	jobs, _ := cmd.Flags().GetInt("jobs")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ws, err := resolveWorkspace(cmd)
	if err != nil {
		return err
	}
	if jobs == 0 && ws.settings != nil {
		jobs = ws.settings.SyncJobs()
	}

	report, err := it.command.Execute(ctx, commands.SyncOptions{
		Manifest: ws.manifest,
		Root:     ws.root,
		Groups:   groups,
		Jobs:     jobs,
		DryRun:   dryRun,
	})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	for _, failure := range report.Failed {
		logger.Errorf("  %s: %v", failure.Src, failure.Err)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%w: %d repositories", ErrSyncFailed, len(report.Failed))
	}
	return nil
}

// AddFlags adds the sync-specific flags to the given Cobra command.
func (it *SyncController) AddFlags(cmd *cobra.Command) {
	addGroupFlag(cmd)
	cmd.Flags().IntP("jobs", "j", 0, "Number of repositories synchronized in parallel")
	cmd.Flags().Bool("dry-run", false, "Show what would be cloned or fetched without doing it")
}
