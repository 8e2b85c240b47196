package controllers

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/multirepo/internal/domain/commands"
	"github.com/rios0rios0/multirepo/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command commands.List
}

// NewListController creates a new ListController.
func NewListController(command commands.List) *ListController {
	return &ListController{command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list",
		Short: "List the repositories of the manifest",
		Long: `List the repositories declared in the manifest, in manifest order,
with their checkout path, clone URL and default branch.
Use --group to restrict the list to one or more groups.`,
	}
}

// Execute prints one line per selected repository.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	groups, _ := cmd.Flags().GetStringSlice(groupFlag)
	ws, err := resolveWorkspace(cmd)
	if err != nil {
		return err
	}

	repos, err := it.command.Execute(ctx, commands.ListOptions{
		Manifest: ws.manifest,
		Groups:   groups,
	})
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	for _, repo := range repos {
		review := ""
		if repo.Review {
			review = "review"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", repo.Src, repo.RemoteURL, repo.DefaultBranch, review)
	}
	if flushErr := writer.Flush(); flushErr != nil {
		return fmt.Errorf("failed to write output: %w", flushErr)
	}
	return nil
}

// AddFlags adds the list-specific flags to the given Cobra command.
func (it *ListController) AddFlags(cmd *cobra.Command) {
	addGroupFlag(cmd)
}
