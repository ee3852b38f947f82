package cli

import (
	"errors"

	"eisen/internal/tasks"

	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage the tag registry",
	}
	cmd.AddCommand(newTagsListCmd(app))
	cmd.AddCommand(newTagsAddCmd(app))
	cmd.AddCommand(newTagsRmCmd(app))
	return cmd
}

func newTagsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tags (sorted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			tags, err := repo.ListTags(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tagList(tags)})
		},
	}
}

func newTagsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Register a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := repo.AddTag(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, tasks.ErrBlankTag) {
					app.log.Warn("ignored blank tag name")
				}
				return writeErr(cmd, err)
			}
			tags, err := repo.ListTags(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tagList(tags)})
		},
	}
}

func newTagsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Remove a tag from the registry (tasks keep it)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := repo.DeleteTag(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			tags, err := repo.ListTags(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tagList(tags)})
		},
	}
}
