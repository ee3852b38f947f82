package cli

import (
	"github.com/spf13/cobra"
)

func newGroupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "group",
		Short: "Group pending tasks by title similarity (needs google.api_key)",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ts, err := repo.ListTasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			groups, err := app.grouper().Group(cmd.Context(), ts)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": similarityGroups(groups)})
		},
	}
}
