package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task (tags are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("reset deletes every task; re-run with --yes"))
			}
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := repo.Reset(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("tasks reset")
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"reset": true}})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm")
	return cmd
}
