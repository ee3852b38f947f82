package cli

import (
	"eisen/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI (matrix, urgent, Ivy Lee, tags)",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := tui.Run(cmd.Context(), repo); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
}
