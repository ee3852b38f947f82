package cli

import (
	"eisen/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		to          string
		includeDone bool
		overwrite   bool
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the matrix and task pages as Markdown files",
		Example: "  eisen publish --to ./matrix\n" +
			"  eisen publish --to ./matrix --include-done --overwrite",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			all, err := repo.ListTasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteMatrix(all, to, publish.WriteOptions{
				IncludeDone: includeDone,
				Overwrite:   overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("published markdown", "dir", to, "files", len(res.Written))
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&includeDone, "include-done", false, "Also publish done tasks")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
