package cli

import (
	"eisen/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (secrets redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *app.cfg
			if c.Google.APIKey != "" {
				c.Google.APIKey = "REDACTED"
			}
			if c.Sheets.CredentialsB64 != "" {
				c.Sheets.CredentialsB64 = "REDACTED"
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigFile
			if path == "" {
				p, err := config.ConfigPath()
				if err != nil {
					return writeErr(cmd, err)
				}
				path = p
			}
			if err := config.WriteDefault(path); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path}})
		},
	})
	return cmd
}
