package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"eisen/internal/store"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the SQLite database to a new file",
		Long: "Writes a consistent snapshot of the SQLite store. Without --to the copy\n" +
			"goes next to the database as <name>.backup-<timestamp>.sqlite.",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			sq, ok := repo.Backend().(*store.SQLite)
			if !ok {
				return writeErr(cmd, errors.New("backup needs the sqlite backend"))
			}
			dest := to
			if dest == "" {
				dest = defaultBackupPath(sq.Path(), time.Now())
			}
			if err := sq.Backup(cmd.Context(), dest); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("database backed up", "to", dest)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": dest}})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Destination file")
	return cmd
}

func defaultBackupPath(dbPath string, now time.Time) string {
	ext := filepath.Ext(dbPath)
	base := dbPath[:len(dbPath)-len(ext)]
	if ext == "" {
		ext = ".sqlite"
	}
	return fmt.Sprintf("%s.backup-%s%s", base, now.UTC().Format("20060102T150405Z"), ext)
}
