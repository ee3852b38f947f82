package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrBackupExists is returned when the backup target is already present.
var ErrBackupExists = errors.New("backup target exists")

// Backup writes a consistent copy of the database to dest. The copy is a
// standalone SQLite file that OpenSQLite can read directly.
func (s *SQLite) Backup(ctx context.Context, dest string) error {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return errors.New("backup: missing destination")
	}
	dest = filepath.Clean(dest)
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %s", ErrBackupExists, dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("backup sqlite to %s: %w", dest, err)
	}
	return nil
}
