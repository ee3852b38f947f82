package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"eisen/internal/config"
	"eisen/internal/format"
	"eisen/internal/sheets"
	"eisen/internal/store"
	"eisen/internal/tasks"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigFile string
	Backend    string
	DBPath     string
	PrettyJSON bool
	Format     string
	LogLevel   string

	cfg     *config.Config
	log     *slog.Logger
	repo    *tasks.Repository
	backend store.Backend
}

// Execute runs eisen with args. The storage backend is closed however the
// command ends, including when RunE fails.
func Execute(ctx context.Context, args []string) error {
	app := &App{}
	cmd := newRootCmd(app)
	cmd.SetArgs(args)
	return execute(ctx, app, cmd)
}

func execute(ctx context.Context, app *App, cmd *cobra.Command) (err error) {
	defer func() {
		if cerr := app.close(); err == nil && cerr != nil {
			err = fmt.Errorf("close backend: %w", cerr)
		}
	}()
	return cmd.ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command { return newRootCmd(&App{}) }

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "eisen",
		Short:        "Eisenhower-matrix task tracker (CLI, web UI and TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Add a task and see where it lands
  eisen tasks add --title "Renew passport" --importance 4 --urgency 2

  # The day's urgent tasks and the Ivy Lee top six
  eisen tasks urgent
  eisen tasks top

  # Direct task lookup (shortcut for: eisen tasks show <task-id>)
  eisen 6f1c0e4a-8d2b-4f7e-9a51-0c3d2e1b7a90

  # Serve the web UI
  eisen web
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", envOr("EISEN_CONFIG", ""), "Config file (default: $EISEN_CONFIG_DIR/config.yaml or ~/.eisen/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|sheets|memory; default from config)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "SQLite database path (default from config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|text; default from config)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newGroupCmd(app))
	cmd.AddCommand(newSummaryCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

func (app *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigFile)
	if err != nil {
		return writeErr(cmd, err)
	}
	if v := strings.TrimSpace(app.Backend); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(app.DBPath); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(app.Format); v != "" {
		cfg.Format = v
	}
	if v := strings.TrimSpace(app.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg
	app.Format = cfg.Format
	app.log = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

func (app *App) close() error {
	if app.backend == nil {
		return nil
	}
	err := app.backend.Close()
	app.backend = nil
	app.repo = nil
	return err
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// repository opens the configured backend on first use.
func (app *App) repository(ctx context.Context) (*tasks.Repository, error) {
	if app.repo != nil {
		return app.repo, nil
	}
	b, err := openBackend(ctx, app.cfg)
	if err != nil {
		return nil, err
	}
	app.log.Debug("opened backend", "backend", app.cfg.Backend)
	app.backend = b
	app.repo = tasks.NewRepository(b)
	return app.repo, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendSheets:
		if strings.TrimSpace(cfg.Sheets.Spreadsheet) == "" {
			return nil, errors.New("sheets backend needs sheets.spreadsheet (or EISEN_SHEETS_SPREADSHEET)")
		}
		return sheets.Open(ctx, sheets.Config{
			Spreadsheet:     cfg.Sheets.Spreadsheet,
			TasksSheet:      cfg.Sheets.TasksSheet,
			TagsSheet:       cfg.Sheets.TagsSheet,
			CredentialsFile: cfg.Sheets.CredentialsFile,
			CredentialsB64:  cfg.Sheets.CredentialsB64,
		})
	default:
		return store.OpenSQLite(ctx, cfg.DBPath)
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
