package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"eisen/internal/speech"
	"eisen/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the web UI",
		Long: strings.TrimSpace(`
Serve the matrix, the Ivy Lee list, groups, tags and the spoken summary
from a local HTTP server. Pages refresh live after every change.
`),
		Example: strings.TrimSpace(`
# Serve on the configured address (web.addr, default 127.0.0.1:8080)
eisen web

# Pick a port and skip the browser
eisen web --addr :3335 --open=false
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = strings.TrimSpace(app.cfg.Web.Addr)
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("web: missing --addr"))
			}

			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			var synth speech.Synthesizer
			if s, err := app.synthesizer(cmd.Context()); err == nil {
				synth = s
			} else if !errors.Is(err, speech.ErrUnavailable) {
				app.log.Warn("speech disabled", "err", err)
			}

			srv, err := web.NewServer(web.ServerConfig{
				Repo:          repo,
				Grouper:       app.grouper(),
				Synth:         synth,
				Log:           app.log,
				DefaultLocale: app.cfg.Speech.Locale,
				DefaultSlow:   app.cfg.Speech.Slow,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openPath(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			hints := []string{}
			if !opened {
				hints = append(hints, "open "+url)
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"backend":   app.cfg.Backend,
					"speech":    synth != nil,
					"grouping":  app.cfg.Google.APIKey != "",
					"opened":    opened,
					"openError": openErr,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": hints,
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "eisen web running at %s (backend=%s)\n", url, app.cfg.Backend)
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

			return http.Serve(ln, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default from config)")
	cmd.Flags().BoolVar(&open, "open", true, "Open the UI in your default browser")
	return cmd
}
