package cli

import (
	"os"
	"strings"

	"eisen/internal/speech"

	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	var (
		out     string
		locale  string
		slow    bool
		groups  bool
		onlyTxt bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Spoken summary of today's urgent tasks (MP3)",
		Example: strings.TrimSpace(`
eisen summary --out today.mp3
eisen summary --locale pt-PT --slow
eisen summary --groups --print
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("locale") {
				locale = app.cfg.Speech.Locale
			}
			if !cmd.Flags().Changed("slow") {
				slow = app.cfg.Speech.Slow
			}
			locale = speech.NormalizeLocale(locale)

			repo, err := app.repository(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			var text string
			if groups {
				ts, err := repo.ListTasks(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				gs, err := app.grouper().Group(cmd.Context(), ts)
				if err != nil {
					return writeErr(cmd, err)
				}
				text = speech.GroupSummary(locale, gs)
			} else {
				urgent, err := repo.UrgentTasks(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				text = speech.UrgentSummary(locale, urgent)
			}

			data := map[string]any{"text": text, "locale": locale, "slow": slow}
			if onlyTxt {
				return writeOut(cmd, app, map[string]any{"data": data})
			}

			synth, err := app.synthesizer(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			audio, err := synth.Synthesize(cmd.Context(), text, speech.Voice{Locale: locale, Slow: slow})
			if err != nil {
				app.log.Warn("speech synthesis failed", "err", err)
				return writeErr(cmd, err)
			}
			if err := os.WriteFile(out, audio, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			data["out"] = out
			data["bytes"] = len(audio)
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}

	cmd.Flags().StringVar(&out, "out", "summary.mp3", "Where to write the MP3")
	cmd.Flags().StringVar(&locale, "locale", speech.DefaultLocale, "Voice locale (pt-BR|pt-PT|en-US)")
	cmd.Flags().BoolVar(&slow, "slow", false, "Slow speech")
	cmd.Flags().BoolVar(&groups, "groups", false, "Summarize similarity groups instead of urgent tasks")
	cmd.Flags().BoolVar(&onlyTxt, "print", false, "Print the summary text without synthesizing audio")
	return cmd
}
