package main

import (
	"context"
	"os"
	"strings"

	"eisen/internal/cli"

	"github.com/google/uuid"
)

// isTaskID accepts a full UUID or the short hex prefix shown in text output.
func isTaskID(s string) bool {
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	if len(s) < 8 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F', r == '-':
		default:
			return false
		}
	}
	return true
}

func rewriteDirectTaskLookupArgs(argv []string) []string {
	// `eisen <task-id>` works like `eisen tasks show <task-id>`. Cobra takes
	// the first positional as a subcommand, so argv is rewritten before
	// parsing. Persistent flags may come first, so look for the first
	// positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so a task id after
	// them is still found.
	valueFlags := map[string]bool{
		"--config":    true,
		"--backend":   true,
		"--db":        true,
		"--format":    true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "tasks", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isTaskID(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isTaskID(a) {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	args := rewriteDirectTaskLookupArgs(os.Args)
	if err := cli.Execute(context.Background(), args[1:]); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
