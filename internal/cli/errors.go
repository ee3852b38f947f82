package cli

import "eisen/internal/tasks"

const (
	exitFailure   = 1
	exitUserError = 2
)

// ExitCode maps a command error to a process exit status: 2 for rejected
// input or unknown ids, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if tasks.IsUserError(err) {
		return exitUserError
	}
	return exitFailure
}
