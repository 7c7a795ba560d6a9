package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/conson/internal/errors"
	"github.com/PolarWolf314/conson/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose, debug bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return reportedError{err: err}
}

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// formatParamsError formats an error from a params workflow for display to the user.
func formatParamsError(err error) string {
	cross := ui.Error.Sprint("✗")
	arrow := ui.Info.Sprint("→")

	switch {
	case errors.Is(err, kerrors.ErrIdentityUnavailable):
		return cross + " Could not read this machine's UUID: " + err.Error() + "\n" +
			arrow + " Run as root, or check with " + ui.Code.Sprint("conson params doctor")

	case errors.Is(err, kerrors.ErrKeyNotFound):
		return cross + " " + err.Error() + "\n" +
			arrow + " List parameters with " + ui.Code.Sprint("conson params show")

	case errors.Is(err, kerrors.ErrAlreadyVeiled):
		return cross + " " + err.Error() + "\n" +
			arrow + " Drop " + ui.Flag.Sprint("--once") + " to encrypt it again"

	case errors.Is(err, kerrors.ErrDecryptionFailed):
		return cross + " Token could not be unveiled\n" +
			arrow + " It was veiled on another machine, with another salt, or is not a token"

	case errors.Is(err, kerrors.ErrInvalidSalt):
		return cross + " " + err.Error() + "\n" +
			arrow + " Set a new salt with " + ui.Code.Sprint("conson config set-salt")

	default:
		return cross + " " + err.Error()
	}
}
