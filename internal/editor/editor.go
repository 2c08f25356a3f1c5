// Package editor launches the user's text editor on a config file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/wlog/internal/errors"
)

// EnvEditor overrides $EDITOR and $VISUAL for wlog only.
const EnvEditor = "WLOG_EDITOR"

// Editor runs an editor command with the terminal attached.
type Editor struct {
	// Command is the program and its leading arguments; the file path is
	// appended.
	Command []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Editor using the detected command and the process stdio.
func New() *Editor {
	return &Editor{
		Command: Detect(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Open runs the editor on path and waits for it to exit.
func (e *Editor) Open(ctx context.Context, path string) error {
	if len(e.Command) == 0 {
		return errors.New("no editor configured")
	}

	args := append(append([]string{}, e.Command[1:]...), path)
	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", e.Command[0])
	}
	return nil
}

// Detect returns the editor command split into fields, so values such as
// "code --wait" work. Fallback chain: $WLOG_EDITOR, $EDITOR, $VISUAL,
// nano, vi. Empty variables count as unset.
func Detect() []string {
	for _, env := range []string{EnvEditor, "EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}
