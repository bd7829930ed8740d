// Package crash records fatal errors beside the program and tells the user
// through a native dialog, since the terminal UI is gone by the time they
// happen.
package crash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/ncruces/zenity"
)

// LogName is the crash log file written inside the program directory.
const LogName = "launcher_error.log"

var (
	showDialog = func(title, text string) error {
		return zenity.Error(text, zenity.Title(title), zenity.ErrorIcon)
	}
	stderr io.Writer = os.Stderr
	now              = time.Now
)

// Recovered is a panic value together with the stack of the goroutine that
// raised it. Re-panicking with a *Recovered keeps that stack in the report.
type Recovered struct {
	Value any
	Stack []byte
}

func (r *Recovered) Error() string { return fmt.Sprintf("panic: %v", r.Value) }

// Report appends err to the crash log in dir and shows it in a dialog. When
// the dialog cannot be shown the message goes to stderr. It returns the log
// path, or "" if the log could not be written.
func Report(dir, title string, err error) string {
	text := fmt.Sprintf("%s: %v", title, err)

	logPath := filepath.Join(dir, LogName)
	if werr := appendLog(logPath, text, nil); werr != nil {
		fmt.Fprintf(stderr, "unable to write %s: %v\n", logPath, werr)
		logPath = ""
	}

	msg := text
	if logPath != "" {
		msg += "\n\nDetails were written to " + logPath
	}
	if derr := showDialog(title, msg); derr != nil {
		fmt.Fprintln(stderr, msg)
	}
	return logPath
}

// Panic reports a recovered panic value along with its stack. Call it from
// the deferred function that recovered, or pass a *Recovered.
func Panic(dir string, r any) string {
	stack := debug.Stack()
	if rec, ok := r.(*Recovered); ok {
		r, stack = rec.Value, rec.Stack
	}
	logPath := filepath.Join(dir, LogName)
	if err := appendLog(logPath, fmt.Sprintf("panic: %v", r), stack); err != nil {
		fmt.Fprintf(stderr, "unable to write %s: %v\n", logPath, err)
		logPath = ""
	}

	msg := fmt.Sprintf("Unexpected error: %v", r)
	if logPath != "" {
		msg += "\n\nDetails were written to " + logPath
	}
	if err := showDialog("Unified Launcher", msg); err != nil {
		fmt.Fprintln(stderr, msg)
	}
	return logPath
}

func appendLog(path, text string, stack []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "[%s] %s\n", now().Format(time.RFC3339), text); err != nil {
		return err
	}
	if len(stack) > 0 {
		if _, err := f.Write(stack); err != nil {
			return err
		}
	}
	return nil
}
