package crash

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type dialog struct {
	title, text string
}

// stub replaces the dialog and stderr for the duration of the test.
func stub(t *testing.T, dialogErr error) (*[]dialog, *bytes.Buffer) {
	t.Helper()
	var shown []dialog
	var errOut bytes.Buffer

	prevDialog, prevStderr, prevNow := showDialog, stderr, now
	showDialog = func(title, text string) error {
		shown = append(shown, dialog{title, text})
		return dialogErr
	}
	stderr = &errOut
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { showDialog, stderr, now = prevDialog, prevStderr, prevNow })

	return &shown, &errOut
}

func TestReport_WritesLogAndShowsDialog(t *testing.T) {
	shown, errOut := stub(t, nil)
	dir := t.TempDir()

	got := Report(dir, "Config Error", errors.New("tools.json: unexpected end of input"))

	want := filepath.Join(dir, LogName)
	if got != want {
		t.Errorf("expected log path %s, got %s", want, got)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if string(data) != "[2024-05-01T12:00:00Z] Config Error: tools.json: unexpected end of input\n" {
		t.Errorf("unexpected log %q", data)
	}

	if len(*shown) != 1 {
		t.Fatalf("expected one dialog, got %d", len(*shown))
	}
	d := (*shown)[0]
	if d.title != "Config Error" || !strings.Contains(d.text, want) {
		t.Errorf("unexpected dialog %+v", d)
	}
	if errOut.Len() != 0 {
		t.Errorf("expected nothing on stderr, got %q", errOut.String())
	}
}

func TestReport_AppendsToExistingLog(t *testing.T) {
	stub(t, nil)
	dir := t.TempDir()

	Report(dir, "First", errors.New("a"))
	Report(dir, "Second", errors.New("b"))

	data, err := os.ReadFile(filepath.Join(dir, LogName))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("expected 2 log lines, got %d", n)
	}
}

func TestReport_DialogFailureFallsBackToStderr(t *testing.T) {
	_, errOut := stub(t, errors.New("no display"))

	Report(t.TempDir(), "Startup Error", errors.New("boom"))

	if !strings.Contains(errOut.String(), "Startup Error: boom") {
		t.Errorf("expected message on stderr, got %q", errOut.String())
	}
}

func TestReport_UnwritableDir(t *testing.T) {
	shown, errOut := stub(t, nil)
	dir := filepath.Join(t.TempDir(), "missing")

	if got := Report(dir, "Startup Error", errors.New("boom")); got != "" {
		t.Errorf("expected empty log path, got %q", got)
	}
	if !strings.Contains(errOut.String(), "unable to write") {
		t.Errorf("expected write failure on stderr, got %q", errOut.String())
	}
	if len(*shown) != 1 {
		t.Errorf("expected dialog still shown")
	}
}

func TestPanic_LogsStack(t *testing.T) {
	shown, _ := stub(t, nil)
	dir := t.TempDir()

	Panic(dir, "index out of range")

	data, err := os.ReadFile(filepath.Join(dir, LogName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "panic: index out of range") {
		t.Errorf("expected panic value in log, got %q", data)
	}
	if !strings.Contains(string(data), "goroutine") {
		t.Errorf("expected stack trace in log")
	}
	if len(*shown) != 1 || (*shown)[0].title != "Unified Launcher" {
		t.Errorf("unexpected dialogs %+v", *shown)
	}
}

func TestPanic_UsesCarriedStack(t *testing.T) {
	stub(t, nil)
	dir := t.TempDir()

	Panic(dir, &Recovered{Value: "nil map write", Stack: []byte("goroutine 7 [running]:\nlaunch.worker()\n")})

	data, err := os.ReadFile(filepath.Join(dir, LogName))
	if err != nil {
		t.Fatal(err)
	}
	want := "[2024-05-01T12:00:00Z] panic: nil map write\ngoroutine 7 [running]:\nlaunch.worker()\n"
	if string(data) != want {
		t.Errorf("unexpected log %q", data)
	}
}
