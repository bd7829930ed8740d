package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ryan-rushton/unilaunch/internal/config"
	"github.com/ryan-rushton/unilaunch/internal/crash"
	"github.com/ryan-rushton/unilaunch/internal/launch"
	"github.com/ryan-rushton/unilaunch/internal/messages"
	"github.com/ryan-rushton/unilaunch/internal/paths"
)

type fakeSystem struct {
	started []launch.Command
	urls    []string
	opened  []string
}

func (f *fakeSystem) Start(c launch.Command) error {
	f.started = append(f.started, c)
	return nil
}

func (f *fakeSystem) OpenURL(u string) error {
	f.urls = append(f.urls, u)
	return nil
}

func (f *fakeSystem) Open(p string) error {
	f.opened = append(f.opened, p)
	return nil
}

func testDoc() *config.Document {
	return &config.Document{
		Settings: config.Settings{Theme: "flatly"},
		Tools: []config.Tool{
			{Name: "Report", Type: "file", Path: "missing/report.pdf"},
			{Name: "Wiki", Type: "url", Path: "https://wiki.example.com"},
		},
	}
}

// setup writes doc to a temp config file and returns a model over it.
func setup(t *testing.T, doc *config.Document) (Model, *fakeSystem, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	if err := config.Save(path, doc); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	sys := &fakeSystem{}
	d := launch.New(sys, paths.NewResolver(dir, path))
	return New(doc, path, d), sys, path
}

// step feeds msg to m and then feeds back whatever the resulting cmd produces.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	next, _ = m.Update(cmd())
	return next.(Model)
}

func TestNew_InitialState(t *testing.T) {
	m, _, path := setup(t, testDoc())

	if m.width != 1024/cellWidth || m.height != 700/cellHeight {
		t.Errorf("expected initial size from default window, got %dx%d", m.width, m.height)
	}
	if got := m.home.Status(); got != "Loaded config: "+path {
		t.Errorf("unexpected status %q", got)
	}
	if m.styles.Theme != "flatly" {
		t.Errorf("expected flatly, got %q", m.styles.Theme)
	}
}

func TestCtrlC_Quits(t *testing.T) {
	m, _, _ := setup(t, testDoc())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected non-nil cmd for quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}

func TestLaunch_MissingFileShowsModalAndLaterLaunchWorks(t *testing.T) {
	m, sys, _ := setup(t, testDoc())

	m = step(t, m, messages.LaunchMsg{Tool: m.doc.Tools[0]})
	if m.modal == nil {
		t.Fatal("expected modal after failed launch")
	}
	if m.modal.title != "Missing File" {
		t.Errorf("expected Missing File, got %q", m.modal.title)
	}
	if !strings.Contains(m.View(), "Missing File") {
		t.Error("expected modal in view")
	}

	// Keys other than dismiss are swallowed.
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.modal == nil {
		t.Fatal("expected modal to stay open")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != nil {
		t.Fatal("expected enter to dismiss modal")
	}

	m = step(t, m, messages.LaunchMsg{Tool: m.doc.Tools[1]})
	if m.modal != nil {
		t.Errorf("unexpected modal %q", m.modal.body)
	}
	if len(sys.urls) != 1 || sys.urls[0] != "https://wiki.example.com" {
		t.Errorf("expected wiki opened, got %v", sys.urls)
	}
	if got := m.home.Status(); got != "Launched: Wiki" {
		t.Errorf("unexpected status %q", got)
	}
}

func TestLaunchErrorTitle(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&launch.NotFoundError{What: "File", Path: "x"}, "Missing File"},
		{launch.ErrNoPath, "Missing File"},
		{&launch.InterpreterNotFoundError{Path: "python"}, "Interpreter Not Found"},
		{&launch.UnsupportedTypeError{Tag: "jar"}, "Unsupported Type"},
		{&launch.LaunchFailedError{Target: "x", Err: errors.New("boom")}, "Launch Failed"},
		{fmt.Errorf("wrapped: %w", &launch.UnsupportedTypeError{}), "Unsupported Type"},
		{errors.New("other"), "Error"},
	}
	for _, tt := range tests {
		if got := launchErrorTitle(tt.err); got != tt.want {
			t.Errorf("launchErrorTitle(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestCycleTheme_PersistsToFile(t *testing.T) {
	m, _, path := setup(t, testDoc())

	m = step(t, m, messages.CycleThemeMsg{})
	if m.styles.Theme != "darkly" {
		t.Errorf("expected darkly, got %q", m.styles.Theme)
	}
	if m.Document().Settings.Theme != "darkly" {
		t.Errorf("expected document theme darkly, got %q", m.Document().Settings.Theme)
	}

	saved, err := config.Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if saved.Settings.Theme != "darkly" {
		t.Errorf("expected darkly on disk, got %q", saved.Settings.Theme)
	}
	if len(saved.Tools) != 2 {
		t.Errorf("expected tools preserved, got %d", len(saved.Tools))
	}
}

func TestCycleTheme_RapidCyclesSaveLatestLast(t *testing.T) {
	m, _, path := setup(t, testDoc())

	next, first := m.Update(messages.CycleThemeMsg{})
	m = next.(Model)
	if first == nil {
		t.Fatal("expected save cmd for first cycle")
	}

	// A second cycle while the first save is in flight waits for it.
	next, second := m.Update(messages.CycleThemeMsg{})
	m = next.(Model)
	if second != nil {
		t.Fatal("expected second save to be queued, not started")
	}
	if m.styles.Theme != "cosmo" {
		t.Fatalf("expected UI on cosmo, got %q", m.styles.Theme)
	}

	next, followUp := m.Update(first())
	m = next.(Model)
	if m.Document().Settings.Theme != "darkly" {
		t.Errorf("expected first save recorded, got %q", m.Document().Settings.Theme)
	}
	if followUp == nil {
		t.Fatal("expected queued save to start")
	}
	next, last := m.Update(followUp())
	m = next.(Model)
	if last != nil {
		t.Errorf("expected no further saves")
	}

	if m.Document().Settings.Theme != "cosmo" {
		t.Errorf("expected document theme cosmo, got %q", m.Document().Settings.Theme)
	}
	saved, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Settings.Theme != "cosmo" {
		t.Errorf("expected cosmo on disk, got %q", saved.Settings.Theme)
	}
}

func TestCycleTheme_SaveFailureKeepsDocument(t *testing.T) {
	m, _, path := setup(t, testDoc())
	m.configPath = filepath.Join(filepath.Dir(path), "gone", config.FileName)

	m = step(t, m, messages.CycleThemeMsg{})
	if m.styles.Theme != "darkly" {
		t.Errorf("expected UI theme to change, got %q", m.styles.Theme)
	}
	if m.Document().Settings.Theme != "flatly" {
		t.Errorf("expected document theme unchanged, got %q", m.Document().Settings.Theme)
	}
	if !strings.HasPrefix(m.home.Status(), "Theme not saved:") {
		t.Errorf("unexpected status %q", m.home.Status())
	}
}

func TestReload_ReplacesTools(t *testing.T) {
	m, _, path := setup(t, testDoc())

	doc := testDoc()
	doc.Settings.Theme = "solar"
	doc.Tools = append(doc.Tools, config.Tool{Name: "Notes", Type: "file", Path: "notes.txt"})
	if err := config.Save(path, doc); err != nil {
		t.Fatal(err)
	}

	m = step(t, m, messages.ReloadMsg{})
	if m.modal != nil {
		t.Fatalf("unexpected modal %q", m.modal.body)
	}
	if len(m.home.VisibleTools()) != 3 {
		t.Errorf("expected 3 tools after reload, got %d", len(m.home.VisibleTools()))
	}
	if m.styles.Theme != "solar" {
		t.Errorf("expected theme from reloaded file, got %q", m.styles.Theme)
	}
	if m.home.Status() != "Config reloaded." {
		t.Errorf("unexpected status %q", m.home.Status())
	}
}

func TestReload_MalformedKeepsDocument(t *testing.T) {
	m, _, path := setup(t, testDoc())
	if err := os.WriteFile(path, []byte(`{"tools": [`), 0o644); err != nil {
		t.Fatal(err)
	}

	m = step(t, m, messages.ReloadMsg{})
	if m.modal == nil || m.modal.title != "Reload Failed" {
		t.Fatalf("expected Reload Failed modal, got %+v", m.modal)
	}
	if len(m.Document().Tools) != 2 {
		t.Errorf("expected previous document kept")
	}
}

func TestOpenFolder_OpensParent(t *testing.T) {
	m, sys, path := setup(t, testDoc())
	dir := filepath.Dir(path)

	m = step(t, m, messages.OpenFolderMsg{Tool: config.Tool{Name: "Cfg", Type: "file", Path: config.FileName}})
	if m.modal != nil {
		t.Fatalf("unexpected modal %q", m.modal.body)
	}
	if len(sys.opened) != 1 || sys.opened[0] != dir {
		t.Errorf("expected %s opened, got %v", dir, sys.opened)
	}
}

func TestOpenConfig(t *testing.T) {
	m, sys, path := setup(t, testDoc())

	step(t, m, messages.OpenConfigMsg{})
	if len(sys.opened) != 1 || sys.opened[0] != path {
		t.Errorf("expected config opened, got %v", sys.opened)
	}
}

func TestWindowSize_Forwarded(t *testing.T) {
	m, _, _ := setup(t, testDoc())

	m = step(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.width != 60 || m.height != 20 {
		t.Errorf("expected 60x20, got %dx%d", m.width, m.height)
	}
}

func TestGuard_CarriesPanicToEventLoop(t *testing.T) {
	m, _, _ := setup(t, testDoc())

	msg := guard(func() tea.Msg { panic("nil map write") })()
	cp, ok := msg.(cmdPanicMsg)
	if !ok {
		t.Fatalf("expected cmdPanicMsg, got %T", msg)
	}
	if cp.rec.Value != "nil map write" {
		t.Errorf("unexpected value %v", cp.rec.Value)
	}
	if !strings.Contains(string(cp.rec.Stack), "TestGuard_CarriesPanicToEventLoop") {
		t.Errorf("expected stack of the panicking goroutine, got %s", cp.rec.Stack)
	}

	defer func() {
		r := recover()
		rec, ok := r.(*crash.Recovered)
		if !ok || rec != cp.rec {
			t.Errorf("expected Update to re-panic with the carried value, got %#v", r)
		}
	}()
	m.Update(msg)
	t.Error("expected Update to panic")
}

func TestGuard_PassesMessagesThrough(t *testing.T) {
	msg := guard(func() tea.Msg { return messages.ReloadMsg{} })()
	if _, ok := msg.(messages.ReloadMsg); !ok {
		t.Errorf("expected ReloadMsg, got %T", msg)
	}
}
