package app

import (
	"errors"
	"log"
	"path/filepath"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ryan-rushton/unilaunch/internal/config"
	"github.com/ryan-rushton/unilaunch/internal/crash"
	"github.com/ryan-rushton/unilaunch/internal/home"
	"github.com/ryan-rushton/unilaunch/internal/launch"
	"github.com/ryan-rushton/unilaunch/internal/messages"
	"github.com/ryan-rushton/unilaunch/internal/styles"
)

// Pixel size of one terminal cell, used to turn the configured window size
// into an initial layout before the terminal reports its own.
const (
	cellWidth  = 8
	cellHeight = 16
)

// cmdPanicMsg carries a panic out of a cmd goroutine so it can be raised
// again on the event loop.
type cmdPanicMsg struct {
	rec *crash.Recovered
}

type modal struct {
	title string
	body  string
}

// Model is the top-level application model. It owns the document and runs
// every side effect the home screen asks for.
type Model struct {
	doc        *config.Document
	configPath string
	dispatcher *launch.Dispatcher
	styles     styles.Styles
	home       home.Model
	modal      *modal
	saving     bool   // a theme save is in flight
	queued     string // theme to save once the in-flight save reports back
	width      int
	height     int
}

func New(doc *config.Document, configPath string, dispatcher *launch.Dispatcher) Model {
	if abs, err := filepath.Abs(configPath); err == nil {
		configPath = abs
	}
	w, h := doc.Settings.WindowSize()
	st := styles.New(doc.Settings.ThemeOrDefault())

	m := Model{
		doc:        doc,
		configPath: configPath,
		dispatcher: dispatcher,
		styles:     st,
		width:      w / cellWidth,
		height:     h / cellHeight,
	}
	m.home = home.New(doc.Tools, st).
		WithSize(m.width, m.height).
		WithStatus("Loaded config: " + configPath)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.home.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != nil {
			switch key.String() {
			case "enter", "esc", " ":
				m.modal = nil
			}
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case cmdPanicMsg:
		panic(msg.rec)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case messages.LaunchMsg:
		return m, m.launch(msg.Tool)

	case messages.LaunchedMsg:
		if msg.Err != nil {
			log.Printf("launch %q failed: %v", msg.Name, msg.Err)
			m.modal = &modal{title: launchErrorTitle(msg.Err), body: msg.Err.Error()}
			return m, nil
		}
		log.Printf("launched %q", msg.Name)
		m.home = m.home.WithStatus("Launched: " + msg.Name)
		return m, nil

	case messages.OpenFolderMsg:
		return m, m.openFolder(msg.Tool)

	case messages.OpenConfigMsg:
		return m, m.openConfig()

	case messages.OpenedMsg:
		if msg.Err != nil {
			log.Printf("open %s failed: %v", msg.Target, msg.Err)
			title := "Open Folder Failed"
			if msg.Target == m.configPath {
				title = "Error"
			}
			m.modal = &modal{title: title, body: msg.Err.Error()}
			return m, nil
		}
		m.home = m.home.WithStatus("Opened: " + msg.Target)
		return m, nil

	case messages.ReloadMsg:
		return m, m.reload()

	case messages.ConfigLoadedMsg:
		if msg.Err != nil {
			log.Printf("reload failed: %v", msg.Err)
			m.modal = &modal{title: "Reload Failed", body: msg.Err.Error()}
			return m, nil
		}
		m.doc = msg.Doc
		m.styles = styles.New(m.doc.Settings.ThemeOrDefault())
		m.home = m.home.WithTools(m.doc.Tools).
			WithStyles(m.styles).
			WithStatus("Config reloaded.")
		return m, nil

	case messages.CycleThemeMsg:
		next := styles.Next(m.styles.Theme)
		m.styles = styles.New(next)
		m.home = m.home.WithStyles(m.styles).WithStatus("Theme: " + next)
		if m.saving {
			m.queued = next
			return m, nil
		}
		m.saving = true
		return m, m.saveTheme(next)

	case messages.ConfigSavedMsg:
		m.saving = false
		if msg.Err != nil {
			log.Printf("theme not saved: %v", msg.Err)
			m.home = m.home.WithStatus("Theme not saved: " + msg.Err.Error())
		} else {
			m.doc = msg.Doc
		}
		if m.queued != "" {
			next := m.queued
			m.queued = ""
			m.saving = true
			return m, m.saveTheme(next)
		}
		return m, nil
	}

	updated, cmd := m.home.Update(msg)
	m.home = updated.(home.Model)
	return m, cmd
}

func (m Model) View() string {
	if m.modal == nil {
		return m.home.View()
	}
	body := m.styles.ModalTitle.Render(m.modal.title) + "\n\n" +
		m.modal.body + "\n\n" +
		m.styles.Help.Render("enter / esc to dismiss")
	box := m.styles.Modal.
		Width(min(max(m.width-8, 20), 72)).
		Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Document returns the document as last loaded or saved.
func (m Model) Document() *config.Document { return m.doc }

func (m Model) launch(t config.Tool) tea.Cmd {
	d, settings := m.dispatcher, m.doc.Settings
	return guard(func() tea.Msg {
		return messages.LaunchedMsg{Name: t.DisplayName(), Err: d.Launch(t, settings)}
	})
}

func (m Model) openFolder(t config.Tool) tea.Cmd {
	d := m.dispatcher
	return guard(func() tea.Msg {
		return messages.OpenedMsg{Target: strings.TrimSpace(t.Path), Err: d.OpenContaining(t)}
	})
}

func (m Model) openConfig() tea.Cmd {
	d, path := m.dispatcher, m.configPath
	return guard(func() tea.Msg {
		return messages.OpenedMsg{Target: path, Err: d.OpenPath(path)}
	})
}

func (m Model) reload() tea.Cmd {
	path := m.configPath
	return guard(func() tea.Msg {
		doc, err := config.Load(path)
		return messages.ConfigLoadedMsg{Doc: doc, Err: err}
	})
}

// saveTheme writes the document with the given theme. Only one save runs at a
// time so the file always ends up with the latest theme.
func (m Model) saveTheme(name string) tea.Cmd {
	path, doc := m.configPath, m.doc.WithTheme(name)
	return guard(func() tea.Msg {
		return messages.ConfigSavedMsg{Doc: doc, Err: config.Save(path, doc)}
	})
}

// guard runs cmd, turning a panic into a cmdPanicMsg that keeps the stack.
func guard(cmd tea.Cmd) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = cmdPanicMsg{rec: &crash.Recovered{Value: r, Stack: debug.Stack()}}
			}
		}()
		return cmd()
	}
}

func launchErrorTitle(err error) string {
	var (
		notFound    *launch.NotFoundError
		interpreter *launch.InterpreterNotFoundError
		unsupported *launch.UnsupportedTypeError
		failed      *launch.LaunchFailedError
	)
	switch {
	case errors.As(err, &interpreter):
		return "Interpreter Not Found"
	case errors.As(err, &notFound), errors.Is(err, launch.ErrNoPath):
		return "Missing File"
	case errors.As(err, &unsupported):
		return "Unsupported Type"
	case errors.As(err, &failed):
		return "Launch Failed"
	}
	return "Error"
}
