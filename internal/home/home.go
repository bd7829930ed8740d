package home

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ryan-rushton/unilaunch/internal/config"
	"github.com/ryan-rushton/unilaunch/internal/filter"
	"github.com/ryan-rushton/unilaunch/internal/messages"
	"github.com/ryan-rushton/unilaunch/internal/styles"
)

const (
	headerHeight = 4 // title, search, category, blank
	footerHeight = 3 // blank, status, help
	minCardWidth = 30
)

type focus int

const (
	focusSearch focus = iota
	focusCards
)

// Model is the card view: search and category filters over the tool list.
type Model struct {
	tools      []config.Tool
	categories []string
	category   string
	visible    []int // indexes into tools, document order
	cursor     int   // index into visible
	focus      focus
	search     textinput.Model
	viewport   viewport.Model
	keys       KeyMap
	help       help.Model
	styles     styles.Styles
	status     string
	width      int
	height     int
}

func New(tools []config.Tool, st styles.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "type to filter, enter launches the first match"
	ti.CharLimit = 200
	ti.Focus()

	m := Model{
		category: filter.All,
		search:   ti,
		viewport: viewport.New(80, 20),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		styles:   st,
		width:    80,
		height:   24,
	}
	m.styleHelp()
	return m.WithTools(tools)
}

// WithTools replaces the tool list, keeping the filters where they still apply.
func (m Model) WithTools(tools []config.Tool) Model {
	m.tools = tools
	m.categories = filter.Categories(tools)
	if !slices.Contains(m.categories, m.category) {
		m.category = filter.All
	}
	m.refilter()
	return m
}

func (m Model) WithStyles(st styles.Styles) Model {
	m.styles = st
	m.styleHelp()
	m.layout()
	return m
}

func (m *Model) styleHelp() {
	m.help.Styles.ShortKey = m.styles.Subtitle
	m.help.Styles.ShortDesc = m.styles.Help
	m.help.Styles.ShortSeparator = m.styles.Dimmed
	m.help.Styles.Ellipsis = m.styles.Dimmed
	m.help.Styles.FullKey = m.styles.Subtitle
	m.help.Styles.FullDesc = m.styles.Help
	m.help.Styles.FullSeparator = m.styles.Dimmed
}

func (m Model) WithStatus(s string) Model {
	m.status = s
	return m
}

// WithSize sets the screen size in cells.
func (m Model) WithSize(width, height int) Model {
	m.width, m.height = width, height
	m.layout()
	return m
}

// VisibleTools returns the tools passing the current filters.
func (m Model) VisibleTools() []config.Tool {
	out := make([]config.Tool, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.tools[idx]
	}
	return out
}

func (m Model) Category() string { return m.category }

func (m Model) Query() string { return m.search.Value() }

func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.WithSize(msg.Width, msg.Height), nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.focusCards()
			m.move(-1)
		case tea.MouseButtonWheelDown:
			m.focusCards()
			m.move(1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusSearch {
		return m.updateSearch(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.FocusSearch):
		m.focusSearch()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.NextCategory):
		m.shiftCategory(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevCategory):
		m.shiftCategory(-1)
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, send(messages.ReloadMsg{})
	case key.Matches(msg, m.keys.CycleTheme):
		return m, send(messages.CycleThemeMsg{})
	case key.Matches(msg, m.keys.OpenConfig):
		return m, send(messages.OpenConfigMsg{})
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleCardKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.LaunchFirst):
		return m.launchFirstVisible()
	case key.Matches(msg, m.keys.ClearSearch):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refilter()
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleFocus), msg.Type == tea.KeyDown:
		if len(m.visible) > 0 {
			m.focusCards()
		}
		return m, nil
	}
	return m.updateSearch(msg)
}

func (m Model) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor == 0 {
			m.focusSearch()
			return m, textinput.Blink
		}
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Launch):
		if t, ok := m.selected(); ok {
			return m, send(messages.LaunchMsg{Tool: t})
		}
	case key.Matches(msg, m.keys.OpenFolder):
		if t, ok := m.selected(); ok {
			return m, send(messages.OpenFolderMsg{Tool: t})
		}
	case key.Matches(msg, m.keys.SearchFromCards), key.Matches(msg, m.keys.ToggleFocus):
		m.focusSearch()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.CardNextCat):
		m.shiftCategory(1)
	case key.Matches(msg, m.keys.CardPrevCat):
		m.shiftCategory(-1)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// launchFirstVisible launches the first card surviving the filters.
func (m Model) launchFirstVisible() (tea.Model, tea.Cmd) {
	if len(m.visible) == 0 {
		m.status = "No tools match your filters."
		return m, nil
	}
	t := m.tools[m.visible[0]]
	return m, send(messages.LaunchMsg{Tool: t})
}

func (m Model) selected() (config.Tool, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return config.Tool{}, false
	}
	return m.tools[m.visible[m.cursor]], true
}

func (m *Model) focusSearch() {
	m.focus = focusSearch
	m.search.Focus()
	m.layout()
}

func (m *Model) focusCards() {
	if len(m.visible) == 0 {
		return
	}
	m.focus = focusCards
	m.search.Blur()
	m.layout()
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.layout()
}

func (m *Model) shiftCategory(delta int) {
	if len(m.categories) == 0 {
		return
	}
	idx := 0
	for i, c := range m.categories {
		if c == m.category {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(m.categories)) % len(m.categories)
	m.category = m.categories[idx]
	m.refilter()
}

// refilter recomputes the visible set from the current filters.
func (m *Model) refilter() {
	m.visible = filter.Visible(m.tools, m.search.Value(), m.category)
	m.clampCursor()
	if len(m.visible) == 0 && m.focus == focusCards {
		m.focus = focusSearch
		m.search.Focus()
	}
	m.layout()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// layout sizes the viewport and scrolls it so the selected card is shown.
func (m *Model) layout() {
	m.help.Width = m.width
	m.viewport.Width = max(m.width, minCardWidth)
	m.viewport.Height = max(m.height-headerHeight-footerHeight, 3)

	content, spans := m.renderCards(m.viewport.Width)
	m.viewport.SetContent(content)

	if m.cursor >= len(spans) {
		return
	}
	s := spans[m.cursor]
	switch {
	case s.top < m.viewport.YOffset:
		m.viewport.SetYOffset(s.top)
	case s.bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(s.bottom - m.viewport.Height)
	}
}

// span is the [top, bottom) line range of a rendered card.
type span struct{ top, bottom int }

func (m Model) renderCards(width int) (string, []span) {
	if len(m.visible) == 0 {
		return m.styles.Dimmed.Render("No tools match your filters."), nil
	}

	cards := make([]string, 0, len(m.visible))
	spans := make([]span, 0, len(m.visible))
	line := 0
	for i, idx := range m.visible {
		card := m.renderCard(m.tools[idx], m.focus == focusCards && i == m.cursor, width)
		h := lipgloss.Height(card)
		spans = append(spans, span{top: line, bottom: line + h})
		line += h
		cards = append(cards, card)
	}
	return strings.Join(cards, "\n"), spans
}

func (m Model) renderCard(t config.Tool, selected bool, width int) string {
	box := m.styles.Card
	if selected {
		box = m.styles.CardSelected
	}
	inner := max(width-box.GetHorizontalFrameSize(), 10)

	kind := strings.ToUpper(strings.TrimSpace(t.Type))
	if kind == "" {
		kind = "?"
	}
	name := m.styles.CardTitle.Render(t.DisplayName())
	badge := m.styles.Badge.Render(fmt.Sprintf("[%s — %s]", t.CategoryOrDefault(), kind))
	gap := max(inner-lipgloss.Width(name)-lipgloss.Width(badge), 1)

	lines := []string{name + strings.Repeat(" ", gap) + badge}
	if desc := strings.TrimSpace(t.Description); desc != "" {
		lines = append(lines, lipgloss.NewStyle().Width(inner).Render(desc))
	}
	if p := strings.TrimSpace(t.Path); p != "" {
		lines = append(lines, m.styles.Path.Width(inner).Render(p))
	}
	if selected {
		lines = append(lines, m.styles.Help.Render("enter launch · o open folder"))
	}

	return box.Width(width - box.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("🧰 Unified Launcher"))
	b.WriteString("  ")
	b.WriteString(m.styles.Dimmed.Render(fmt.Sprintf("%d of %d tools · theme %s", len(m.visible), len(m.tools), m.styles.Theme)))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderCategories())
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Status.MaxWidth(m.width).Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.helpView())

	return b.String()
}

func (m Model) renderCategories() string {
	parts := make([]string, len(m.categories))
	for i, c := range m.categories {
		if c == m.category {
			parts[i] = m.styles.Selected.Render("[" + c + "]")
		} else {
			parts[i] = m.styles.Dimmed.Render(c)
		}
	}
	line := m.styles.Subtitle.Render("Category: ") + strings.Join(parts, " ")
	return lipgloss.NewStyle().MaxWidth(max(m.width, minCardWidth)).Render(line)
}

func (m Model) helpView() string {
	if m.focus == focusCards {
		return m.help.View(cardKeys{m.keys})
	}
	return m.help.View(m.keys)
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
