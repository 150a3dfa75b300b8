package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	journaldto "serene/internal/modules/journal/dto"
	"serene/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context) ([]journaldto.EntryOutput, error)
	Add(ctx context.Context, mood, themeID string, durationSeconds int, notes string) (journaldto.EntryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Entries []journaldto.EntryOutput
	Err     error
}

type SavedMsg struct {
	Entry journaldto.EntryOutput
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

type pane int

const (
	paneBrowse pane = iota
	paneCompose
)

// Moods is the picker order; it matches the journal's accepted moods.
var Moods = []struct{ ID, Symbol string }{
	{"calm", "😌"}, {"happy", "😊"}, {"grateful", "🙏"}, {"neutral", "😐"},
	{"tired", "😴"}, {"anxious", "😰"}, {"sad", "😢"},
}

// Model is the Journal tab: a scrollable list of entries and a composer.
type Model struct {
	port     Port
	pane     pane
	entries  []journaldto.EntryOutput
	list     viewport.Model
	editor   textarea.Model
	mood     int
	themeID  string
	duration int
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	ta := textarea.New()
	ta.Placeholder = "How did the session feel?"
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false

	vp := viewport.New(0, 0)
	return Model{port: port, list: vp, editor: ta, themeID: "ocean"}
}

func (m Model) Init() tea.Cmd { return m.loadCmd() }

// SetContext records the theme and length of the latest session; new
// entries are attributed to them.
func (m *Model) SetContext(themeID string, durationSeconds int) {
	if themeID != "" {
		m.themeID = themeID
	}
	m.duration = durationSeconds
}

// Capturing reports whether the composer owns the keyboard.
func (m Model) Capturing() bool { return m.pane == paneCompose }

// Compose opens the editor with the given mood preselected.
func (m *Model) Compose(mood string) tea.Cmd {
	for i, md := range Moods {
		if md.ID == mood {
			m.mood = i
		}
	}
	m.pane = paneCompose
	m.editor.Reset()
	return m.editor.Focus()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.entries = msg.Entries
			m.list.SetContent(m.renderEntries())
		}
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.pane = paneBrowse
		m.editor.Blur()
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.pane == paneCompose {
			switch msg.String() {
			case "esc":
				m.pane = paneBrowse
				m.editor.Blur()
				return m, nil
			case "ctrl+s":
				return m, m.saveCmd()
			case "ctrl+right":
				m.mood = (m.mood + 1) % len(Moods)
				return m, nil
			case "ctrl+left":
				m.mood = (m.mood + len(Moods) - 1) % len(Moods)
				return m, nil
			}
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
		if msg.String() == "n" {
			return m, m.Compose(Moods[m.mood].ID)
		}
	}

	var cmd tea.Cmd
	if m.pane == paneCompose {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("Journal") + "  " + theme.Muted.Render(fmt.Sprintf("%d entries", len(m.entries)))
	var body, footer string
	if m.pane == paneCompose {
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderMoods(), "", m.editor.View())
		footer = "ctrl+←/→: mood  ctrl+s: save  esc: cancel"
	} else {
		body = m.list.View()
		footer = "n: new entry  ↑/↓: scroll"
	}
	if m.err != nil {
		footer = theme.Hot.Render(m.err.Error()) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, theme.Muted.Render(footer))
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.list.Width = m.width
	m.list.Height = max(m.height-4, 1)
	m.editor.SetWidth(max(m.width-4, 10))
	m.editor.SetHeight(max(m.height-8, 3))
	m.list.SetContent(m.renderEntries())
}

func (m Model) renderMoods() string {
	parts := make([]string, len(Moods))
	for i, md := range Moods {
		label := md.Symbol + " " + md.ID
		if i == m.mood {
			parts[i] = theme.Hot.Render("[" + label + "]")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return theme.Muted.Render("No entries yet. Press n after a session to write one.")
	}
	var sb strings.Builder
	for _, e := range m.entries {
		meta := fmt.Sprintf("%s · %s · %dm", e.Date.Format("Mon 2 Jan 2006 15:04"), e.ThemeID, e.DurationSeconds/60)
		sb.WriteString(e.MoodSymbol + " " + theme.Title.Render(e.Mood) + "  " + theme.Muted.Render(meta) + "\n")
		sb.WriteString(lipgloss.NewStyle().Width(max(m.width-4, 20)).PaddingLeft(3).Render(e.Notes) + "\n\n")
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.List(context.Background())
		return LoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) saveCmd() tea.Cmd {
	mood, themeID, duration, notes := Moods[m.mood].ID, m.themeID, m.duration, m.editor.Value()
	return func() tea.Msg {
		entry, err := m.port.Add(context.Background(), mood, themeID, duration, notes)
		return SavedMsg{Entry: entry, Err: err}
	}
}
