package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"serene/internal/ui/components"
	"serene/internal/ui/theme"
	journalview "serene/internal/ui/views/journal"
	meditateview "serene/internal/ui/views/meditate"
	progressview "serene/internal/ui/views/progress"
)

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabMeditate tabID = iota
	tabProgress
	tabJournal
	tabCount
)

var tabLabels = [tabCount]string{"Meditate", "Progress", "Journal"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab       key.Binding
	Help      key.Binding
	Palette   key.Binding
	Quit      key.Binding
	Toggle    key.Binding
	Theme     key.Binding
	Intensity key.Binding
	Duration  key.Binding
	End       key.Binding
	Month     key.Binding
	NewEntry  key.Binding
	Save      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
		Theme:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "theme")),
		Intensity: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "intensity")),
		Duration:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "duration")),
		End:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Month:     key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "month")),
		NewEntry:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save entry")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Theme, k.Intensity, k.Duration, k.End},
		{k.Month, k.NewEntry, k.Save},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; the tabs own their own state.
type Model struct {
	meditateView meditateview.Model
	progressView progressview.Model
	journalView  journalview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(
	session meditateview.Port,
	themes meditateview.ThemePort,
	progress progressview.Port,
	journal journalview.Port,
) Model {
	return Model{
		meditateView: meditateview.New(session, themes),
		progressView: progressview.New(progress),
		journalView:  journalview.New(journal),
		activeTab:    tabMeditate,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(paletteHints(themes)),
		status:       "ready",
	}
}

func paletteHints(themes meditateview.ThemePort) []string {
	hints := []string{}
	if themes != nil {
		if list, err := themes.List(context.Background()); err == nil {
			for _, t := range list {
				hints = append(hints, "theme "+t.ID)
			}
		}
	}
	hints = append(hints,
		"duration 5", "duration 10", "duration 15", "duration 20", "duration 30",
		"intensity 0.5",
		"end",
		"month "+time.Now().Format("2006-01"),
	)
	for _, md := range journalview.Moods {
		hints = append(hints, "journal "+md.ID)
	}
	return hints
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.meditateView.Init(),
		m.progressView.Init(),
		m.journalView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	// The palette owns the keyboard while open; countdown and load messages
	// still flow to the tabs below.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Session messages reach the Meditate view whichever tab is shown, so
	// the countdown keeps running.
	case meditateview.StateMsg, meditateview.TickMsg, meditateview.TickedMsg:
		m.meditateView, cmd = m.meditateView.Update(msg)
		return m, cmd

	case meditateview.CompletedMsg:
		m.status = completionStatus(msg)
		state := m.meditateView.State()
		m.journalView.SetContext(state.Theme.ID, int(state.Length/time.Second))
		return m, m.progressView.Reload()

	case progressview.LoadedMsg:
		m.progressView, cmd = m.progressView.Update(msg)
		return m, cmd

	case journalview.LoadedMsg, journalview.SavedMsg:
		if saved, ok := msg.(journalview.SavedMsg); ok && saved.Err == nil {
			m.status = "journal entry saved"
		}
		m.journalView, cmd = m.journalView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// The journal composer takes every key except ctrl+c.
		if m.activeTab == tabJournal && m.journalView.Capturing() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	if m.palette.Visible() {
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	switch m.activeTab {
	case tabMeditate:
		m.meditateView, cmd = m.meditateView.Update(msg)
	case tabProgress:
		m.progressView, cmd = m.progressView.Update(msg)
	case tabJournal:
		m.journalView, cmd = m.journalView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabMeditate:
		return m.meditateView.View()
	case tabProgress:
		return m.progressView.View()
	case tabJournal:
		return m.journalView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "serene  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if s := m.meditateView.State(); s.Running {
		left = theme.Hot.Render("● "+s.Theme.Name) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  ::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch parts[0] {
	case "theme":
		m.activeTab = tabMeditate
		return m, m.meditateView.SelectTheme(arg)

	case "duration":
		minutes, err := strconv.Atoi(arg)
		if err != nil {
			m.status = "usage: duration <5|10|15|20|30>"
			return m, nil
		}
		m.activeTab = tabMeditate
		return m, m.meditateView.SelectDuration(time.Duration(minutes) * time.Minute)

	case "intensity":
		level, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			m.status = "usage: intensity <0..1>"
			return m, nil
		}
		m.activeTab = tabMeditate
		return m, m.meditateView.SetIntensity(level)

	case "end":
		return m, m.meditateView.EndSession()

	case "month":
		if _, err := time.Parse("2006-01", arg); err != nil {
			m.status = "usage: month YYYY-MM"
			return m, nil
		}
		m.activeTab = tabProgress
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.ShowMonth(arg)
		return m, cmd

	case "journal":
		m.activeTab = tabJournal
		return m, m.journalView.Compose(arg)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.meditateView, _ = m.meditateView.Update(sz)
	m.progressView, _ = m.progressView.Update(sz)
	m.journalView, _ = m.journalView.Update(sz)
}

func completionStatus(msg meditateview.CompletedMsg) string {
	status := "session complete: " + msg.Theme
	if msg.Recorded == nil {
		return status + " (not recorded)"
	}
	status += fmt.Sprintf(", streak %d", msg.Recorded.Snapshot.StreakDays)
	for _, a := range msg.Recorded.NewlyUnlocked {
		status += "  " + a.Icon + " " + a.Title
	}
	return status
}
