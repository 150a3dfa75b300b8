package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "serene/internal/modules/progress/dto"
	"serene/internal/ui/theme"
)

// Port is the subset of the progress handler this view needs. month is
// YYYY-MM, or empty for the current month.
type Port interface {
	Snapshot(ctx context.Context) (progressdto.SnapshotOutput, error)
	Calendar(ctx context.Context, month string) (progressdto.CalendarOutput, error)
}

// LoadedMsg carries a fresh snapshot and the calendar for the shown month.
type LoadedMsg struct {
	Snapshot progressdto.SnapshotOutput
	Calendar progressdto.CalendarOutput
	Err      error
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Model is the Progress tab: weekly minutes, streak, achievements and the
// month heatmap.
type Model struct {
	port     Port
	now      func() time.Time
	month    string
	snapshot progressdto.SnapshotOutput
	calendar progressdto.CalendarOutput
	loaded   bool
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, now: time.Now}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

// Reload refetches the snapshot and the shown month.
func (m Model) Reload() tea.Cmd {
	month := m.month
	return func() tea.Msg {
		ctx := context.Background()
		snap, err := m.port.Snapshot(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		cal, err := m.port.Calendar(ctx, month)
		return LoadedMsg{Snapshot: snap, Calendar: cal, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.snapshot = msg.Snapshot
			m.calendar = msg.Calendar
			m.month = fmt.Sprintf("%04d-%02d", msg.Calendar.Year, int(msg.Calendar.Month))
			m.loaded = true
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "[":
			return m.shift(-1)
		case "]":
			return m.shift(1)
		case "r":
			return m, m.Reload()
		}
	}
	return m, nil
}

// ShowMonth switches the heatmap to a YYYY-MM month.
func (m Model) ShowMonth(month string) (Model, tea.Cmd) {
	m.month = month
	return m, m.Reload()
}

func (m Model) shift(delta int) (Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	first := time.Date(m.calendar.Year, m.calendar.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return m.ShowMonth(first.Format("2006-01"))
}

func (m Model) View() string {
	if !m.loaded {
		if m.err != nil {
			return theme.Hot.Render("progress unavailable: " + m.err.Error())
		}
		return theme.Muted.Render("loading progress…")
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStats(),
		"",
		m.renderWeek(),
		"",
		m.renderAchievements(),
	)
	right := m.renderHeatmap()
	body := lipgloss.JoinHorizontal(lipgloss.Top, theme.Pane.Render(left), "  ", theme.Pane.Render(right))
	footer := theme.Muted.Render("[/]: month  r: reload")
	if m.err != nil {
		footer = theme.Hot.Render(m.err.Error()) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) renderStats() string {
	s := m.snapshot
	return strings.Join([]string{
		theme.Title.Render("Practice"),
		fmt.Sprintf("total    %dh %02dm", s.TotalMinutes/60, s.TotalMinutes%60),
		fmt.Sprintf("sessions %d", s.SessionCount),
		fmt.Sprintf("streak   %s", theme.Hot.Render(fmt.Sprintf("%d day(s)", s.StreakDays))),
		fmt.Sprintf("themes   %d tried", len(s.ThemesTried)),
	}, "\n")
}

func (m Model) renderWeek() string {
	s := m.snapshot
	peak := 1
	for _, v := range s.WeeklyMinutes {
		peak = max(peak, v)
	}
	lines := []string{theme.Title.Render("Week of ") + theme.Muted.Render(s.WeekStart)}
	for i, v := range s.WeeklyMinutes {
		bar := strings.Repeat("▇", v*20/peak)
		if v > 0 && bar == "" {
			bar = "▏"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", weekdays[i], theme.Good.Render(fmt.Sprintf("%-20s", bar)), theme.Muted.Render(fmt.Sprintf("%3dm", v))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAchievements() string {
	lines := []string{theme.Title.Render("Achievements")}
	for _, a := range m.snapshot.Achievements {
		if a.Unlocked {
			lines = append(lines, fmt.Sprintf("%s %s %s", a.Icon, theme.Hot.Render(a.Title), theme.Muted.Render(a.UnlockedAt.Format("2 Jan 2006"))))
		} else {
			lines = append(lines, theme.Muted.Render("· "+a.Title+": "+a.Description))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHeatmap() string {
	return RenderHeatmap(m.calendar, m.now().Format("2006-01-02"))
}

// RenderHeatmap draws the 6×7 month grid; today is the YYYY-MM-DD date to
// highlight.
func RenderHeatmap(cal progressdto.CalendarOutput, today string) string {
	var sb strings.Builder
	title := time.Date(cal.Year, cal.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	sb.WriteString(theme.Title.Render(title) + "\n")
	for _, d := range weekdays {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-4s", d[:2])))
	}
	sb.WriteString("\n")
	for i, cell := range cal.Cells {
		switch {
		case cell == nil:
			sb.WriteString("    ")
		case cell.Date == today:
			sb.WriteString(theme.HeatToday.Render(fmt.Sprintf("%3d", cell.Day)) + " ")
		case cell.Completed:
			sb.WriteString(theme.HeatDone.Render(fmt.Sprintf("%3d", cell.Day)) + " ")
		default:
			sb.WriteString(theme.HeatEmpty.Render(fmt.Sprintf("%3d", cell.Day)) + " ")
		}
		if i%7 == 6 && i < len(cal.Cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
