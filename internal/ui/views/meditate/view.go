package meditate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "serene/internal/modules/progress/dto"
	sessiondto "serene/internal/modules/session/dto"
	themedto "serene/internal/modules/theme/dto"
	"serene/internal/ui/components"
	"serene/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// Port is the subset of the session use-case driven by this view.
type Port interface {
	State(ctx context.Context) (sessiondto.StateOutput, error)
	SelectTheme(ctx context.Context, themeID string) (sessiondto.StateOutput, error)
	SelectDuration(ctx context.Context, d time.Duration) (sessiondto.StateOutput, error)
	UpdateIntensity(ctx context.Context, level float64) (sessiondto.StateOutput, error)
	TogglePlayback(ctx context.Context) (sessiondto.StateOutput, error)
	Tick(ctx context.Context, generation uint64) (sessiondto.TickOutput, error)
	EndSession(ctx context.Context) (sessiondto.StateOutput, error)
}

type ThemePort interface {
	List(ctx context.Context) ([]themedto.ThemeOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// StateMsg carries the session state after a command.
type StateMsg struct {
	State sessiondto.StateOutput
	Err   error
}

// TickMsg fires once a second for the countdown with the given generation.
type TickMsg struct{ Generation uint64 }

// TickedMsg is the outcome of one countdown tick.
type TickedMsg struct {
	Out sessiondto.TickOutput
	Err error
}

// CompletedMsg is emitted when a session runs to zero.
type CompletedMsg struct {
	Theme    string
	Recorded *progressdto.RecordOutput
}

type themesLoadedMsg struct {
	themes []themedto.ThemeOutput
	err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

var presets = []time.Duration{5 * time.Minute, 10 * time.Minute, 15 * time.Minute, 20 * time.Minute, 30 * time.Minute}

const intensityStep = 0.1

// Model is the Meditate tab: theme, countdown, intensity and the ambient field.
type Model struct {
	port    Port
	themes  ThemePort
	catalog []themedto.ThemeOutput
	state   sessiondto.StateOutput
	bar     progress.Model
	ambient components.Ambient
	frame   int
	// scheduled is the generation that already has a tick in flight.
	scheduled uint64
	err       error
	width     int
	height    int
}

func New(port Port, themes ThemePort) Model {
	return Model{
		port:    port,
		themes:  themes,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		ambient: components.Ambient{Seed: 1},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadThemesCmd(), m.stateCmd(func(ctx context.Context) (sessiondto.StateOutput, error) {
		return m.port.State(ctx)
	}))
}

// State is the last session state the view has seen.
func (m Model) State() sessiondto.StateOutput { return m.state }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(m.width-8, 60))

	case themesLoadedMsg:
		m.err = msg.err
		m.catalog = msg.themes

	case StateMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.apply(msg.State)
		return m, m.scheduleTick()

	case TickMsg:
		m.frame++
		return m, m.tickCmd(msg.Generation)

	case TickedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.apply(msg.Out.State)
		if msg.Out.Completed {
			out := msg.Out
			return m, func() tea.Msg {
				return CompletedMsg{Theme: out.State.Theme.Name, Recorded: out.Recorded}
			}
		}
		if msg.Out.Accepted && m.state.Running {
			return m, nextTick(m.state.Generation)
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) apply(state sessiondto.StateOutput) {
	m.state = state
	m.ambient.Style = theme.Accent(state.Theme.SecondaryColor)
	m.ambient.Seed = seedFor(state.Theme.ID)
}

// scheduleTick starts the one-second chain for a newly running generation.
func (m *Model) scheduleTick() tea.Cmd {
	if !m.state.Running || m.scheduled == m.state.Generation {
		return nil
	}
	m.scheduled = m.state.Generation
	return nextTick(m.state.Generation)
}

func nextTick(generation uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Generation: generation}
	})
}

func (m Model) handleKey(key string) tea.Cmd {
	switch key {
	case " ", "p":
		return m.stateCmd(m.port.TogglePlayback)
	case "e":
		return m.stateCmd(m.port.EndSession)
	case "right", "l":
		return m.selectThemeCmd(1)
	case "left", "h":
		return m.selectThemeCmd(-1)
	case "up", "k":
		return m.intensityCmd(m.state.Intensity + intensityStep)
	case "down", "j":
		return m.intensityCmd(m.state.Intensity - intensityStep)
	case "1", "2", "3", "4", "5":
		d := presets[int(key[0]-'1')]
		return m.stateCmd(func(ctx context.Context) (sessiondto.StateOutput, error) {
			return m.port.SelectDuration(ctx, d)
		})
	}
	return nil
}

// ─── commands ────────────────────────────────────────────────────────────────

// SelectTheme, SelectDuration and SetIntensity are used by the command palette.
func (m Model) SelectTheme(id string) tea.Cmd {
	return m.stateCmd(func(ctx context.Context) (sessiondto.StateOutput, error) {
		return m.port.SelectTheme(ctx, id)
	})
}

func (m Model) SelectDuration(d time.Duration) tea.Cmd {
	return m.stateCmd(func(ctx context.Context) (sessiondto.StateOutput, error) {
		return m.port.SelectDuration(ctx, d)
	})
}

func (m Model) SetIntensity(level float64) tea.Cmd {
	return m.stateCmd(func(ctx context.Context) (sessiondto.StateOutput, error) {
		return m.port.UpdateIntensity(ctx, level)
	})
}

func (m Model) EndSession() tea.Cmd { return m.stateCmd(m.port.EndSession) }

func (m Model) stateCmd(fn func(context.Context) (sessiondto.StateOutput, error)) tea.Cmd {
	return func() tea.Msg {
		state, err := fn(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) tickCmd(generation uint64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Tick(context.Background(), generation)
		return TickedMsg{Out: out, Err: err}
	}
}

func (m Model) selectThemeCmd(step int) tea.Cmd {
	if len(m.catalog) == 0 {
		return nil
	}
	idx := 0
	for i, t := range m.catalog {
		if t.ID == m.state.Theme.ID {
			idx = i
			break
		}
	}
	next := m.catalog[(idx+step+len(m.catalog))%len(m.catalog)]
	return m.SelectTheme(next.ID)
}

// intensityCmd clamps here so the use-case only ever sees valid levels.
func (m Model) intensityCmd(level float64) tea.Cmd {
	level = float64(int(level*10+0.5)) / 10
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	return m.SetIntensity(level)
}

func (m Model) loadThemesCmd() tea.Cmd {
	return func() tea.Msg {
		if m.themes == nil {
			return themesLoadedMsg{}
		}
		themes, err := m.themes.List(context.Background())
		return themesLoadedMsg{themes: themes, err: err}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	s := m.state
	accent := theme.Accent(s.Theme.PrimaryColor).Bold(true)

	header := accent.Render(strings.TrimSpace(s.Theme.Icon+" "+s.Theme.Name)) + "  " + theme.Muted.Render(s.Theme.Description)
	benefits := theme.Muted.Render(strings.Join(s.Theme.Benefits, " · "))

	status := "paused"
	switch {
	case s.Running:
		status = "breathing"
	case !s.SessionActive:
		status = "ready"
	}
	clock := s.Duration
	if s.SessionActive {
		clock = s.Remaining
	}
	timer := theme.Title.Render(formatClock(clock)) + "  " + theme.Muted.Render(status)

	elapsed := 0.0
	if s.SessionActive && s.Length > 0 {
		elapsed = 1 - float64(s.Remaining)/float64(s.Length)
	}
	controls := []string{
		timer,
		m.bar.ViewAs(elapsed),
		fmt.Sprintf("intensity %s %3.0f%%", meter(s.Intensity, 10), s.Intensity*100),
		"duration  " + m.renderPresets(),
	}
	if m.err != nil {
		controls = append(controls, theme.Hot.Render(m.err.Error()))
	}
	footer := theme.Muted.Render("space: play/pause  ←/→: theme  ↑/↓: intensity  1-5: duration  e: end")

	fixed := lipgloss.JoinVertical(lipgloss.Left, header, benefits, "")
	panel := theme.Pane.Render(strings.Join(controls, "\n"))
	fieldH := m.height - lipgloss.Height(fixed) - lipgloss.Height(panel) - 2
	field := m.ambient.Render(max(m.width-4, 0), max(fieldH, 0), s.Intensity, m.frame)

	return lipgloss.JoinVertical(lipgloss.Left, fixed, field, panel, footer)
}

func (m Model) renderPresets() string {
	parts := make([]string, len(presets))
	for i, d := range presets {
		label := fmt.Sprintf("%d:%dm", i+1, int(d/time.Minute))
		if d == m.state.Duration {
			parts[i] = theme.Hot.Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func meter(level float64, width int) string {
	filled := int(level*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func seedFor(id string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h ^= uint32(id[i])
		h *= 16777619
	}
	return h
}
