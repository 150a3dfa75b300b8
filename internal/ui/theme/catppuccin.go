package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, with the meditation themes' own colours layered on top
// through Accent.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Crust    = lipgloss.Color("#11111b")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Teal     = lipgloss.Color("#94e2d5")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)

	// HeatEmpty and HeatDone colour calendar cells without and with a
	// completed session.
	HeatEmpty = lipgloss.NewStyle().Foreground(Subtext0).Background(Surface0)
	HeatDone  = lipgloss.NewStyle().Foreground(Crust).Background(Green).Bold(true)
	HeatToday = lipgloss.NewStyle().Foreground(Crust).Background(Yellow).Bold(true)
)

// Accent renders in a meditation theme colour, falling back to Lavender for
// an empty hex value.
func Accent(hex string) lipgloss.Style {
	if hex == "" {
		return lipgloss.NewStyle().Foreground(Lavender)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
