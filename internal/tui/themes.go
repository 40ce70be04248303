package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines a color scheme for the baker
type Theme struct {
	Name            string
	PrimaryAccent   string // Titles, spinner
	SecondaryAccent string // Quality lines, picker border
	Success         string // Accepted counts, saved path
	ErrorText       string // Errors and interrupts
	LabelText       string // Labels, prompts, help text
	Password        string // Generated passwords
	Border          string // Summary box border
	SelectedBg      string // Selected dictionary background
}

// Available themes
var Themes = map[string]Theme{
	"default": {
		Name:            "Default",
		PrimaryAccent:   "#00d7d7", // Cyan
		SecondaryAccent: "#d75fd7", // Magenta
		Success:         "#5fd75f", // Green
		ErrorText:       "#ff5f5f", // Bright red
		LabelText:       "#6c6c6c", // Gray
		Password:        "#ffd75f", // Yellow
		Border:          "#5f87d7", // Blue
		SelectedBg:      "#303030", // Dark gray
	},
	"gruvbox": {
		Name:            "Gruvbox",
		PrimaryAccent:   "#d65d0e",
		SecondaryAccent: "#b16286",
		Success:         "#98971a",
		ErrorText:       "#cc241d",
		LabelText:       "#928374",
		Password:        "#d79921",
		Border:          "#458588",
		SelectedBg:      "#3c3836",
	},
	"tokyonight": {
		Name:            "Tokyo Night",
		PrimaryAccent:   "#7aa2f7",
		SecondaryAccent: "#bb9af7",
		Success:         "#9ece6a",
		ErrorText:       "#f7768e",
		LabelText:       "#565f89",
		Password:        "#e0af68",
		Border:          "#7dcfff",
		SelectedBg:      "#292e42",
	},
	"catppuccin": {
		Name:            "Catppuccin",
		PrimaryAccent:   "#cba6f7", // Mauve
		SecondaryAccent: "#f5c2e7", // Pink
		Success:         "#a6e3a1", // Green
		ErrorText:       "#f38ba8", // Red
		LabelText:       "#6c7086", // Overlay0
		Password:        "#f9e2af", // Yellow
		Border:          "#89b4fa", // Blue
		SelectedBg:      "#313244", // Surface0
	},
}

// ThemeNames returns the list of available theme names
var ThemeNames = []string{"default", "gruvbox", "tokyonight", "catppuccin"}

// CurrentTheme holds the active theme
var CurrentTheme = Themes["default"]

var (
	titleStyle      lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	passwordStyle   lipgloss.Style
	qualityStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	boxStyle        lipgloss.Style
	searchBoxStyle  lipgloss.Style
	selectedStyle   lipgloss.Style
	unselectedStyle lipgloss.Style
	spinnerStyle    lipgloss.Style
	graphStyle      lipgloss.Style
	helpStyle       lipgloss.Style
)

// SetTheme updates the current theme and regenerates all styles.
// Unknown names are ignored and false is returned.
func SetTheme(name string) bool {
	theme, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentTheme = theme
	regenerateStyles()
	return true
}

// regenerateStyles updates all lipgloss styles with current theme colors
func regenerateStyles() {
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.PrimaryAccent)).
		MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.LabelText))

	valueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.Success))

	passwordStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Password))

	qualityStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.SecondaryAccent))

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.ErrorText))

	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.Border)).
		Padding(1, 2)

	searchBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.SecondaryAccent)).
		Padding(0, 1).
		MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.Success)).
		Background(lipgloss.Color(CurrentTheme.SelectedBg))

	unselectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.LabelText))

	spinnerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.SecondaryAccent))

	graphStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.PrimaryAccent))

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.LabelText)).
		MarginTop(1)
}

// Initialize styles with default theme
func init() {
	regenerateStyles()
}
