package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/blindtimer/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	Title            lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	MenuHeader       lipgloss.Style
	Separator        lipgloss.Style
	Footer           lipgloss.Style

	// Level tables
	RowCurrent lipgloss.Style
	RowBreak   lipgloss.Style
	Cell       lipgloss.Style
	CellActive lipgloss.Style

	// Forms
	Label   lipgloss.Style
	Error   lipgloss.Style
	Notice  lipgloss.Style
	Spinner lipgloss.Style
}

// New creates a new Styles instance using the Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(styles.Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(styles.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(styles.Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Bold(true),

		MenuHeader: lipgloss.NewStyle().
			Foreground(styles.Sapphire).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(styles.Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),

		RowCurrent: lipgloss.NewStyle().
			Foreground(styles.Green).
			Bold(true),

		RowBreak: lipgloss.NewStyle().
			Foreground(styles.BreakColor),

		Cell: lipgloss.NewStyle().
			Foreground(styles.Text),

		CellActive: lipgloss.NewStyle().
			Foreground(styles.Base).
			Background(styles.Blue).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(styles.Subtext1).
			Width(18),

		Error: lipgloss.NewStyle().
			Foreground(styles.Red),

		Notice: lipgloss.NewStyle().
			Foreground(styles.Yellow),

		Spinner: lipgloss.NewStyle().
			Foreground(styles.Blue),
	}
}
