package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/blindtimer/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Clock screen
	Header       lipgloss.Style
	LevelLabel   lipgloss.Style
	Clock        lipgloss.Style
	ClockWarning lipgloss.Style
	ClockPaused  lipgloss.Style
	Blinds       lipgloss.Style
	Ante         lipgloss.Style
	BreakBanner  lipgloss.Style
	NextLevel    lipgloss.Style
	Finished     lipgloss.Style
	StatLabel    lipgloss.Style
	StatValue    lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	Separator        lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true),

		LevelLabel: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true).
			MarginBottom(1),

		Clock: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		ClockWarning: lipgloss.NewStyle().
			Foreground(ClockWarningColor).
			Bold(true),

		ClockPaused: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),

		Blinds: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true).
			MarginTop(1),

		Ante: lipgloss.NewStyle().
			Foreground(Peach),

		BreakBanner: lipgloss.NewStyle().
			Foreground(Base).
			Background(BreakColor).
			Bold(true).
			Padding(0, 2).
			MarginTop(1),

		NextLevel: lipgloss.NewStyle().
			Foreground(Overlay2).
			MarginTop(1),

		Finished: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true).
			MarginTop(1),

		StatLabel: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatValue: lipgloss.NewStyle().
			Foreground(Text),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// StatusBadge returns the status bar badge style for a timer status
func (s *Styles) StatusBadge(status domain.Status) lipgloss.Style {
	color, ok := StatusColors[status]
	if !ok {
		color = Overlay1
	}
	return s.StatusMode.Background(color)
}

// ClockFor picks the countdown style for the session state
func (s *Styles) ClockFor(status domain.Status, secondsRemaining, warningSeconds int) lipgloss.Style {
	switch {
	case status == domain.StatusPaused:
		return s.ClockPaused
	case status == domain.StatusRunning && secondsRemaining <= warningSeconds:
		return s.ClockWarning
	default:
		return s.Clock
	}
}
