// Package statusbar renders the bottom status line.
package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/types"
	"github.com/riordanpawley/blindtimer/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode    types.Mode
	status  domain.Status
	level   int
	levels  int
	elapsed int
	width   int
	styles  *styles.Styles
}

// New creates a new StatusBar
func New(mode types.Mode, status domain.Status, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		status: status,
		width:  width,
		styles: styles,
	}
}

// WithProgress sets the level position and elapsed time shown on the right
func (sb StatusBar) WithProgress(levelIndex, levels, elapsed int) StatusBar {
	sb.level = levelIndex
	sb.levels = levels
	sb.elapsed = elapsed
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	badge := sb.styles.StatusBadge(sb.status).Render(sb.status.Icon() + " " + sb.badgeText())

	hints := GetHints(sb.mode, sb.status)
	content := badge
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, badge, separator, sb.styles.StatusHint.Render(hints))
	}

	if sb.levels > 0 {
		info := sb.styles.StatusInfo.Render(fmt.Sprintf("level %d/%d  elapsed %s",
			sb.level+1, sb.levels, domain.FormatClock(sb.elapsed)))
		gap := sb.width - lipgloss.Width(content) - lipgloss.Width(info) - 2
		if gap > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Left, content, lipgloss.NewStyle().Width(gap).Render(""), info)
		}
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

func (sb StatusBar) badgeText() string {
	if sb.mode == types.ModeTimer {
		return sb.status.String()
	}
	return sb.mode.String()
}
