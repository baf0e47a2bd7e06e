package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/types"
)

// levelsVisible is how many rows the level list shows at once
const levelsVisible = 12

// LevelsOverlay is a read-only view of the whole structure
type LevelsOverlay struct {
	table   domain.Table
	current int
	offset  int
	styles  *Styles
}

// NewLevelsOverlay lists table with the current level marked and in view
func NewLevelsOverlay(table domain.Table, current int) *LevelsOverlay {
	l := &LevelsOverlay{
		table:   table.Clone(),
		current: current,
		styles:  New(),
	}
	if current >= levelsVisible {
		l.offset = current - levelsVisible/2
	}
	l.clampOffset()
	return l
}

// Init initializes the overlay
func (l *LevelsOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (l *LevelsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	switch key.String() {
	case "esc", "q", "L", "enter":
		return l, closeCmd
	case "j", "down":
		l.offset++
	case "k", "up":
		l.offset--
	case "g", "home":
		l.offset = 0
	case "G", "end":
		l.offset = len(l.table)
	}
	l.clampOffset()
	return l, nil
}

func (l *LevelsOverlay) clampOffset() {
	maxOffset := max(0, len(l.table)-levelsVisible)
	l.offset = max(0, min(l.offset, maxOffset))
}

// View renders the level list
func (l *LevelsOverlay) View() string {
	var b strings.Builder

	header := fmt.Sprintf("  %-4s %-15s %-7s %s", "#", "Blinds", "Ante", "Minutes")
	b.WriteString(l.styles.MenuHeader.Render(header))
	b.WriteString("\n")

	end := min(l.offset+levelsVisible, len(l.table))
	for i := l.offset; i < end; i++ {
		b.WriteString(l.row(i))
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("%d levels, %s total", len(l.table), domain.FormatTotal(l.table.TotalDuration()))
	b.WriteString(l.styles.Footer.Render(footer))
	return b.String()
}

func (l *LevelsOverlay) row(i int) string {
	level := l.table[i]

	marker := "  "
	if i == l.current {
		marker = "▸ "
	}

	ante := "-"
	if level.Ante > 0 {
		ante = fmt.Sprintf("%d", level.Ante)
	}
	if level.IsBreak {
		ante = ""
	}

	line := fmt.Sprintf("%s%-4d %-15s %-7s %d", marker, i+1, level.Blinds(), ante, level.DurationMinutes)
	switch {
	case i == l.current:
		return l.styles.RowCurrent.Render(line)
	case level.IsBreak:
		return l.styles.RowBreak.Render(line)
	default:
		return l.styles.MenuItem.Render(line)
	}
}

// Title returns the overlay title
func (l *LevelsOverlay) Title() string {
	return "Blind Structure"
}

// Size returns the overlay dimensions
func (l *LevelsOverlay) Size() (width, height int) {
	return 50, min(len(l.table), levelsVisible) + 6
}

// Mode implements Overlay
func (l *LevelsOverlay) Mode() types.Mode {
	return types.ModeLevels
}
