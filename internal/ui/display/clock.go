// Package display renders the main clock screen.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/blindtimer/internal/core/timer"
	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/ui/styles"
)

const (
	minBarWidth = 20
	maxBarWidth = 60
)

// ClockView draws the countdown, blinds and upcoming level of a session
type ClockView struct {
	styles         *styles.Styles
	bar            progress.Model
	warningSeconds int
	width          int
	height         int
}

// NewClockView creates a clock view. The warning threshold only affects color.
func NewClockView(s *styles.Styles, warningSeconds int) *ClockView {
	bar := progress.New(
		progress.WithSolidFill(string(styles.Green)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(styles.Surface1)
	return &ClockView{
		styles:         s,
		bar:            bar,
		warningSeconds: warningSeconds,
	}
}

// SetSize updates the area available to the view
func (v *ClockView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.bar.Width = max(minBarWidth, min(width*2/3, maxBarWidth))
}

// Render draws snap
func (v *ClockView) Render(snap timer.Snapshot) string {
	state := snap.State
	current := snap.Current()

	sections := []string{
		v.styles.LevelLabel.Render(v.levelLabel(snap)),
		v.styles.ClockFor(state.Status, state.SecondsRemaining, v.warningSeconds).
			Render(BigText(domain.FormatClock(state.SecondsRemaining))),
		"",
		v.bar.ViewAs(snap.Progress()),
	}

	if current.IsBreak {
		sections = append(sections, v.styles.BreakBanner.Render("BREAK"))
	} else {
		blinds := v.styles.Blinds.Render(current.Blinds())
		if current.Ante > 0 {
			blinds = lipgloss.JoinVertical(lipgloss.Center, blinds, v.styles.Ante.Render(fmt.Sprintf("ANTE %d", current.Ante)))
		}
		sections = append(sections, blinds)
	}

	if snap.Finished() {
		sections = append(sections, v.styles.Finished.Render("Structure complete"))
	} else {
		sections = append(sections, v.styles.NextLevel.Render(nextLabel(snap)))
	}

	sections = append(sections, "", v.stats(snap))

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if v.width == 0 || v.height == 0 {
		return body
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, body)
}

func (v *ClockView) levelLabel(snap timer.Snapshot) string {
	return fmt.Sprintf("LEVEL %d OF %d", snap.State.LevelIndex+1, snap.Table.Len())
}

func nextLabel(snap timer.Snapshot) string {
	next, ok := snap.Upcoming()
	if !ok {
		return "Next: final level"
	}
	if next.IsBreak {
		return fmt.Sprintf("Next: break (%d min)", next.DurationMinutes)
	}
	label := "Next: " + next.Blinds()
	if next.Ante > 0 {
		label += fmt.Sprintf("  ante %d", next.Ante)
	}
	return label
}

func (v *ClockView) stats(snap timer.Snapshot) string {
	parts := []string{
		v.stat("Elapsed", formatElapsed(snap.State.TotalElapsed)),
		v.stat("Structure", domain.FormatTotal(snap.Table.TotalDuration())),
	}
	if secs, ok := NextBreakIn(snap); ok {
		parts = append(parts, v.stat("Break in", domain.FormatClock(secs)))
	}
	return strings.Join(parts, "   ")
}

func (v *ClockView) stat(label, value string) string {
	return v.styles.StatLabel.Render(label+" ") + v.styles.StatValue.Render(value)
}

// NextBreakIn returns the seconds until the next break starts, counting the
// time left in the current level. False when no break follows.
func NextBreakIn(snap timer.Snapshot) (int, bool) {
	secs := snap.State.SecondsRemaining
	for i := snap.State.LevelIndex + 1; i < snap.Table.Len(); i++ {
		if snap.Table[i].IsBreak {
			return secs, true
		}
		secs += snap.Table.DurationSeconds(i)
	}
	return 0, false
}

func formatElapsed(seconds int) string {
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
