package statusbar

import (
	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/types"
)

// GetHints returns the keybinding hints for the given mode. On the timer
// screen the play key hint follows the clock status.
func GetHints(mode types.Mode, status domain.Status) string {
	switch mode {
	case types.ModeTimer:
		play := "Space: start"
		switch status {
		case domain.StatusRunning:
			play = "Space: pause"
		case domain.StatusPaused:
			play = "Space: resume"
		}
		return play + "  h/l: level  r: reset  e: edit  g: generate  ?: help  q: quit"
	case types.ModeConfirm:
		return "y: yes  n: no  Esc: cancel"
	case types.ModeLevels:
		return "j/k: scroll  Esc: close"
	case types.ModeEditor:
		return "j/k: level  Tab: field  Enter: edit  a: add  d: remove  b: break  Ctrl+S: save  Esc: cancel"
	case types.ModeGenerator:
		return "Tab: next field  Enter: generate  Esc: cancel"
	case types.ModeHelp:
		return "Esc: close"
	default:
		return ""
	}
}
