// Package types contains shared types used across the application.
package types

// Mode represents which screen has keyboard focus
type Mode int

const (
	ModeTimer Mode = iota
	ModeConfirm
	ModeLevels
	ModeEditor
	ModeGenerator
	ModeHelp
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeTimer:
		return "TIMER"
	case ModeConfirm:
		return "CONFIRM"
	case ModeLevels:
		return "LEVELS"
	case ModeEditor:
		return "EDIT"
	case ModeGenerator:
		return "GENERATE"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}
