// Package overlay contains the modal dialogs drawn over the clock screen.
package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/blindtimer/internal/types"
)

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
	// Mode reports which status bar hints apply while the overlay has focus
	Mode() types.Mode
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when an overlay produces a result. Key identifies the
// overlay action, Value carries its payload.
type SelectionMsg struct {
	Key   string
	Value any
}

// Selection keys
const (
	KeyConfirm   = "confirm"
	KeyStructure = "structure"
	KeyGenerate  = "generate"
)

func closeCmd() tea.Msg { return CloseOverlayMsg{} }
