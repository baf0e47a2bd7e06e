package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/blindtimer/internal/types"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles *Styles
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{styles: New()}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "?", "enter":
			return h, closeCmd
		}
	}
	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	var b strings.Builder
	for i, cat := range Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(h.styles.MenuHeader.Render(cat.Name + ":"))
		b.WriteString("\n")
		for _, binding := range cat.Bindings {
			key := h.styles.MenuKey.Width(10).Render(binding.Key)
			b.WriteString("  " + key + h.styles.MenuItem.Render(binding.Description) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	lines := 0
	for _, cat := range Categories() {
		lines += len(cat.Bindings) + 2
	}
	return 52, lines + 2
}

// Mode implements Overlay
func (h *HelpOverlay) Mode() types.Mode {
	return types.ModeHelp
}

// Categories returns all keybinding categories
func Categories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Clock",
			Bindings: []KeyBinding{
				{Key: "Space", Description: "Start / pause"},
				{Key: "r", Description: "Reset tournament"},
				{Key: "h / ←", Description: "Previous level"},
				{Key: "l / →", Description: "Next level"},
			},
		},
		{
			Name: "Structure",
			Bindings: []KeyBinding{
				{Key: "L", Description: "Show all levels"},
				{Key: "e", Description: "Edit structure"},
				{Key: "g", Description: "Generate structure"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: "?", Description: "Help (this screen)"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}
