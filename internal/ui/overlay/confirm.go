package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/blindtimer/internal/types"
)

// ConfirmDialog asks the operator to confirm a destructive action
type ConfirmDialog struct {
	action   string
	title    string
	message  string
	styles   *Styles
	selected bool // true = Yes, false = No
}

// ConfirmResult is the Value of the SelectionMsg a ConfirmDialog sends
type ConfirmResult struct {
	Action    string
	Confirmed bool
}

// NewConfirmDialog creates a dialog for action. No is preselected.
func NewConfirmDialog(action, title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		action:  action,
		title:   title,
		message: message,
		styles:  New(),
	}
}

// ActionReset identifies the reset confirmation
const ActionReset = "reset"

// NewResetDialog asks before a tournament reset
func NewResetDialog() *ConfirmDialog {
	return NewConfirmDialog(ActionReset, "Reset Tournament",
		"Reset the clock to the first level?\nElapsed time will be cleared.")
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return c, c.result(true)
	case "n", "N", "esc":
		return c, c.result(false)
	case "enter":
		return c, c.result(c.selected)
	case "left", "h":
		c.selected = false
	case "right", "l", "tab":
		c.selected = true
	}

	return c, nil
}

func (c *ConfirmDialog) result(confirmed bool) tea.Cmd {
	return func() tea.Msg {
		return SelectionMsg{
			Key:   KeyConfirm,
			Value: ConfirmResult{Action: c.action, Confirmed: confirmed},
		}
	}
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle, noStyle := c.styles.MenuItem, c.styles.MenuItemActive
	if c.selected {
		yesStyle, noStyle = c.styles.MenuItemActive, c.styles.MenuItem
	}

	b.WriteString(yesStyle.Render("[Y] Yes") + "    " + noStyle.Render("[N] No"))
	b.WriteString("\n\n")
	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 50, messageLines + 6
}

// Mode implements Overlay
func (c *ConfirmDialog) Mode() types.Mode {
	return types.ModeConfirm
}
