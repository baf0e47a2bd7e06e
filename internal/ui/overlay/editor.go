package overlay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/types"
)

// editorVisible is how many levels the editor shows at once
const editorVisible = 10

var editorFields = []struct {
	field domain.LevelField
	label string
	width int
}{
	{domain.FieldSmallBlind, "Small", 8},
	{domain.FieldBigBlind, "Big", 8},
	{domain.FieldAnte, "Ante", 7},
	{domain.FieldDuration, "Min", 5},
}

// StructureSaved is the Value of the SelectionMsg sent when the editor saves
type StructureSaved struct {
	Table domain.Table
}

// StructureEditor edits a working copy of the blind structure. Nothing
// reaches the running session until the operator saves.
type StructureEditor struct {
	table   domain.Table
	cursor  int
	field   int
	offset  int
	editing bool
	input   textinput.Model
	err     string
	dirty   bool
	styles  *Styles
}

// NewStructureEditor opens the editor on a copy of table
func NewStructureEditor(table domain.Table) *StructureEditor {
	ti := textinput.New()
	ti.CharLimit = 9
	ti.Width = 10
	ti.Prompt = ""

	return &StructureEditor{
		table:  table.Clone(),
		input:  ti,
		styles: New(),
	}
}

// Table returns the working copy
func (e *StructureEditor) Table() domain.Table {
	return e.table.Clone()
}

// Init initializes the overlay
func (e *StructureEditor) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (e *StructureEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if e.editing {
			var cmd tea.Cmd
			e.input, cmd = e.input.Update(msg)
			return e, cmd
		}
		return e, nil
	}

	if e.editing {
		return e.updateEditing(key)
	}

	e.err = ""
	switch key.String() {
	case "esc":
		return e, closeCmd
	case "ctrl+s":
		return e, e.save()
	case "j", "down":
		e.moveCursor(1)
	case "k", "up":
		e.moveCursor(-1)
	case "tab", "l", "right":
		e.field = (e.field + 1) % len(editorFields)
	case "shift+tab", "h", "left":
		e.field = (e.field - 1 + len(editorFields)) % len(editorFields)
	case "enter":
		return e, e.startEditing()
	case "a":
		e.table = e.table.AppendLevel()
		e.dirty = true
		e.moveCursor(len(e.table))
	case "d", "x":
		table, err := e.table.RemoveLevel(e.cursor)
		if err != nil {
			e.err = err.Error()
			return e, nil
		}
		e.table = table
		e.dirty = true
		e.moveCursor(0)
	case "b":
		table, err := e.table.ToggleBreak(e.cursor)
		if err != nil {
			e.err = err.Error()
			return e, nil
		}
		e.table = table
		e.dirty = true
	}
	return e, nil
}

func (e *StructureEditor) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		e.stopEditing()
		return e, nil
	case "enter", "tab":
		if e.commit() {
			e.stopEditing()
		}
		return e, nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(key)
	return e, cmd
}

func (e *StructureEditor) startEditing() tea.Cmd {
	level := e.table[e.cursor]
	field := editorFields[e.field].field
	if level.IsBreak && field != domain.FieldDuration {
		e.err = "breaks only have a duration"
		return nil
	}

	e.editing = true
	e.input.SetValue(strconv.Itoa(fieldValue(level, field)))
	e.input.CursorEnd()
	return e.input.Focus()
}

func (e *StructureEditor) stopEditing() {
	e.editing = false
	e.input.Blur()
	e.input.Reset()
}

// commit applies the input to the working copy. Returns false, with the
// reason in e.err, when the value cannot be used.
func (e *StructureEditor) commit() bool {
	raw := strings.TrimSpace(e.input.Value())
	value, err := strconv.Atoi(raw)
	if err != nil {
		e.err = "enter a whole number"
		return false
	}

	field := editorFields[e.field].field
	table, err := e.table.SetField(e.cursor, field, value)
	if err != nil {
		e.err = err.Error()
		return false
	}

	var editErr *domain.InvalidEditError
	if err := table.Validate(); errors.As(err, &editErr) && editErr.Index == e.cursor {
		e.err = err.Error()
		return false
	}

	e.err = ""
	e.table = table
	e.dirty = true
	return true
}

func (e *StructureEditor) save() tea.Cmd {
	if err := e.table.Validate(); err != nil {
		e.err = err.Error()
		return nil
	}
	table := e.table.Clone()
	return func() tea.Msg {
		return SelectionMsg{Key: KeyStructure, Value: StructureSaved{Table: table}}
	}
}

func (e *StructureEditor) moveCursor(delta int) {
	e.cursor = max(0, min(e.cursor+delta, len(e.table)-1))
	if e.cursor < e.offset {
		e.offset = e.cursor
	}
	if e.cursor >= e.offset+editorVisible {
		e.offset = e.cursor - editorVisible + 1
	}
	e.offset = max(0, min(e.offset, max(0, len(e.table)-editorVisible)))
}

// View renders the editor
func (e *StructureEditor) View() string {
	var b strings.Builder

	header := "  #   "
	for _, f := range editorFields {
		header += fmt.Sprintf("%-*s", f.width, f.label)
	}
	b.WriteString(e.styles.MenuHeader.Render(header))
	b.WriteString("\n")

	end := min(e.offset+editorVisible, len(e.table))
	for i := e.offset; i < end; i++ {
		b.WriteString(e.row(i))
		b.WriteString("\n")
	}

	total := fmt.Sprintf("%d levels, %s total", len(e.table), domain.FormatTotal(e.table.TotalDuration()))
	if e.dirty {
		total += "  (modified)"
	}
	b.WriteString(e.styles.Footer.Render(total))

	if e.err != "" {
		b.WriteString("\n")
		b.WriteString(e.styles.Error.Render(e.err))
	}
	return b.String()
}

func (e *StructureEditor) row(i int) string {
	level := e.table[i]

	marker := "  "
	if i == e.cursor {
		marker = "▸ "
	}
	var b strings.Builder
	b.WriteString(e.styles.MenuItem.Render(fmt.Sprintf("%s%-4d", marker, i+1)))

	for col, f := range editorFields {
		var text string
		switch {
		case level.IsBreak && f.field != domain.FieldDuration:
			text = ""
			if col == 0 {
				text = "BREAK"
			}
		default:
			text = strconv.Itoa(fieldValue(level, f.field))
		}

		active := i == e.cursor && col == e.field
		if active && e.editing {
			text = e.input.View()
		}
		cell := fmt.Sprintf("%-*s", f.width, text)

		switch {
		case active && !e.editing:
			b.WriteString(e.styles.CellActive.Render(cell))
		case level.IsBreak:
			b.WriteString(e.styles.RowBreak.Render(cell))
		default:
			b.WriteString(e.styles.Cell.Render(cell))
		}
	}
	return b.String()
}

func fieldValue(level domain.Level, field domain.LevelField) int {
	switch field {
	case domain.FieldSmallBlind:
		return level.SmallBlind
	case domain.FieldBigBlind:
		return level.BigBlind
	case domain.FieldAnte:
		return level.Ante
	default:
		return level.DurationMinutes
	}
}

// Title returns the overlay title
func (e *StructureEditor) Title() string {
	return "Edit Structure"
}

// Size returns the overlay dimensions
func (e *StructureEditor) Size() (width, height int) {
	return 52, min(len(e.table), editorVisible) + 8
}

// Mode implements Overlay
func (e *StructureEditor) Mode() types.Mode {
	return types.ModeEditor
}
