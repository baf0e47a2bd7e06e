package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/blindtimer/internal/types"
)

// mockOverlay is a simple overlay implementation for testing
type mockOverlay struct {
	title string
	mode  types.Mode
	value string
}

func (m mockOverlay) Init() tea.Cmd {
	return nil
}

func (m mockOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m, func() tea.Msg {
				return SelectionMsg{Key: "test", Value: m.value}
			}
		case "esc":
			return m, closeCmd
		case "x":
			m.value = "changed"
			return m, nil
		}
	}
	return m, nil
}

func (m mockOverlay) View() string              { return m.title }
func (m mockOverlay) Title() string             { return m.title }
func (m mockOverlay) Size() (width, height int) { return 40, 10 }
func (m mockOverlay) Mode() types.Mode          { return m.mode }

func TestNewStack(t *testing.T) {
	stack := NewStack()
	if !stack.IsEmpty() {
		t.Error("New stack should be empty")
	}
	if stack.Len() != 0 {
		t.Errorf("Expected length 0, got %d", stack.Len())
	}
	if stack.Mode() != types.ModeTimer {
		t.Errorf("Empty stack should report timer mode, got %s", stack.Mode())
	}
}

func TestStackPushPop(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "Levels", mode: types.ModeLevels})
	stack.Push(mockOverlay{title: "Help", mode: types.ModeHelp})

	if stack.Len() != 2 {
		t.Fatalf("Expected 2 overlays, got %d", stack.Len())
	}
	if stack.Mode() != types.ModeHelp {
		t.Errorf("Expected top mode HELP, got %s", stack.Mode())
	}

	popped := stack.Pop()
	if popped == nil || popped.Title() != "Help" {
		t.Fatalf("Expected to pop 'Help', got %v", popped)
	}
	if stack.Current().Title() != "Levels" {
		t.Errorf("Expected current 'Levels', got '%s'", stack.Current().Title())
	}

	stack.Pop()
	if stack.Pop() != nil {
		t.Error("Pop on empty stack should return nil")
	}
}

func TestStackClear(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "One"})
	stack.Push(mockOverlay{title: "Two"})

	stack.Clear()

	if !stack.IsEmpty() || stack.Current() != nil {
		t.Error("Stack should be empty after clear")
	}
}

func TestStackUpdate_Empty(t *testing.T) {
	if cmd := NewStack().Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("Update on empty stack should return nil")
	}
}

func TestStackUpdate_StoresUpdatedValueOverlay(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "Test", value: "original"})

	stack.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	cmd := stack.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Update should return cmd from overlay")
	}

	sel, ok := cmd().(SelectionMsg)
	if !ok {
		t.Fatal("Expected SelectionMsg")
	}
	if sel.Value != "changed" {
		t.Errorf("Expected updated overlay value 'changed', got %v", sel.Value)
	}
}

func TestStackUpdate_CloseMsg(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "One"})
	stack.Push(mockOverlay{title: "Two"})

	if cmd := stack.Update(CloseOverlayMsg{}); cmd != nil {
		t.Error("Update with CloseOverlayMsg should return nil")
	}
	if stack.Current().Title() != "One" {
		t.Errorf("Expected 'One' after close, got '%s'", stack.Current().Title())
	}
}

func TestStackUpdate_EscClosesThroughCmd(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "One"})

	cmd := stack.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("Expected close command")
	}
	stack.Update(cmd())

	if !stack.IsEmpty() {
		t.Error("Expected stack to be empty after esc")
	}
}
