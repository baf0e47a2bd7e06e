package overlay

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/types"
)

// GenerateRequest is the Value of the SelectionMsg sent when the form submits
type GenerateRequest struct {
	Players       int
	DurationHours float64
	StartingChips int
}

// GenerateCancelled is sent when the operator abandons a pending request
type GenerateCancelled struct{}

// Messages shown when a request comes back without a usable structure
const (
	MsgGenerateEmpty  = "Could not generate a structure. Try again."
	MsgGenerateFailed = "Could not reach the generator. Check the API key."
	MsgGenerateNoKey  = "No API key configured (set GEMINI_API_KEY)."
)

const (
	genPlayers = iota
	genHours
	genChips
	genFieldCount
)

var generatorLabels = [genFieldCount]string{"Players", "Duration (hours)", "Starting chips"}

// GeneratorForm collects the tournament parameters for a generated structure
type GeneratorForm struct {
	inputs  [genFieldCount]textinput.Model
	focus   int
	pending bool
	spinner spinner.Model
	err     string
	styles  *Styles
}

// NewGeneratorForm creates the form prefilled with defaults
func NewGeneratorForm(defaults GenerateRequest) *GeneratorForm {
	styles := New()
	values := [genFieldCount]string{
		strconv.Itoa(defaults.Players),
		strconv.FormatFloat(defaults.DurationHours, 'f', -1, 64),
		strconv.Itoa(defaults.StartingChips),
	}

	g := &GeneratorForm{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		styles:  styles,
	}
	for i := range g.inputs {
		ti := textinput.New()
		ti.CharLimit = 9
		ti.Width = 12
		ti.Prompt = ""
		ti.SetValue(values[i])
		g.inputs[i] = ti
	}
	g.inputs[genPlayers].Focus()
	return g
}

// Init initializes the overlay
func (g *GeneratorForm) Init() tea.Cmd {
	return textinput.Blink
}

// Pending reports whether a request is in flight
func (g *GeneratorForm) Pending() bool {
	return g.pending
}

// SetResult reports a request that did not produce a structure and returns
// the form to input. A non-empty result just ends the pending state.
func (g *GeneratorForm) SetResult(levels []domain.Level, err error) {
	g.pending = false
	switch {
	case errors.Is(err, domain.ErrNoAPIKey):
		g.err = MsgGenerateNoKey
	case err != nil:
		g.err = MsgGenerateFailed
	case len(levels) == 0:
		g.err = MsgGenerateEmpty
	default:
		g.err = ""
	}
	g.inputs[g.focus].Focus()
}

// Update handles messages
func (g *GeneratorForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !g.pending {
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(tick)
		return g, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		g.inputs[g.focus], cmd = g.inputs[g.focus].Update(msg)
		return g, cmd
	}

	if g.pending {
		if key.String() == "esc" {
			g.pending = false
			return g, tea.Batch(
				func() tea.Msg { return SelectionMsg{Key: KeyGenerate, Value: GenerateCancelled{}} },
				closeCmd,
			)
		}
		return g, nil
	}

	switch key.String() {
	case "esc":
		return g, closeCmd
	case "tab", "down":
		g.setFocus((g.focus + 1) % genFieldCount)
		return g, nil
	case "shift+tab", "up":
		g.setFocus((g.focus - 1 + genFieldCount) % genFieldCount)
		return g, nil
	case "enter":
		return g, g.submit()
	}

	var cmd tea.Cmd
	g.inputs[g.focus], cmd = g.inputs[g.focus].Update(key)
	return g, cmd
}

func (g *GeneratorForm) setFocus(i int) {
	g.inputs[g.focus].Blur()
	g.focus = i
	g.inputs[g.focus].Focus()
}

// Request parses the form into a request
func (g *GeneratorForm) Request() (GenerateRequest, error) {
	players, err := strconv.Atoi(strings.TrimSpace(g.inputs[genPlayers].Value()))
	if err != nil || players <= 0 {
		return GenerateRequest{}, errors.New("players must be a positive whole number")
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(g.inputs[genHours].Value()), 64)
	if err != nil || hours <= 0 {
		return GenerateRequest{}, errors.New("duration must be a positive number of hours")
	}
	chips, err := strconv.Atoi(strings.TrimSpace(g.inputs[genChips].Value()))
	if err != nil || chips <= 0 {
		return GenerateRequest{}, errors.New("starting chips must be a positive whole number")
	}
	return GenerateRequest{Players: players, DurationHours: hours, StartingChips: chips}, nil
}

func (g *GeneratorForm) submit() tea.Cmd {
	req, err := g.Request()
	if err != nil {
		g.err = err.Error()
		return nil
	}

	g.err = ""
	g.pending = true
	g.inputs[g.focus].Blur()
	return tea.Batch(
		func() tea.Msg { return SelectionMsg{Key: KeyGenerate, Value: req} },
		g.spinner.Tick,
	)
}

// View renders the form
func (g *GeneratorForm) View() string {
	var b strings.Builder

	for i := range g.inputs {
		label := g.styles.Label.Render(generatorLabels[i] + ":")
		if i == g.focus && !g.pending {
			label = g.styles.MenuItemActive.Width(18).Render(generatorLabels[i] + ":")
		}
		b.WriteString(label)
		b.WriteString(g.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case g.pending:
		b.WriteString(g.spinner.View() + " " + g.styles.Notice.Render("Generating structure..."))
	case g.err != "":
		b.WriteString(g.styles.Error.Render(g.err))
	default:
		b.WriteString(g.styles.Footer.Render("The new structure replaces the current one."))
	}
	return b.String()
}

// Title returns the overlay title
func (g *GeneratorForm) Title() string {
	return "Generate Structure"
}

// Size returns the overlay dimensions
func (g *GeneratorForm) Size() (width, height int) {
	return 56, genFieldCount + 7
}

// Mode implements Overlay
func (g *GeneratorForm) Mode() types.Mode {
	return types.ModeGenerator
}
