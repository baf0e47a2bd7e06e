// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/blindtimer/internal/config"
	"github.com/riordanpawley/blindtimer/internal/core/timer"
	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/services/clock"
	"github.com/riordanpawley/blindtimer/internal/services/generator"
	"github.com/riordanpawley/blindtimer/internal/services/network"
	"github.com/riordanpawley/blindtimer/internal/types"
	"github.com/riordanpawley/blindtimer/internal/ui/display"
	"github.com/riordanpawley/blindtimer/internal/ui/overlay"
	"github.com/riordanpawley/blindtimer/internal/ui/statusbar"
	"github.com/riordanpawley/blindtimer/internal/ui/styles"
	"github.com/riordanpawley/blindtimer/internal/ui/toast"
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Generator produces blind structures
type Generator interface {
	Generate(ctx context.Context, req generator.Request) ([]domain.Level, error)
	HasAPIKey() bool
}

// TickSource delivers clock ticks to the program
type TickSource interface {
	Listen() tea.Cmd
}

// Reachability probes the generator endpoint
type Reachability interface {
	CheckCmd() tea.Cmd
}

// Options holds the dependencies of the model
type Options struct {
	Controller *timer.Controller
	Ticks      TickSource
	Generator  Generator
	Network    Reachability
	Config     *config.Config
	Logger     *slog.Logger
	Now        func() time.Time
}

// Model is the main application state
type Model struct {
	ctrl      *timer.Controller
	ticks     TickSource
	generator Generator
	network   Reachability
	config    *config.Config
	logger    *slog.Logger
	now       func() time.Time

	// UI state
	overlayStack *overlay.Stack
	toasts       []Toast
	styles       *styles.Styles
	clockView    *display.ClockView

	// Terminal size
	width  int
	height int

	// Pending generation; genID invalidates results of abandoned requests
	genID     int
	genCancel context.CancelFunc
}

// New creates a new application model
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := styles.New()
	return Model{
		ctrl:         opts.Controller,
		ticks:        opts.Ticks,
		generator:    opts.Generator,
		network:      opts.Network,
		config:       cfg,
		logger:       logger,
		now:          now,
		overlayStack: overlay.NewStack(),
		toasts:       []Toast{},
		styles:       s,
		clockView:    display.NewClockView(s, cfg.Timer.WarningSeconds),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.listen()
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clockView.SetSize(m.width, max(0, m.height-1))
		return m, nil

	case clock.TickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case generateResultMsg:
		return m.handleGenerateResult(msg)

	case structureWrittenMsg:
		if msg.err != nil {
			m.logger.Warn("failed to write structure file", "path", msg.path, "error", msg.err)
			return m, m.addToast(ToastWarning, "Structure applied but not saved: "+msg.err.Error())
		}
		m.logger.Info("structure file written", "path", msg.path)
		return m, nil

	case toastExpiryMsg:
		m.expireToasts()
		return m, nil

	case network.StatusMsg:
		if !msg.Online {
			m.logger.Warn("generator endpoint unreachable")
			return m, m.addToast(ToastWarning, "Generator unreachable. Check your connection.")
		}
		return m, nil
	}

	// Everything else (cursor blink, spinner ticks) belongs to the open overlay
	if !m.overlayStack.IsEmpty() {
		return m, m.overlayStack.Update(msg)
	}
	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	snap := m.ctrl.Snapshot()
	mainView := m.clockView.Render(snap)

	sb := statusbar.New(m.overlayStack.Mode(), snap.State.Status, m.width, m.styles).
		WithProgress(snap.State.LevelIndex, snap.Table.Len(), snap.State.TotalElapsed)
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, sb.Render())

	// If overlay is open, render it centered in place of the clock
	if current := m.overlayStack.Current(); current != nil {
		overlayView := current.View()
		overlayWidth, overlayHeight := current.Size()

		if title := current.Title(); title != "" {
			titleView := m.styles.OverlayTitle.Render(title)
			overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
		}
		overlayView = m.styles.Overlay.
			Width(overlayWidth).
			Height(overlayHeight).
			Render(overlayView)

		centered := lipgloss.Place(
			m.width,
			max(0, m.height-1),
			lipgloss.Center,
			lipgloss.Center,
			overlayView,
		)
		view = lipgloss.JoinVertical(lipgloss.Left, centered, sb.Render())
	}

	// Render toasts in bottom-right corner
	if len(m.toasts) > 0 {
		toastView := toast.New(m.styles).Render(m.toasts, m.width)
		if toastView != "" {
			toastView = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toastView)
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// handleKey processes keyboard input on the clock screen
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()

	case "ctrl+l":
		return m, tea.ClearScreen

	case " ":
		m.ctrl.TogglePlay()
		return m, nil

	case "h", "left":
		m.ctrl.Jump(domain.Prev)
		return m, nil

	case "l", "right":
		m.ctrl.Jump(domain.Next)
		return m, nil

	case "r":
		return m, m.overlayStack.Push(overlay.NewResetDialog())

	case "L":
		snap := m.ctrl.Snapshot()
		return m, m.overlayStack.Push(overlay.NewLevelsOverlay(snap.Table, snap.State.LevelIndex))

	case "e":
		return m, m.overlayStack.Push(overlay.NewStructureEditor(m.ctrl.Table()))

	case "g":
		if m.generator == nil || !m.generator.HasAPIKey() {
			return m, m.addToast(ToastWarning, overlay.MsgGenerateNoKey)
		}
		cmd := m.overlayStack.Push(overlay.NewGeneratorForm(m.generatorDefaults()))
		if m.network != nil {
			cmd = tea.Batch(cmd, m.network.CheckCmd())
		}
		return m, cmd

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.overlayStack.Update(msg)
	return m, cmd
}

func (m Model) handleTick(msg clock.TickMsg) (tea.Model, tea.Cmd) {
	before := m.ctrl.State()
	if !m.ctrl.Tick(msg.Generation) {
		m.logger.Debug("stale tick dropped", "generation", msg.Generation)
		return m, m.listen()
	}

	var cmd tea.Cmd
	if before.Status == domain.StatusRunning && m.ctrl.Snapshot().Finished() {
		cmd = m.addToast(ToastSuccess, "Structure complete")
	}
	return m, tea.Batch(cmd, m.listen())
}

// handleSelection processes results from overlays
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	switch msg.Key {
	case overlay.KeyConfirm:
		m.overlayStack.Pop()
		result, ok := msg.Value.(overlay.ConfirmResult)
		if !ok || !result.Confirmed || result.Action != overlay.ActionReset {
			return m, nil
		}
		m.ctrl.Reset()
		return m, m.addToast(ToastInfo, "Tournament reset")

	case overlay.KeyStructure:
		saved, ok := msg.Value.(overlay.StructureSaved)
		if !ok {
			return m, nil
		}
		m.overlayStack.Pop()
		return m.applyStructure(saved.Table, "Structure updated")

	case overlay.KeyGenerate:
		switch v := msg.Value.(type) {
		case overlay.GenerateRequest:
			return m.startGenerate(v)
		case overlay.GenerateCancelled:
			m.cancelGenerate()
			return m, m.addToast(ToastInfo, "Generation cancelled")
		}
	}
	return m, nil
}

// applyStructure swaps the structure into the running session and writes it
// to the configured structure file
func (m Model) applyStructure(table domain.Table, message string) (tea.Model, tea.Cmd) {
	if err := m.ctrl.ReplaceTable(table); err != nil {
		m.logger.Warn("structure rejected", "error", err)
		return m, m.addToast(ToastError, err.Error())
	}

	cmds := []tea.Cmd{m.addToast(ToastSuccess, message)}
	if path := m.config.Structure.File; path != "" {
		cmds = append(cmds, writeStructureCmd(path, table))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) startGenerate(req overlay.GenerateRequest) (tea.Model, tea.Cmd) {
	if m.generator == nil {
		return m, nil
	}
	m.cancelGenerate()

	ctx, cancel := context.WithTimeout(context.Background(), m.config.GeneratorTimeout())
	m.genID++
	m.genCancel = cancel

	id := m.genID
	gen := m.generator
	request := generator.Request{
		Players:       req.Players,
		DurationHours: req.DurationHours,
		StartingChips: req.StartingChips,
	}
	return m, func() tea.Msg {
		levels, err := gen.Generate(ctx, request)
		return generateResultMsg{id: id, levels: levels, err: err}
	}
}

func (m *Model) cancelGenerate() {
	if m.genCancel != nil {
		m.genCancel()
		m.genCancel = nil
	}
	m.genID++
}

func (m Model) handleGenerateResult(msg generateResultMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.genID {
		m.logger.Debug("discarding abandoned generation result", "id", msg.id)
		return m, nil
	}
	if m.genCancel != nil {
		m.genCancel()
		m.genCancel = nil
	}

	form, formOpen := m.overlayStack.Current().(*overlay.GeneratorForm)

	switch {
	case msg.err != nil:
		m.logger.Warn("generation failed", "error", msg.err)
		if formOpen {
			form.SetResult(nil, msg.err)
		}
		text := overlay.MsgGenerateFailed
		if errors.Is(msg.err, domain.ErrNoAPIKey) {
			text = overlay.MsgGenerateNoKey
		}
		return m, m.addToast(ToastError, text)

	case len(msg.levels) == 0:
		m.logger.Warn("generation returned no levels")
		if formOpen {
			form.SetResult(msg.levels, nil)
		}
		return m, m.addToast(ToastWarning, overlay.MsgGenerateEmpty)
	}

	if formOpen {
		form.SetResult(msg.levels, nil)
		m.overlayStack.Pop()
	}
	return m.applyStructure(domain.Table(msg.levels), fmt.Sprintf("Generated %d levels", len(msg.levels)))
}

func (m Model) generatorDefaults() overlay.GenerateRequest {
	g := m.config.Generator
	return overlay.GenerateRequest{
		Players:       g.Players,
		DurationHours: g.DurationHours,
		StartingChips: g.StartingChips,
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancelGenerate()
	if m.ctrl.State().Status == domain.StatusRunning {
		// Pausing stops the clock and releases the wake lock
		m.ctrl.TogglePlay()
	}
	return m, tea.Quit
}

func (m Model) listen() tea.Cmd {
	if m.ticks == nil {
		return nil
	}
	return m.ticks.Listen()
}

// Message types for async operations

type generateResultMsg struct {
	id     int
	levels []domain.Level
	err    error
}

type structureWrittenMsg struct {
	path string
	err  error
}

type toastExpiryMsg time.Time

// Commands

func writeStructureCmd(path string, table domain.Table) tea.Cmd {
	return func() tea.Msg {
		return structureWrittenMsg{path: path, err: config.SaveStructure(path, table)}
	}
}

// addToast adds a toast notification and schedules its expiry
func (m *Model) addToast(level ToastLevel, message string) tea.Cmd {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now()))
	return tea.Tick(level.Lifetime(), func(t time.Time) tea.Msg {
		return toastExpiryMsg(t)
	})
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	now := m.now()
	filtered := make([]Toast, 0, len(m.toasts))

	for _, t := range m.toasts {
		if !t.Expired(now) {
			filtered = append(filtered, t)
		}
	}

	m.toasts = filtered
}
