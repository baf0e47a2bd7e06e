package timer

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/riordanpawley/blindtimer/internal/domain"
)

// Deps holds the collaborators of a Controller. Nil fields get no-op defaults.
type Deps struct {
	Notifier       Notifier
	Clock          Clock
	WakeLock       WakeLock
	Logger         *slog.Logger
	WarningSeconds int
}

// Snapshot is a read-only copy of a session for rendering
type Snapshot struct {
	SessionID uuid.UUID
	State     State
	Table     domain.Table
}

// Current returns the current level of the snapshot
func (s Snapshot) Current() domain.Level {
	level, _ := Current(s.State, s.Table)
	return level
}

// Upcoming returns the next level of the snapshot, or false at the end
func (s Snapshot) Upcoming() (domain.Level, bool) {
	return Upcoming(s.State, s.Table)
}

// Finished reports whether the tournament structure has run out
func (s Snapshot) Finished() bool {
	return Finished(s.State, s.Table)
}

// Progress returns the elapsed fraction of the current level
func (s Snapshot) Progress() float64 {
	return Progress(s.State, s.Table)
}

// Controller owns one session and turns operator intents into transitions.
// It is not safe for concurrent use; all calls come from the UI event loop.
type Controller struct {
	sessionID  uuid.UUID
	state      State
	table      domain.Table
	generation uint64

	notifier  Notifier
	clock     Clock
	wakeLock  WakeLock
	logger    *slog.Logger
	warningAt int
}

// NewController creates a controller for table. The table must validate.
func NewController(table domain.Table, deps Deps) (*Controller, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	if deps.Notifier == nil {
		deps.Notifier = Silent{}
	}
	if deps.Clock == nil {
		deps.Clock = &manualClock{}
	}
	if deps.WakeLock == nil {
		deps.WakeLock = noWakeLock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.WarningSeconds <= 0 {
		deps.WarningSeconds = DefaultWarningSeconds
	}

	c := &Controller{
		sessionID: uuid.New(),
		table:     table.Clone(),
		notifier:  deps.Notifier,
		clock:     deps.Clock,
		wakeLock:  deps.WakeLock,
		logger:    deps.Logger,
		warningAt: deps.WarningSeconds,
	}
	c.state = NewState(c.table)
	c.log().Info("session created", "levels", c.table.Len())
	return c, nil
}

// Snapshot returns a copy of the session for rendering
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		SessionID: c.sessionID,
		State:     c.state,
		Table:     c.table.Clone(),
	}
}

// State returns the current progression state
func (c *Controller) State() State {
	return c.state
}

// Table returns a copy of the current structure
func (c *Controller) Table() domain.Table {
	return c.table.Clone()
}

// TogglePlay starts a stopped session or pauses a running one.
// Returns the new status.
func (c *Controller) TogglePlay() domain.Status {
	switch c.state.Status {
	case domain.StatusIdle, domain.StatusPaused:
		notify(c.notifier.NotifyWarmup)
		c.state.Status = domain.StatusRunning
		c.enterRunning()
	case domain.StatusRunning:
		c.state.Status = domain.StatusPaused
		c.leaveRunning()
	}

	c.log().Info("play toggled", "status", c.state.Status)
	return c.state.Status
}

// Reset reinitializes the session with the current table. Operator
// confirmation happens before this is called.
func (c *Controller) Reset() {
	if c.state.Status == domain.StatusRunning {
		c.leaveRunning()
	}
	c.state = NewState(c.table)
	c.sessionID = uuid.New()
	c.log().Info("session reset")
}

// Jump moves one level in direction, clamped to the table bounds, and loads
// the full duration of the resulting level. Status and elapsed time are kept
// and no level change is notified.
func (c *Controller) Jump(direction domain.Direction) int {
	index := c.state.LevelIndex
	if direction == domain.Next {
		index++
	} else {
		index--
	}
	index = clamp(index, 0, c.table.Len()-1)

	c.state.LevelIndex = index
	c.state.SecondsRemaining = c.table.DurationSeconds(index)

	c.log().Debug("level jump", "direction", direction, "level", index)
	return index
}

// ReplaceTable swaps in a new structure and reconciles the session with it.
//
// Without progress the session starts over on the first level. After
// progress the remaining time is capped (never increased) to the new
// duration of the current level; if the table shrank below the current
// level, the index is clamped to the last level first.
func (c *Controller) ReplaceTable(table domain.Table) error {
	if err := table.Validate(); err != nil {
		return err
	}

	c.table = table.Clone()

	if c.state.TotalElapsed == 0 {
		c.state.LevelIndex = 0
		c.state.SecondsRemaining = c.table.DurationSeconds(0)
		c.sessionID = uuid.New()
		c.log().Info("structure replaced before start", "levels", c.table.Len())
		return nil
	}

	if c.state.LevelIndex > c.table.Len()-1 {
		c.log().Warn("structure shrank below current level, clamping",
			"level", c.state.LevelIndex, "levels", c.table.Len())
		c.state.LevelIndex = c.table.Len() - 1
	}
	c.state.SecondsRemaining = min(c.state.SecondsRemaining, c.table.DurationSeconds(c.state.LevelIndex))

	c.log().Info("structure replaced", "levels", c.table.Len(), "level", c.state.LevelIndex)
	return nil
}

// Tick applies one clock tick. Ticks from a stale clock registration, or
// arriving while the session is not running, are dropped.
// Returns true if the tick was applied.
func (c *Controller) Tick(generation uint64) bool {
	if generation != c.generation || c.state.Status != domain.StatusRunning {
		return false
	}

	before := c.state
	c.state = advance(c.state, c.table, c.notifier, c.warningAt)

	if c.state.LevelIndex != before.LevelIndex {
		c.log().Info("level changed", "level", c.state.LevelIndex)
	}
	if c.state.Status != domain.StatusRunning {
		c.leaveRunning()
		c.log().Info("structure finished", "elapsed", c.state.TotalElapsed)
	}
	return true
}

// Generation returns the clock registration ticks must carry
func (c *Controller) Generation() uint64 {
	return c.generation
}

func (c *Controller) enterRunning() {
	generation, started := c.clock.Start()
	if !started {
		c.log().Warn("clock already registered", "generation", generation)
	}
	c.generation = generation

	if err := c.wakeLock.Acquire(); err != nil {
		c.log().Warn("wake lock unavailable", "error", err)
	}
}

func (c *Controller) leaveRunning() {
	c.clock.Stop()
	c.generation = 0
	c.wakeLock.Release()
}

func (c *Controller) log() *slog.Logger {
	return c.logger.With("session_id", c.sessionID.String())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
