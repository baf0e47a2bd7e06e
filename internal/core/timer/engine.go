// Package timer provides the level-progression state machine of a blind timer.
//
// The engine is a pure transition over (State, Table): one Advance call per
// second of wall-clock time while the session is running. Side effects are
// limited to fire-and-forget notifications.
//
// Per tick, exactly one of:
//   - a second is counted down (warning emitted when the level has one minute left)
//   - a finished level rolls over into the next one (level change emitted)
//   - the last level finishes and the session returns to Idle
package timer

import (
	"github.com/riordanpawley/blindtimer/internal/domain"
)

// DefaultWarningSeconds is the remaining time at which the warning fires
const DefaultWarningSeconds = 60

// State is the mutable progression state of one session
type State struct {
	LevelIndex       int
	SecondsRemaining int
	Status           domain.Status
	TotalElapsed     int
}

// NewState returns the lifecycle-start state for a table
func NewState(table domain.Table) State {
	return State{
		LevelIndex:       0,
		SecondsRemaining: table.DurationSeconds(0),
		Status:           domain.StatusIdle,
		TotalElapsed:     0,
	}
}

// Advance applies one tick to state using the default warning threshold
func Advance(state State, table domain.Table, notifier Notifier) State {
	return advance(state, table, notifier, DefaultWarningSeconds)
}

func advance(state State, table domain.Table, notifier Notifier, warnAt int) State {
	if state.Status != domain.StatusRunning {
		return state
	}
	if notifier == nil {
		notifier = Silent{}
	}

	if state.SecondsRemaining > 0 {
		if state.SecondsRemaining == warnAt {
			notify(notifier.NotifyWarning)
		}
		state.SecondsRemaining--
		state.TotalElapsed++
		return state
	}

	// Level complete
	next := state.LevelIndex + 1
	if next >= table.Len() {
		state.Status = domain.StatusIdle
		state.SecondsRemaining = 0
		return state
	}

	notify(notifier.NotifyLevelChange)
	state.LevelIndex = next
	state.SecondsRemaining = table.DurationSeconds(next)
	state.TotalElapsed++
	return state
}

// notify runs a notification without letting a failing notifier reach the engine
func notify(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

// Current returns the level the state points at
func Current(state State, table domain.Table) (domain.Level, bool) {
	return table.At(state.LevelIndex)
}

// Upcoming returns the level after the current one, or false at the end
func Upcoming(state State, table domain.Table) (domain.Level, bool) {
	return table.At(state.LevelIndex + 1)
}

// Finished reports whether the last level has run out
func Finished(state State, table domain.Table) bool {
	return state.Status != domain.StatusRunning &&
		state.LevelIndex == table.Len()-1 &&
		state.SecondsRemaining == 0 &&
		state.TotalElapsed > 0
}

// Progress returns the elapsed fraction of the current level in [0, 1]
func Progress(state State, table domain.Table) float64 {
	total := table.DurationSeconds(state.LevelIndex)
	if total <= 0 {
		return 1
	}
	progress := float64(total-state.SecondsRemaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
