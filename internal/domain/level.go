// Package domain contains core business types for the blind timer.
package domain

import "fmt"

// Level is one blind level of a tournament structure
type Level struct {
	SmallBlind      int  `json:"smallBlind" yaml:"small_blind"`
	BigBlind        int  `json:"bigBlind" yaml:"big_blind"`
	Ante            int  `json:"ante,omitempty" yaml:"ante,omitempty"`
	DurationMinutes int  `json:"durationMinutes" yaml:"minutes"`
	IsBreak         bool `json:"isBreak,omitempty" yaml:"break,omitempty"`
}

// DurationSeconds returns the full length of the level in seconds
func (l Level) DurationSeconds() int {
	return l.DurationMinutes * 60
}

// Blinds renders the level for display, e.g. "100 / 200" or "BREAK"
func (l Level) Blinds() string {
	if l.IsBreak {
		return "BREAK"
	}
	return fmt.Sprintf("%d / %d", l.SmallBlind, l.BigBlind)
}

// LevelField names an editable field of a Level
type LevelField string

const (
	FieldSmallBlind LevelField = "smallBlind"
	FieldBigBlind   LevelField = "bigBlind"
	FieldAnte       LevelField = "ante"
	FieldDuration   LevelField = "durationMinutes"
)

// Table is an ordered blind structure. Order defines tournament progression.
type Table []Level

// Len returns the number of levels
func (t Table) Len() int {
	return len(t)
}

// At returns the level at index i, or false if i is out of range
func (t Table) At(i int) (Level, bool) {
	if i < 0 || i >= len(t) {
		return Level{}, false
	}
	return t[i], true
}

// DurationSeconds returns the duration of level i, or 0 if i is out of range
func (t Table) DurationSeconds(i int) int {
	level, ok := t.At(i)
	if !ok {
		return 0
	}
	return level.DurationSeconds()
}

// TotalDuration returns the sum of all level durations in seconds
func (t Table) TotalDuration() int {
	total := 0
	for _, level := range t {
		total += level.DurationSeconds()
	}
	return total
}

// Clone returns a copy that shares no backing array with t
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Validate checks that the table can drive a session
func (t Table) Validate() error {
	if len(t) == 0 {
		return &InvalidEditError{Index: -1, Message: "structure needs at least one level", Err: ErrEmptyTable}
	}
	for i, level := range t {
		switch {
		case level.DurationMinutes <= 0:
			return &InvalidEditError{Index: i, Field: FieldDuration, Message: "duration must be positive"}
		case level.SmallBlind < 0:
			return &InvalidEditError{Index: i, Field: FieldSmallBlind, Message: "must not be negative"}
		case level.BigBlind < 0:
			return &InvalidEditError{Index: i, Field: FieldBigBlind, Message: "must not be negative"}
		case level.Ante < 0:
			return &InvalidEditError{Index: i, Field: FieldAnte, Message: "must not be negative"}
		}
	}
	return nil
}

// AppendLevel returns a new table with one more level. The new level doubles
// the blinds of the last level and keeps its duration.
func (t Table) AppendLevel() Table {
	next := Level{SmallBlind: 10, BigBlind: 20, DurationMinutes: 15}
	if len(t) > 0 {
		last := t[len(t)-1]
		next = Level{
			SmallBlind:      last.SmallBlind * 2,
			BigBlind:        last.BigBlind * 2,
			DurationMinutes: last.DurationMinutes,
		}
		if last.IsBreak {
			// Doubling a break would produce 0/0; use the last real level instead
			for i := len(t) - 1; i >= 0; i-- {
				if !t[i].IsBreak {
					next.SmallBlind = t[i].SmallBlind * 2
					next.BigBlind = t[i].BigBlind * 2
					break
				}
			}
		}
	}
	return append(t.Clone(), next)
}

// RemoveLevel returns a new table without level i.
// Removing the only remaining level is rejected.
func (t Table) RemoveLevel(i int) (Table, error) {
	if i < 0 || i >= len(t) {
		return t, &InvalidEditError{Index: i, Message: "no such level"}
	}
	if len(t) == 1 {
		return t, &InvalidEditError{Index: i, Message: "cannot remove the last remaining level", Err: ErrEmptyTable}
	}
	out := make(Table, 0, len(t)-1)
	out = append(out, t[:i]...)
	out = append(out, t[i+1:]...)
	return out, nil
}

// SetField returns a new table with one field of level i replaced
func (t Table) SetField(i int, field LevelField, value int) (Table, error) {
	if i < 0 || i >= len(t) {
		return t, &InvalidEditError{Index: i, Field: field, Message: "no such level"}
	}
	out := t.Clone()
	switch field {
	case FieldSmallBlind:
		out[i].SmallBlind = value
	case FieldBigBlind:
		out[i].BigBlind = value
	case FieldAnte:
		out[i].Ante = value
	case FieldDuration:
		out[i].DurationMinutes = value
	default:
		return t, &InvalidEditError{Index: i, Field: field, Message: "unknown field"}
	}
	return out, nil
}

// ToggleBreak returns a new table with the break flag of level i flipped
func (t Table) ToggleBreak(i int) (Table, error) {
	if i < 0 || i >= len(t) {
		return t, &InvalidEditError{Index: i, Message: "no such level"}
	}
	out := t.Clone()
	out[i].IsBreak = !out[i].IsBreak
	return out, nil
}

// DefaultTable returns a standard home-game structure starting at 100/200
// with 15 minute levels.
func DefaultTable() Table {
	return Table{
		{SmallBlind: 100, BigBlind: 200, DurationMinutes: 15},
		{SmallBlind: 150, BigBlind: 300, DurationMinutes: 15},
		{SmallBlind: 250, BigBlind: 500, DurationMinutes: 15},
		{SmallBlind: 500, BigBlind: 1000, DurationMinutes: 15},
		{SmallBlind: 750, BigBlind: 1500, DurationMinutes: 15},
		{SmallBlind: 1000, BigBlind: 2000, DurationMinutes: 15},
		{SmallBlind: 1000, BigBlind: 2000, Ante: 200, DurationMinutes: 15},
		{SmallBlind: 1500, BigBlind: 3000, Ante: 300, DurationMinutes: 15},
		{SmallBlind: 2000, BigBlind: 4000, Ante: 400, DurationMinutes: 15},
		{SmallBlind: 2500, BigBlind: 5000, Ante: 500, DurationMinutes: 15},
		{SmallBlind: 3000, BigBlind: 6000, Ante: 600, DurationMinutes: 15},
		{SmallBlind: 4000, BigBlind: 8000, Ante: 800, DurationMinutes: 15},
		{SmallBlind: 5000, BigBlind: 10000, Ante: 1000, DurationMinutes: 15},
		{SmallBlind: 6000, BigBlind: 12000, Ante: 1200, DurationMinutes: 15},
		{SmallBlind: 8000, BigBlind: 16000, Ante: 1600, DurationMinutes: 15},
		{SmallBlind: 10000, BigBlind: 20000, Ante: 2000, DurationMinutes: 15},
	}
}

// FormatClock renders seconds as MM:SS. Minutes are not wrapped into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatTotal renders a duration in seconds as "Xh Ym"
func FormatTotal(seconds int) string {
	minutes := seconds / 60
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
