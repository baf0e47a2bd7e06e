package domain

// Status is the run status of a timer session
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Icon returns a unicode icon for the status
func (s Status) Icon() string {
	switch s {
	case StatusIdle:
		return "○"
	case StatusRunning:
		return "▶"
	case StatusPaused:
		return "⏸"
	default:
		return "?"
	}
}

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// Direction is a manual level navigation direction
type Direction int

const (
	Prev Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}
