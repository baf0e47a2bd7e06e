package types

import "time"

// Toast represents a notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Lifetime returns how long a toast of this level stays on screen
func (l ToastLevel) Lifetime() time.Duration {
	switch l {
	case ToastError:
		return 8 * time.Second
	case ToastWarning:
		return 5 * time.Second
	default:
		return 3 * time.Second
	}
}

// NewToast creates a toast expiring after its level's lifetime
func NewToast(level ToastLevel, message string, now time.Time) Toast {
	return Toast{
		Level:   level,
		Message: message,
		Expires: now.Add(level.Lifetime()),
	}
}

// Expired reports whether the toast should be removed at now
func (t Toast) Expired(now time.Time) bool {
	return !t.Expires.After(now)
}
