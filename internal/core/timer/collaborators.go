package timer

// Notifier receives fire-and-forget feedback events.
// Implementations must not block; failures are their own business.
type Notifier interface {
	NotifyLevelChange()
	NotifyWarning()
	NotifyWarmup()
}

// WakeLock keeps the screen awake while the clock is running
type WakeLock interface {
	Acquire() error
	Release()
}

// Clock drives Tick once per period while started.
// Start returns the generation of the new registration and whether a new
// registration was made; a second Start without Stop must not register again.
type Clock interface {
	Start() (generation uint64, started bool)
	Stop()
}

// Silent is a Notifier that does nothing
type Silent struct{}

func (Silent) NotifyLevelChange() {}
func (Silent) NotifyWarning()     {}
func (Silent) NotifyWarmup()      {}

type noWakeLock struct{}

func (noWakeLock) Acquire() error { return nil }
func (noWakeLock) Release()       {}

type manualClock struct {
	generation uint64
	running    bool
}

func (c *manualClock) Start() (uint64, bool) {
	if c.running {
		return c.generation, false
	}
	c.generation++
	c.running = true
	return c.generation, true
}

func (c *manualClock) Stop() {
	c.running = false
}
