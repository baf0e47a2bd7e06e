// Package clock provides the periodic trigger that drives the timer engine.
package clock

import (
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

// DefaultPeriod is the nominal tick period
const DefaultPeriod = time.Second

// tickBuffer bounds how many ticks may queue up behind a slow UI
const tickBuffer = 8

// TickMsg is delivered to the program once per period while the driver runs
type TickMsg struct {
	Generation uint64
	At         time.Time
}

// Driver owns at most one ticker registration at a time.
// Every Start creates a new generation; ticks carry the generation they were
// produced under so consumers can drop ticks that outlive a Stop.
type Driver struct {
	clock  clockwork.Clock
	period time.Duration
	logger *slog.Logger
	ticks  chan TickMsg

	mu            sync.Mutex
	generation    uint64
	ticker        clockwork.Ticker
	done          chan struct{}
	registrations int
}

// NewDriver creates a driver. In production use clockwork.NewRealClock(),
// in tests a fake clock.
func NewDriver(clock clockwork.Clock, period time.Duration, logger *slog.Logger) *Driver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		clock:  clock,
		period: period,
		logger: logger,
		ticks:  make(chan TickMsg, tickBuffer),
	}
}

// Start registers the ticker. Calling Start while already running does not
// register a second ticker and returns the current generation with false.
func (d *Driver) Start() (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ticker != nil {
		return d.generation, false
	}

	d.generation++
	d.registrations++
	d.ticker = d.clock.NewTicker(d.period)
	d.done = make(chan struct{})

	go d.run(d.generation, d.ticker, d.done)

	d.logger.Debug("clock started", "generation", d.generation, "period", d.period)
	return d.generation, true
}

// Stop unregisters the ticker and discards queued ticks. Safe to call when stopped.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ticker == nil {
		return
	}

	d.ticker.Stop()
	close(d.done)
	d.ticker = nil
	d.done = nil
	d.drain()

	d.logger.Debug("clock stopped", "generation", d.generation)
}

// Running reports whether a ticker is registered
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticker != nil
}

// Registrations returns how many tickers have been registered in total
func (d *Driver) Registrations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registrations
}

// Ticks exposes the tick stream
func (d *Driver) Ticks() <-chan TickMsg {
	return d.ticks
}

// Listen returns a tea.Cmd that waits for the next tick. The program must
// call Listen again after handling each TickMsg.
func (d *Driver) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-d.ticks
	}
}

func (d *Driver) run(generation uint64, ticker clockwork.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case at := <-ticker.Chan():
			select {
			case d.ticks <- TickMsg{Generation: generation, At: at}:
			default:
				d.logger.Warn("tick dropped, consumer is behind", "generation", generation)
			}
		}
	}
}

func (d *Driver) drain() {
	for {
		select {
		case <-d.ticks:
		default:
			return
		}
	}
}
