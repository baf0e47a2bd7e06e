// Package sound plays audible feedback through the terminal bell.
package sound

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

const bel = "\a"

// Pattern is a sequence of bell rings separated by gaps
type Pattern struct {
	Name  string
	Rings int
	Gap   time.Duration
}

var (
	// LevelChange is the triple beep played when a new level starts
	LevelChange = Pattern{Name: "level_change", Rings: 3, Gap: 150 * time.Millisecond}
	// Warning is played when one minute is left in the level
	Warning = Pattern{Name: "warning", Rings: 1}
	// Warmup is the short feedback beep when the clock starts
	Warmup = Pattern{Name: "warmup", Rings: 1}
)

// Bell rings the terminal bell on a background worker. Calls never block;
// a pattern requested while the queue is full is dropped.
type Bell struct {
	out    io.Writer
	logger *slog.Logger
	sleep  func(time.Duration)

	queue     chan Pattern
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewBell starts a bell writing to out
func NewBell(out io.Writer, logger *slog.Logger) *Bell {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bell{
		out:    out,
		logger: logger,
		sleep:  time.Sleep,
		queue:  make(chan Pattern, 4),
		done:   make(chan struct{}),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

// NotifyLevelChange plays the level change pattern
func (b *Bell) NotifyLevelChange() { b.play(LevelChange) }

// NotifyWarning plays the one minute warning
func (b *Bell) NotifyWarning() { b.play(Warning) }

// NotifyWarmup plays the start beep
func (b *Bell) NotifyWarmup() { b.play(Warmup) }

// Close stops the worker after the queued patterns have played
func (b *Bell) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
	b.wg.Wait()
}

func (b *Bell) play(p Pattern) {
	select {
	case <-b.done:
		return
	default:
	}

	select {
	case b.queue <- p:
	default:
		b.logger.Debug("bell busy, dropping pattern", "pattern", p.Name)
	}
}

func (b *Bell) run() {
	defer b.wg.Done()
	for {
		select {
		case p := <-b.queue:
			b.ring(p)
		case <-b.done:
			for {
				select {
				case p := <-b.queue:
					b.ring(p)
				default:
					return
				}
			}
		}
	}
}

func (b *Bell) ring(p Pattern) {
	for i := 0; i < p.Rings; i++ {
		if i > 0 && p.Gap > 0 {
			b.sleep(p.Gap)
		}
		if _, err := io.WriteString(b.out, bel); err != nil {
			// No terminal to ring; nothing else to do
			b.logger.Debug("bell write failed", "pattern", p.Name, "error", err)
			return
		}
	}
}

// Muted is a notifier for sessions with sound disabled
type Muted struct{}

func (Muted) NotifyLevelChange() {}
func (Muted) NotifyWarning()     {}
func (Muted) NotifyWarmup()      {}
