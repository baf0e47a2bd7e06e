// Package wakelock keeps the display awake while the clock is running by
// holding a platform inhibitor process open.
package wakelock

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// ErrUnsupported is returned on platforms without a known inhibitor
var ErrUnsupported = errors.New("wake lock not supported on this platform")

// Process is a running inhibitor
type Process interface {
	Kill() error
	Wait() error
}

// Starter launches inhibitor processes
type Starter interface {
	Start(name string, args ...string) (Process, error)
}

// ExecStarter implements Starter using os/exec.
type ExecStarter struct{}

// Start launches the command without waiting for it to exit.
func (ExecStarter) Start(name string, args ...string) (Process, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Kill() error { return p.cmd.Process.Kill() }
func (p *execProcess) Wait() error { return p.cmd.Wait() }

// CommandFor returns the inhibitor command line for an OS, or nil if none is known
func CommandFor(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"caffeinate", "-d"}
	case "linux":
		return []string{
			"systemd-inhibit",
			"--what=idle",
			"--who=blindtimer",
			"--why=Tournament clock running",
			"sleep", "infinity",
		}
	default:
		return nil
	}
}

// Inhibitor is a best-effort wake lock
type Inhibitor struct {
	starter Starter
	command []string
	logger  *slog.Logger

	mu   sync.Mutex
	proc Process
}

// New creates an inhibitor for the current platform
func New(starter Starter, logger *slog.Logger) *Inhibitor {
	return NewWithCommand(starter, CommandFor(runtime.GOOS), logger)
}

// NewWithCommand creates an inhibitor running an explicit command
func NewWithCommand(starter Starter, command []string, logger *slog.Logger) *Inhibitor {
	if starter == nil {
		starter = ExecStarter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inhibitor{
		starter: starter,
		command: command,
		logger:  logger,
	}
}

// Acquire starts the inhibitor. Acquiring twice keeps the first process.
func (i *Inhibitor) Acquire() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.proc != nil {
		return nil
	}
	if len(i.command) == 0 {
		return ErrUnsupported
	}

	proc, err := i.starter.Start(i.command[0], i.command[1:]...)
	if err != nil {
		return fmt.Errorf("failed to acquire wake lock: %w", err)
	}
	i.proc = proc
	i.logger.Debug("wake lock acquired", "command", i.command[0])
	return nil
}

// Release stops the inhibitor if one is held
func (i *Inhibitor) Release() {
	i.mu.Lock()
	proc := i.proc
	i.proc = nil
	i.mu.Unlock()

	if proc == nil {
		return
	}
	if err := proc.Kill(); err != nil {
		i.logger.Debug("wake lock release failed", "error", err)
	}
	// Reap in the background; a killed process reports an error we don't need
	go func() { _ = proc.Wait() }()
	i.logger.Debug("wake lock released")
}

// Held reports whether an inhibitor process is running
func (i *Inhibitor) Held() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.proc != nil
}
