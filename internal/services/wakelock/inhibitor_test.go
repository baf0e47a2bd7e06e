package wakelock

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProcess struct {
	mu      sync.Mutex
	killed  int
	killErr error
}

func (p *mockProcess) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.killed++
	return p.killErr
}

func (p *mockProcess) Wait() error { return nil }

func (p *mockProcess) Killed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

type mockStarter struct {
	calls [][]string
	proc  *mockProcess
	err   error
}

func (m *mockStarter) Start(name string, args ...string) (Process, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.err != nil {
		return nil, m.err
	}
	return m.proc, nil
}

func TestInhibitor_AcquireRelease(t *testing.T) {
	starter := &mockStarter{proc: &mockProcess{}}
	lock := NewWithCommand(starter, []string{"caffeinate", "-d"}, slog.Default())

	require.NoError(t, lock.Acquire())
	assert.True(t, lock.Held())
	assert.Equal(t, [][]string{{"caffeinate", "-d"}}, starter.calls)

	lock.Release()
	assert.False(t, lock.Held())
	assert.Equal(t, 1, starter.proc.Killed())
}

func TestInhibitor_AcquireTwiceStartsOnce(t *testing.T) {
	starter := &mockStarter{proc: &mockProcess{}}
	lock := NewWithCommand(starter, []string{"caffeinate", "-d"}, slog.Default())

	require.NoError(t, lock.Acquire())
	require.NoError(t, lock.Acquire())

	assert.Len(t, starter.calls, 1)
}

func TestInhibitor_StartFailure(t *testing.T) {
	starter := &mockStarter{err: errors.New("executable file not found")}
	lock := NewWithCommand(starter, []string{"systemd-inhibit"}, slog.Default())

	err := lock.Acquire()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable file not found")
	assert.False(t, lock.Held())
}

func TestInhibitor_Unsupported(t *testing.T) {
	starter := &mockStarter{}
	lock := NewWithCommand(starter, nil, slog.Default())

	assert.ErrorIs(t, lock.Acquire(), ErrUnsupported)
	assert.Empty(t, starter.calls)
}

func TestInhibitor_ReleaseWithoutAcquire(t *testing.T) {
	lock := NewWithCommand(&mockStarter{}, []string{"caffeinate"}, slog.Default())

	assert.NotPanics(t, lock.Release)
}

func TestInhibitor_KillErrorIsSwallowed(t *testing.T) {
	proc := &mockProcess{killErr: errors.New("already exited")}
	lock := NewWithCommand(&mockStarter{proc: proc}, []string{"caffeinate"}, slog.Default())
	require.NoError(t, lock.Acquire())

	assert.NotPanics(t, lock.Release)
	assert.False(t, lock.Held())
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "caffeinate"},
		{"linux", "systemd-inhibit"},
		{"windows", ""},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd := CommandFor(tt.goos)
			if tt.want == "" {
				assert.Nil(t, cmd)
				return
			}
			require.NotEmpty(t, cmd)
			assert.Equal(t, tt.want, cmd[0])
		})
	}
}
