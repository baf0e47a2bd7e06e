package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/blindtimer/internal/domain"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
}

func TestStatusBadge(t *testing.T) {
	s := New()

	tests := []struct {
		status domain.Status
		want   lipgloss.TerminalColor
	}{
		{domain.StatusIdle, Overlay1},
		{domain.StatusRunning, Green},
		{domain.StatusPaused, Yellow},
		{domain.Status("unknown"), Overlay1},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := s.StatusBadge(tt.status).GetBackground(); got != tt.want {
				t.Errorf("StatusBadge(%s) background = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestClockFor(t *testing.T) {
	s := New()

	tests := []struct {
		name      string
		status    domain.Status
		remaining int
		want      lipgloss.Style
	}{
		{"running normal", domain.StatusRunning, 300, s.Clock},
		{"running warning", domain.StatusRunning, 60, s.ClockWarning},
		{"running last second", domain.StatusRunning, 1, s.ClockWarning},
		{"paused", domain.StatusPaused, 30, s.ClockPaused},
		{"idle low", domain.StatusIdle, 30, s.Clock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ClockFor(tt.status, tt.remaining, 60)
			if got.GetForeground() != tt.want.GetForeground() {
				t.Errorf("ClockFor(%s, %d) foreground = %v, want %v",
					tt.status, tt.remaining, got.GetForeground(), tt.want.GetForeground())
			}
		})
	}
}

func TestThemeColors(t *testing.T) {
	colors := []struct {
		name  string
		color string
	}{
		{"Base", string(Base)},
		{"Blue", string(Blue)},
		{"Red", string(Red)},
		{"Green", string(Green)},
		{"Yellow", string(Yellow)},
	}

	for _, c := range colors {
		t.Run(c.name, func(t *testing.T) {
			if c.color == "" {
				t.Errorf("%s color is empty", c.name)
			}
			if c.color[0] != '#' {
				t.Errorf("%s color should start with #, got %s", c.name, c.color)
			}
		})
	}
}

func TestStatusColorsCoverAllStatuses(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusIdle, domain.StatusRunning, domain.StatusPaused} {
		if _, ok := StatusColors[status]; !ok {
			t.Errorf("missing color for status %s", status)
		}
	}
}
