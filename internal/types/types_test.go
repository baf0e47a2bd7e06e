package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeTimer, "TIMER"},
		{ModeConfirm, "CONFIRM"},
		{ModeLevels, "LEVELS"},
		{ModeEditor, "EDIT"},
		{ModeGenerator, "GENERATE"},
		{ModeHelp, "HELP"},
		{Mode(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.String())
	}
}

func TestNewToast(t *testing.T) {
	now := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)

	toast := NewToast(ToastError, "boom", now)

	assert.Equal(t, ToastError, toast.Level)
	assert.Equal(t, "boom", toast.Message)
	assert.Equal(t, now.Add(8*time.Second), toast.Expires)
	assert.False(t, toast.Expired(now))
	assert.True(t, toast.Expired(now.Add(8*time.Second)))
}

func TestToastLevel_Lifetime(t *testing.T) {
	assert.Equal(t, 3*time.Second, ToastInfo.Lifetime())
	assert.Equal(t, 3*time.Second, ToastSuccess.Lifetime())
	assert.Equal(t, 5*time.Second, ToastWarning.Lifetime())
	assert.Equal(t, 8*time.Second, ToastError.Lifetime())
}
