package domain

import (
	"errors"
	"testing"
)

func TestGenerationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  GenerationError
		want string
	}{
		{
			name: "with message and error",
			err:  GenerationError{Op: "request", Message: "failed to call API", Err: errors.New("timeout")},
			want: "generate request: failed to call API: timeout",
		},
		{
			name: "with message only",
			err:  GenerationError{Op: "config", Message: "no key"},
			want: "generate config: no key",
		},
		{
			name: "with underlying error",
			err:  GenerationError{Op: "decode", Err: errors.New("unexpected EOF")},
			want: "generate decode: unexpected EOF",
		},
		{
			name: "minimal",
			err:  GenerationError{Op: "parse"},
			want: "generate parse failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("GenerationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerationError_Unwrap(t *testing.T) {
	err := &GenerationError{Op: "config", Err: ErrNoAPIKey}

	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("errors.Is(%v, ErrNoAPIKey) = false, want true", err)
	}
}

func TestInvalidEditError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  InvalidEditError
		want string
	}{
		{
			name: "whole table",
			err:  InvalidEditError{Index: -1, Message: "structure needs at least one level"},
			want: "invalid structure: structure needs at least one level",
		},
		{
			name: "with field",
			err:  InvalidEditError{Index: 2, Field: FieldDuration, Message: "duration must be positive"},
			want: "invalid level 3 (durationMinutes): duration must be positive",
		},
		{
			name: "without field",
			err:  InvalidEditError{Index: 0, Message: "cannot remove the last remaining level"},
			want: "invalid level 1: cannot remove the last remaining level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("InvalidEditError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}
