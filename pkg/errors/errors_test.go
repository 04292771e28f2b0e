package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidSize, "size %d too small", 10), "INVALID_SIZE: size 10 too small"},
		{"cause", Wrap(ErrCodeInvalidInput, io.ErrUnexpectedEOF, "decode %s", "tree.json"), "INVALID_INPUT: decode tree.json: unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, io.EOF, "open")
	if !errors.Is(err, io.EOF) {
		t.Error("errors.Is should reach the cause")
	}
	if New(ErrCodeInternal, "x").Cause != nil {
		t.Error("New should have no cause")
	}
}

func TestIs(t *testing.T) {
	inner := New(ErrCodeNodeNotFound, "no node %d", 7)
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching", New(ErrCodeInvalidInput, "x"), ErrCodeInvalidInput, true},
		{"other code", New(ErrCodeInvalidInput, "x"), ErrCodeInternal, false},
		{"outer of two", Wrap(ErrCodeInternal, inner, "outer"), ErrCodeInternal, true},
		{"inner of two", Wrap(ErrCodeInternal, inner, "outer"), ErrCodeNodeNotFound, true},
		{"through fmt", fmt.Errorf("click: %w", inner), ErrCodeNodeNotFound, true},
		{"plain", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeOfAndMessage(t *testing.T) {
	inner := New(ErrCodeNodeNotFound, "no node %d", 7)
	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantMsg  string
	}{
		{"coded", inner, ErrCodeNodeNotFound, "no node 7"},
		{"through fmt", fmt.Errorf("click: %w", inner), ErrCodeNodeNotFound, "no node 7"},
		{"outermost wins", Wrap(ErrCodeInternal, inner, "reload"), ErrCodeInternal, "reload"},
		{"plain", errors.New("plain error"), "", "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.wantCode {
				t.Errorf("CodeOf() = %q, want %q", got, tt.wantCode)
			}
			if got := Message(tt.err); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
	if CodeOf(nil) != "" {
		t.Error("CodeOf(nil) should be empty")
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		code Code
		want Class
	}{
		{ErrCodeInvalidTree, ClassInvalid},
		{ErrCodeInvalidEasing, ClassInvalid},
		{ErrCodeSessionNotFound, ClassNotFound},
		{ErrCodeNotClickable, ClassConflict},
		{ErrCodeUnsupported, ClassUnsupported},
		{ErrCodeInternal, ClassInternal},
		{"SOMETHING_NEW", ClassInternal},
	}
	for _, tt := range tests {
		if got := tt.code.Class(); got != tt.want {
			t.Errorf("%s.Class() = %d, want %d", tt.code, got, tt.want)
		}
	}
}
