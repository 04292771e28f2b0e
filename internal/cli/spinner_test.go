package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer is written by the spinner goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner(t *testing.T) {
	tests := []struct {
		name            string
		ctx             func() (context.Context, context.CancelFunc)
		wait            time.Duration
		wantInterrupted bool
	}{
		{
			name:            "stopped by caller",
			ctx:             func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			wait:            200 * time.Millisecond,
			wantInterrupted: false,
		},
		{
			name:            "parent deadline",
			ctx:             func() (context.Context, context.CancelFunc) { return context.WithTimeout(context.Background(), 20*time.Millisecond) },
			wait:            100 * time.Millisecond,
			wantInterrupted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			buf := &lockedBuffer{}
			s := startSpinnerTo(ctx, buf, "Rendering svg...")
			time.Sleep(tt.wait)
			s.Stop()
			s.Stop()

			if got := s.Interrupted(); got != tt.wantInterrupted {
				t.Errorf("Interrupted() = %v, want %v", got, tt.wantInterrupted)
			}
			if !strings.HasSuffix(buf.String(), clearLine) {
				t.Errorf("output %q should end by clearing the line", buf.String())
			}
		})
	}
}

func TestSpinnerDrawsMessage(t *testing.T) {
	buf := &lockedBuffer{}
	s := startSpinnerTo(context.Background(), buf, "Playing 3 clicks...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Playing 3 clicks...") {
		t.Errorf("spinner output %q missing message", buf.String())
	}
}

func TestSpinnerCancelThenStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinnerTo(ctx, &lockedBuffer{}, "working")
	cancel()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if !s.Interrupted() {
		t.Error("cancelled parent should mark the spinner interrupted")
	}
}

func TestSpinnerFail(t *testing.T) {
	buf := captureOutput(t)
	s := startSpinnerTo(context.Background(), &lockedBuffer{}, "Rendering...")
	s.Fail("Render failed")

	if !strings.Contains(buf.String(), "Render failed") {
		t.Errorf("output %q missing failure message", buf.String())
	}
}
