package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	spinnerFrames = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"
	spinnerTick   = 80 * time.Millisecond
	clearLine     = "\r\x1b[K"
)

var styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)

// spinner animates a status line on stderr until it is stopped or its
// context ends.
type spinner struct {
	w    io.Writer
	msg  string
	stop func()

	mu          sync.Mutex
	stopped     atomic.Bool
	interrupted atomic.Bool
}

// startSpinner draws msg with an animated mark until stop is called.
func startSpinner(ctx context.Context, msg string) *spinner {
	return startSpinnerTo(ctx, os.Stderr, msg)
}

func startSpinnerTo(ctx context.Context, w io.Writer, msg string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s := &spinner{w: w, msg: msg}
	s.stop = sync.OnceFunc(func() {
		s.stopped.Store(true)
		cancel()
		<-done
	})

	frames := []rune(spinnerFrames)
	go func() {
		defer close(done)
		tick := time.NewTicker(spinnerTick)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				s.interrupted.Store(!s.stopped.Load())
				s.write(clearLine)
				return
			case <-tick.C:
				s.write(fmt.Sprintf("%s%s %s", clearLine, styleSpinner.Render(string(frames[i%len(frames)])), StyleDim.Render(s.msg)))
			}
		}
	}()
	return s
}

func (s *spinner) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.w, text)
}

// Stop clears the line. Extra calls do nothing.
func (s *spinner) Stop() { s.stop() }

// Fail clears the line and prints msg as an error.
func (s *spinner) Fail(msg string) {
	s.stop()
	printError("%s", msg)
}

// Interrupted reports whether the parent context ended the spinner
// before Stop did.
func (s *spinner) Interrupted() bool { return s.interrupted.Load() }
