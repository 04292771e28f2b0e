package cli

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// logFormatEnv selects the log encoding: text (default), json or logfmt.
// Servers behind a log collector usually want json.
const logFormatEnv = "SUNBURST_LOG_FORMAT"

// newLogger creates a logger writing to w at the given level, encoded as
// $SUNBURST_LOG_FORMAT asks.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Formatter:       logFormatter(os.Getenv(logFormatEnv)),
	})
}

func logFormatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// stopwatch logs the time spent in consecutive stages of one command.
type stopwatch struct {
	logger *log.Logger
	last   time.Time
}

func newStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, last: time.Now()}
}

// lap logs msg with the time since the previous lap, then starts the next.
func (s *stopwatch) lap(msg string, keyvals ...any) {
	now := time.Now()
	keyvals = append(keyvals, "elapsed", now.Sub(s.last).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
	s.last = now
}
