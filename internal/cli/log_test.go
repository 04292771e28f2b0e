package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("built partition", "nodes", 4) }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("cache opened") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("cache opened") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerFormats(t *testing.T) {
	tests := []struct {
		env   string
		check func(t *testing.T, out string)
	}{
		{"", func(t *testing.T, out string) {
			if !strings.Contains(out, "nodes=4") {
				t.Errorf("text output %q missing nodes=4", out)
			}
		}},
		{"logfmt", func(t *testing.T, out string) {
			if !strings.Contains(out, "msg=\"built partition\"") || !strings.Contains(out, "nodes=4") {
				t.Errorf("logfmt output %q", out)
			}
		}},
		{"JSON", func(t *testing.T, out string) {
			var entry map[string]any
			if err := json.Unmarshal([]byte(out), &entry); err != nil {
				t.Fatalf("json output %q: %v", out, err)
			}
			if entry["msg"] != "built partition" || entry["nodes"] != float64(4) {
				t.Errorf("json entry = %v", entry)
			}
		}},
	}
	for _, tt := range tests {
		t.Run("format="+tt.env, func(t *testing.T) {
			t.Setenv(logFormatEnv, tt.env)
			var buf bytes.Buffer
			newLogger(&buf, log.InfoLevel).Info("built partition", "nodes", 4)
			tt.check(t, strings.TrimSpace(buf.String()))
		})
	}
}

func TestStopwatch(t *testing.T) {
	var buf bytes.Buffer
	sw := newStopwatch(newLogger(&buf, log.InfoLevel))

	time.Sleep(10 * time.Millisecond)
	sw.lap("Built partition", "nodes", 4)
	sw.lap("Rendered")

	out := buf.String()
	if !strings.Contains(out, "Built partition") || !strings.Contains(out, "nodes=4") {
		t.Errorf("lap output %q missing message or fields", out)
	}
	if strings.Count(out, "elapsed=") != 2 {
		t.Errorf("each lap should log its elapsed time: %q", out)
	}
}
