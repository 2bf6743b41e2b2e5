package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestOptionsOverride(t *testing.T) {
	base := Options{Format: FormatConsole, Level: "warn"}

	if got := base.Override(false, false); got != base {
		t.Fatalf("expected options unchanged, got %+v", got)
	}

	got := base.Override(true, true)
	if got.Format != FormatJSON || got.Level != "debug" {
		t.Fatalf("expected json at debug, got %+v", got)
	}
}

func TestNewWritesJSONAtConfiguredLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nextstep.log")

	log, err := New(Options{Format: FormatJSON, Level: "warn", Output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info("dropped")
	log.Warn("kept")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(lines), data)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("record is not json: %v", err)
	}
	if record["msg"] != "kept" || record["level"] != "warn" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "unknown format", opts: Options{Format: "logfmt"}},
		{name: "unknown level", opts: Options{Level: "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Fatalf("expected error for %+v", tt.opts)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	log, err := New(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug should be disabled by default")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be enabled by default")
	}
}
