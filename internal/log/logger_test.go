package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelWarn},
		{"", slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithComponentWritesField(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", &buf)
	t.Cleanup(func() { Setup("warn", nil) })

	WithComponent("dust.sweep").Info("moved", "path", "a/b")

	out := buf.String()
	if !strings.Contains(out, "component=dust.sweep") {
		t.Errorf("expected component field in %q", out)
	}
	if !strings.Contains(out, "path=a/b") {
		t.Errorf("expected path field in %q", out)
	}
}

func TestSetupFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup("error", &buf)
	t.Cleanup(func() { Setup("warn", nil) })

	Get().Warn("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected no output below ERROR, got %q", buf.String())
	}
	Get().Error("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("expected error record, got %q", buf.String())
	}
}
