package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestInit(t *testing.T) {
	Init("info", "text")
	if slog.Default() == nil {
		t.Fatal("no default logger after Init")
	}
	Init("debug", "json")
	if level.Level() != slog.LevelDebug {
		t.Errorf("level after Init(debug): %v", level.Level())
	}
	SetLevel(slog.LevelInfo)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"  Error  ", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestComponentHandlerTracksLevel(t *testing.T) {
	Init("warn", "text")
	defer SetLevel(slog.LevelInfo)

	h := componentHandler("test")
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should not be enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestForUsesCurrentDefault(t *testing.T) {
	logger := For("mycomp")

	// Capture is installed after For; the logger must still hit it.
	c := CaptureForTest()
	defer c.Restore()

	logger.Info("component log", "key", "value")
	if !c.Has(slog.LevelInfo, "component log") {
		t.Error("component logger bypassed the captured handler")
	}
}

func TestCapture(t *testing.T) {
	c := CaptureForTest()
	defer c.Restore()

	slog.Info("hello")
	slog.Warn("warning message")
	slog.Debug("debug detail")

	if got := len(c.Records()); got != 3 {
		t.Fatalf("expected 3 records, got %d", got)
	}
	if !c.Has(slog.LevelInfo, "hello") {
		t.Error("missing info 'hello'")
	}
	if !c.Has(slog.LevelWarn, "warning") {
		t.Error("missing warn 'warning'")
	}
	if c.Has(slog.LevelError, "hello") {
		t.Error("level must match, not just the message")
	}
}

func TestCaptureRestore(t *testing.T) {
	prev := slog.Default()
	c := CaptureForTest()
	c.Restore()

	if slog.Default() != prev {
		t.Error("default logger not restored")
	}
}
