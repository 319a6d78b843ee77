package playpen

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() {
		SetLogger(nil)
		SetDebugMode(false)
	})
	return &buf
}

func TestDebugModeToggle(t *testing.T) {
	SetDebugMode(true)
	if !DebugMode() {
		t.Error("DebugMode() = false after enabling")
	}
	SetDebugMode(false)
	if DebugMode() {
		t.Error("DebugMode() = true after disabling")
	}
}

func TestDebugCoverageLogged(t *testing.T) {
	buf := captureLog(t)
	p := NewPainter(PaintConfig{}, nil)
	if err := p.AddRegion(NewRegion("sky", Vec2{}, NewSolidMask(16, 16), ColorWhite)); err != nil {
		t.Fatal(err)
	}

	p.CheckCoverage("sky")
	if strings.Contains(buf.String(), "coverage check") {
		t.Error("coverage logged with debug mode off")
	}

	SetDebugMode(true)
	p.CheckCoverage("sky")
	out := buf.String()
	if !strings.Contains(out, "playpen: coverage check") || !strings.Contains(out, "region=sky") {
		t.Errorf("log output = %q, want a coverage check line for sky", out)
	}
}

func TestDebugStrokeLogged(t *testing.T) {
	buf := captureLog(t)
	SetDebugMode(true)
	s := loadSession(t, SessionConfig{HintDelay: -1}, nil)
	drive(s, squarePath(50, 50, 150, 150, 10))
	if !strings.Contains(buf.String(), "stroke validated") {
		t.Errorf("log output = %q, want stroke validated", buf.String())
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() = nil after SetLogger(nil)")
	}
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}
