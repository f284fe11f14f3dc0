package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/flemzord/tgrelay/internal/security"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"TRACE", LevelTrace},
		{"debug", slog.LevelDebug},
		{" success ", LevelSuccess},
		{"warning", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelName(t *testing.T) {
	if got := LevelName(LevelTrace); got != "TRACE" {
		t.Errorf("LevelName(LevelTrace) = %q, want TRACE", got)
	}
	if got := LevelName(LevelSuccess); got != "SUCCESS" {
		t.Errorf("LevelName(LevelSuccess) = %q, want SUCCESS", got)
	}
	if got := LevelName(slog.LevelWarn); got != "WARN" {
		t.Errorf("LevelName(LevelWarn) = %q, want WARN", got)
	}
}

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Console: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer l.Close()

	l.Debug("hidden")
	l.Log(context.Background(), LevelSuccess, "config loaded")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record reached info console: %s", out)
	}
	if !strings.Contains(out, "level=SUCCESS") {
		t.Errorf("success level not rendered by name: %s", out)
	}
}

func TestNew_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Console: &buf, Level: slog.LevelError})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer l.Close()

	l.Warn("first")
	l.SetLevel(slog.LevelWarn)
	l.Warn("second")

	out := buf.String()
	if strings.Contains(out, "first") {
		t.Errorf("warn record written below configured level: %s", out)
	}
	if !strings.Contains(out, "second") {
		t.Errorf("warn record missing after SetLevel: %s", out)
	}
}

func TestNew_FileKeepsTraceAndRedacts(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	redactor := security.NewRedactor()
	redactor.AddLiteral("T0KEN-SECRET")

	l, err := New(Options{Console: &console, Dir: dir, Redactor: redactor})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	l.Log(context.Background(), LevelTrace, "logging started")
	l.Info("credential resolved", "value", "T0KEN-SECRET")
	path := l.file.Path()
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	file := string(data)
	if !strings.Contains(file, "level=TRACE") {
		t.Errorf("trace record missing from file: %s", file)
	}
	if strings.Contains(console.String(), "logging started") {
		t.Errorf("trace record reached console: %s", console.String())
	}
	if strings.Contains(file, "T0KEN-SECRET") || strings.Contains(console.String(), "T0KEN-SECRET") {
		t.Error("literal secret leaked into log output")
	}
}
