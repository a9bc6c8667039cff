package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// captureLogOutput direciona os loggers para um buffer durante fn.
func captureLogOutput(level string, fn func()) string {
	var buf bytes.Buffer

	SetOutput(&buf)
	SetLevel(level)
	defer func() {
		RestoreOutput()
		SetLevel("INFO")
	}()

	fn()
	return strings.TrimSpace(buf.String())
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func()
		expected string
	}{
		{name: "info", logFunc: func() { Info("submitted %s", "doc-1") }, expected: "submitted doc-1"},
		{name: "warn", logFunc: func() { Warn("stats failed") }, expected: "stats failed"},
		{name: "error", logFunc: func() { Error("transport down") }, expected: "transport down"},
		{name: "debug", logFunc: func() { Debug("request %d", 7) }, expected: "request 7"},
		{name: "success", logFunc: func() { Success("done") }, expected: "SUCCESS"},
		{name: "resty", logFunc: func() { RestyLogger{}.Warnf("retrying %d", 1) }, expected: "(resty) retrying 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLogOutput("DEBUG", tt.logFunc)
			if !strings.Contains(out, tt.expected) {
				t.Fatalf("expected output to contain %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestSetLevel_FiltersLowerLevels(t *testing.T) {
	out := captureLogOutput("ERROR", func() {
		Info("hidden info")
		Warn("hidden warn")
		Success("hidden success")
		Error("visible error")
	})

	if strings.Contains(out, "hidden") {
		t.Fatalf("expected lower levels to be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible error") {
		t.Fatalf("expected error to be logged, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"DEBUG": log.DebugLevel,
		"INFO":  log.InfoLevel,
		"WARN":  log.WarnLevel,
		"ERROR": log.ErrorLevel,
		"bogus": log.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestLevelWriter_LogsEachLine(t *testing.T) {
	out := captureLogOutput("DEBUG", func() {
		w := NewLevelWriter("warn", "gin")
		n, err := w.Write([]byte("first line\n\n  second line  \n"))
		if err != nil || n == 0 {
			t.Errorf("unexpected write result n=%d err=%v", n, err)
		}
	})

	if !strings.Contains(out, "gin: first line") || !strings.Contains(out, "gin: second line") {
		t.Fatalf("expected both lines with prefix, got %q", out)
	}
	if strings.Count(out, "WARN") != 2 {
		t.Fatalf("expected two WARN entries, got %q", out)
	}
}
