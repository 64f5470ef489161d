package logger

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func newBufferedLogger(prefix string, buf *bytes.Buffer) *Logger {
	l := NewLogger(prefix)
	l.logger = newZerolog(buf, prefix)
	return l
}

// --- Level string representation test ---
func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel.String() = %s; want %s", got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"", INFO, false},
		{" warning ", WARN, false},
		{"error", ERROR, false},
		{"fatal", FATAL, false},
		{"verbose", INFO, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}

// --- SetLevel and GetLevel test ---
func TestSetAndGetLevel(t *testing.T) {
	l := NewLogger("test")
	l.SetLevel(DEBUG)
	if got := l.GetLevel(); got != DEBUG {
		t.Errorf("GetLevel() = %v; want %v", got, DEBUG)
	}
}

func TestDefaultLevelAppliesToNewLoggers(t *testing.T) {
	SetDefaultLevel(WARN)
	defer SetDefaultLevel(INFO)

	if got := NewLogger("x").GetLevel(); got != WARN {
		t.Errorf("NewLogger level = %v; want %v", got, WARN)
	}
}

func TestSetFormat(t *testing.T) {
	defer SetFormat(FormatConsole)

	if err := SetFormat(FormatJSON); err != nil {
		t.Fatalf("SetFormat(json) failed: %v", err)
	}
	if err := SetFormat("xml"); err == nil {
		t.Errorf("Expected error for unknown format")
	}
}

// --- Level-based logging behavior ---
func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger("", &buf)
	l.SetLevel(DEBUG)

	l.Debugf("debug msg")
	l.Infof("info msg")
	l.Warnf("warn msg")
	l.Errorf("error msg")

	logs := buf.String()
	for _, msg := range []string{"debug msg", "info msg", "warn msg", "error msg"} {
		if !strings.Contains(logs, msg) {
			t.Errorf("Expected log to contain %q", msg)
		}
	}
	for _, lvl := range []string{`"level":"debug"`, `"level":"info"`, `"level":"warn"`, `"level":"error"`} {
		if !strings.Contains(logs, lvl) {
			t.Errorf("Expected log to contain %s, got:\n%s", lvl, logs)
		}
	}
}

// --- Level filtering ---
func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger("", &buf)
	l.SetLevel(WARN)

	l.Debugf("debug msg")
	l.Infof("info msg")
	l.Warnf("warn msg")

	logs := buf.String()
	if strings.Contains(logs, "debug msg") || strings.Contains(logs, "info msg") {
		t.Errorf("Unexpected log entries at level WARN")
	}
	if !strings.Contains(logs, "warn msg") {
		t.Errorf("Expected WARN log to be present")
	}
}

func TestComponentInLogOutput(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger("Registry", &buf)
	l.SetLevel(INFO)

	l.Infof("plant %s created", "tenant-1")

	output := buf.String()
	if !strings.Contains(output, `"component":"Registry"`) {
		t.Errorf("Expected component field in output, got: %s", output)
	}
	if !strings.Contains(output, "plant tenant-1 created") {
		t.Errorf("Expected formatted message in output, got: %s", output)
	}
	if l.GetPrefix() != "Registry" {
		t.Errorf("GetPrefix() = %q; want %q", l.GetPrefix(), "Registry")
	}
}

// --- Fatalf test using subprocess isolation ---
func TestFatalf(t *testing.T) {
	if os.Getenv("TEST_FATAL") == "1" {
		l := NewLogger("test")
		l.Fatalf("fatal error occurred")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalf")
	cmd.Env = append(os.Environ(), "TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = &stderr

	err := cmd.Run()

	if exitErr, ok := err.(*exec.ExitError); !ok || exitErr.ExitCode() != 1 {
		t.Errorf("Expected exit code 1, got %v", err)
	}

	output := stderr.String()
	if !strings.Contains(output, "fatal error occurred") || !strings.Contains(output, "goroutine") {
		t.Errorf("Fatalf did not log expected output or stack trace:\n%s", output)
	}
}
