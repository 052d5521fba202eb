package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLog_DisabledByDefault(t *testing.T) {
	SetOutput(nil)
	defer SetOutput(nil)

	// Must not panic or create files.
	Log("dropped %d", 1)
}

func TestLog_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Log("relayout from %d", 12)
	Warn("possible stable id collision @ %d", 4)

	got := buf.String()
	if !strings.Contains(got, "relayout from 12\n") {
		t.Errorf("output %q missing log line", got)
	}
	if !strings.Contains(got, "[warn] possible stable id collision @ 4\n") {
		t.Errorf("output %q missing warn line", got)
	}
}

func TestInit_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "engine.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Log("hello %s", "file")
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file = %q, want it to contain %q", data, "hello file")
	}
}
