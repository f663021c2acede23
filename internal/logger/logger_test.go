package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetFile(t *testing.T) {
	old := Logger
	defer func() { Logger = old }()

	path := filepath.Join(t.TempDir(), "dockside.log")
	closeFn, err := SetFile(path)
	if err != nil {
		t.Fatalf("SetFile() failed: %v", err)
	}

	Info("snapshot loaded", "reservations", 3)
	Debug("cache invalidated")

	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file failed: %v", err)
	}
	if !strings.Contains(string(data), "snapshot loaded") {
		t.Errorf("log file missing info entry: %q", string(data))
	}
	if !strings.Contains(string(data), "cache invalidated") {
		t.Errorf("log file missing debug entry: %q", string(data))
	}
}

func TestSetFile_BadPath(t *testing.T) {
	if _, err := SetFile(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); err == nil {
		t.Error("SetFile() with missing directory should fail")
	}
}
