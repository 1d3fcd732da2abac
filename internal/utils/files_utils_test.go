package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenOutputStdout(t *testing.T) {
	w, err := OpenOutput("")
	if err != nil {
		t.Fatalf("OpenOutput(\"\") failed: %v", err)
	}
	if w == nil {
		t.Fatal("OpenOutput(\"\") returned nil writer")
	}
	if err := w.Close(); err != nil {
		t.Errorf("closing the stdout writer should be a no-op, got %v", err)
	}
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	w, err := OpenOutput(path)
	if err != nil {
		t.Fatalf("OpenOutput(%q) failed: %v", path, err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("file content = %q, want %q", content, "hello")
	}
}

func TestOpenOutputBadPath(t *testing.T) {
	if _, err := OpenOutput("/nonexistent-dir/report.txt"); err == nil {
		t.Error("OpenOutput with an unwritable path should fail")
	}
}
