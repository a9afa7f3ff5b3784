package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenOutputDefaultsToStdout(t *testing.T) {
	out, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput failed: %v", err)
	}

	// Closing the default destination must never close stdout.
	if err := out.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stdout.Stat(); err != nil {
		t.Errorf("stdout unusable after Close: %v", err)
	}
}

func TestOpenOutputWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	out, err := openOutput(path)
	if err != nil {
		t.Fatalf("openOutput failed: %v", err)
	}
	if _, err := out.Write([]byte("file,faceId\na.jpg,face-a\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if string(content) != "file,faceId\na.jpg,face-a\n" {
		t.Errorf("output file content = %q", content)
	}
}

func TestOpenOutputBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "results.csv")

	if _, err := openOutput(path); err == nil {
		t.Error("expected error for output path in missing directory")
	}
}
