package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "summary.txt")
	contents := []byte("Simulation Results\n")

	if err := WriteFileAtomic(path, contents, 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(contents) {
		t.Errorf("File content mismatch: got %q, want %q", string(data), string(contents))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0644)
	}

	// No temp files left behind
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "summary.txt" {
			t.Errorf("Unexpected file in directory: %s", entry.Name())
		}
	}
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.json")

	if err := WriteFileAtomic(path, []byte(`{"rounds":1}`), 0644); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}
	updated := []byte(`{"rounds":2}`)
	if err := WriteFileAtomic(path, updated, 0644); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(updated) {
		t.Errorf("File content mismatch: got %q, want %q", string(data), string(updated))
	}
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	if err := WriteFileAtomic("/nonexistent/dir/out.txt", []byte("data"), 0644); err == nil {
		t.Error("Expected error when writing to non-existent directory")
	}
}
