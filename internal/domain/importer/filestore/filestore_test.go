package filestore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocal_ReadAndRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(path, []byte("Type,Name\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewLocal(dir)

	data, err := store.Read("export.csv")
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(data) != "Type,Name\n" {
		t.Errorf("Read = %q", data)
	}

	if err := store.Remove("export.csv"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove")
	}

	// Removing again is not an error.
	if err := store.Remove("export.csv"); err != nil {
		t.Errorf("second Remove error: %v", err)
	}
}

func TestLocal_RejectsTraversal(t *testing.T) {
	store := NewLocal(t.TempDir())
	if _, err := store.Read("../etc/passwd"); err == nil {
		t.Error("expected error for traversal name")
	}
	if err := store.Remove("/abs/path"); err == nil {
		t.Error("expected error for absolute name")
	}
}
