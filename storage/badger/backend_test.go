package badger

import (
	"path/filepath"
	"testing"
)

func TestOpenBackendInMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open in-memory backend: %v", err)
	}
	if backend.IsClosed() {
		t.Fatal("Expected open backend")
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Failed to close backend: %v", err)
	}
	if !backend.IsClosed() {
		t.Fatal("Expected closed backend")
	}
}

func TestOpenBackendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain_db")

	backend, err := OpenBackend(path, false)
	if err != nil {
		t.Fatalf("Failed to open backend at %s: %v", path, err)
	}
	defer backend.Close()
}
