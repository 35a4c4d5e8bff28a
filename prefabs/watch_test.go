package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "scene.yaml"), []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Non-reloadable files must be filtered out, not reported.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if !strings.HasSuffix(name, "scene.yaml") {
			t.Fatalf("event for %q, want scene.yaml", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for scene.yaml")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	// Keep traffic flowing while Close races the forwarding goroutine.
	stop := make(chan struct{})
	go func() {
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			_ = os.WriteFile(filepath.Join(dir, "scene.yaml"), []byte("name: x\n"), 0o644)
		}
	}()

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	close(stop)

	drained := make(chan struct{})
	go func() {
		for range w.Events {
		}
		for range w.Errors {
		}
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(5 * time.Second):
		t.Fatal("channels never closed after Close")
	}
}
