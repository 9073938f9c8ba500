package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDebouncesBurstIntoOneNotification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w, err := New(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	go w.Run()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{"n":1}`), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case got := <-w.Changed():
		if got != path {
			t.Fatalf("Changed() = %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for debounced change notification")
	}

	// No second notification should already be queued from the burst.
	select {
	case extra := <-w.Changed():
		t.Fatalf("unexpected extra notification: %q", extra)
	default:
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := New(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
}
