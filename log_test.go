package kdvec

import "testing"

func TestNopLoggerDiscardsEverything(t *testing.T) {
	l := NopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	if l.With("k", "v") == nil {
		t.Fatal("With() returned nil")
	}
}

func TestDefaultLoggerWithAppendsFields(t *testing.T) {
	l := NewLogger().With("component", "test")
	child := l.With("request_id", 1)

	dl, ok := child.(*defaultLogger)
	if !ok {
		t.Fatalf("With() returned %T, want *defaultLogger", child)
	}
	if len(dl.fields) != 4 {
		t.Fatalf("len(fields) = %d, want 4 (2 key-value pairs)", len(dl.fields))
	}
}
