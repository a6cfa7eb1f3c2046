package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestEngineEmitsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	engine := NewEngine(path, 4, 20*time.Millisecond, zerolog.Nop())
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer engine.Stop()

	if err := os.WriteFile(path, []byte(`{"todos":"[]"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ev := waitEvent(t, engine.C(), 2*time.Second)
	if ev.Path != engine.Path() {
		t.Fatalf("unexpected path %q", ev.Path)
	}
}

func TestEngineDebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	engine := NewEngine(path, 16, 150*time.Millisecond, zerolog.Nop())
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer engine.Stop()

	for i := 0; i < 10; i++ {
		if err := os.WriteFile(path, []byte{byte('0' + i)}, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	waitEvent(t, engine.C(), 2*time.Second)
	select {
	case ev := <-engine.C():
		t.Fatalf("expected a single event for the burst, got extra %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestEngineIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(filepath.Join(dir, "state.json"), 4, 10*time.Millisecond, zerolog.Nop())
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer engine.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestEngineStopClosesChannel(t *testing.T) {
	engine := NewEngine(filepath.Join(t.TempDir(), "state.json"), 1, 0, zerolog.Nop())
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.Stop()
	engine.Stop()
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
	if err := engine.Start(); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan ChangeEvent, timeout time.Duration) ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return ev
	case <-time.After(timeout):
		t.Fatal("timed out waiting for change event")
	}
	return ChangeEvent{}
}
