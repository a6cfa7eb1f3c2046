package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileKVMissingFileIsEmpty(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "state.json"))
	if _, err := kv.Get(context.Background(), "todos"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestFileKVPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "state.json")
	ctx := context.Background()

	first := NewFileKV(path)
	if err := first.Put(ctx, "todos", []byte(`[{"id":1,"description":"Buy milk","checked":false}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := first.Put(ctx, "theme", []byte(`"dark"`)); err != nil {
		t.Fatalf("put second key: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err: %v", err)
	}

	second := NewFileKV(path)
	got, err := second.Get(ctx, "todos")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":1,"description":"Buy milk","checked":false}]` {
		t.Fatalf("unexpected value: %q", got)
	}
	theme, err := second.Get(ctx, "theme")
	if err != nil || string(theme) != `"dark"` {
		t.Fatalf("other keys must survive, got %q, %v", theme, err)
	}

	if err := second.Delete(ctx, "todos"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := first.Get(ctx, "todos"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestFileKVCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	kv := NewFileKV(path)
	ctx := context.Background()
	if _, err := kv.Get(ctx, "todos"); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got: %v", err)
	}
	if err := kv.Put(ctx, "todos", []byte(`[]`)); err != nil {
		t.Fatalf("put over corrupt document: %v", err)
	}
	got, err := kv.Get(ctx, "todos")
	if err != nil || string(got) != "[]" {
		t.Fatalf("expected document to be replaced, got %q, %v", got, err)
	}
}
