package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "selesai-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestSQLiteKVPutGetDelete(t *testing.T) {
	kv := setupSQLite(t)
	ctx := context.Background()

	if _, err := kv.Get(ctx, "todos"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on empty db, got: %v", err)
	}

	if err := kv.Put(ctx, "todos", []byte(`[{"id":1,"description":"a","checked":false}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "todos", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := kv.Get(ctx, "todos")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("put should replace the prior value, got %q", got)
	}

	if err := kv.Delete(ctx, "todos"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "todos"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound deleting twice, got: %v", err)
	}
}

func TestSQLiteKVTracksUpdatedAt(t *testing.T) {
	kv := setupSQLite(t)
	ctx := context.Background()
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return fixed }

	if err := kv.Put(ctx, "todos", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	var raw string
	if err := kv.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, "todos").Scan(&raw); err != nil {
		t.Fatalf("read updated_at: %v", err)
	}
	if raw != fixed.Format(sqliteTimeLayout) {
		t.Fatalf("updated_at = %s, want %s", raw, fixed.Format(sqliteTimeLayout))
	}
}
