package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "todo-list-tasks"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.Set(ctx, "todo-list-tasks", `[{"id":"a"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "todo-list-tasks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `[{"id":"a"}]` {
		t.Fatalf("unexpected value: %q", got)
	}

	if err := store.Set(ctx, "todo-list-tasks", "[]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = store.Get(ctx, "todo-list-tasks")
	if err != nil || got != "[]" {
		t.Fatalf("expected overwritten value, got %q err=%v", got, err)
	}

	if err := store.Remove(ctx, "todo-list-tasks"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get(ctx, "todo-list-tasks"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
	if err := store.Remove(ctx, "todo-list-tasks"); err != nil {
		t.Fatalf("remove of missing key should be a no-op, got %v", err)
	}

	if err := store.Set(ctx, " ", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	exerciseStore(t, store)
}

func TestFileStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	first, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	if err := first.Set(context.Background(), "todo-list-checksum", "-12345"); err != nil {
		t.Fatalf("set: %v", err)
	}

	second, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen file store: %v", err)
	}
	got, err := second.Get(context.Background(), "todo-list-checksum")
	if err != nil || got != "-12345" {
		t.Fatalf("expected persisted value, got %q err=%v", got, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err=%v", err)
	}
}

func TestFileStoreRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Fatal("expected error for malformed store file")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "tasklist-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}

func TestSQLiteStoreOverwritesInMemory(t *testing.T) {
	store, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	for _, v := range []string{"[]", `[{"id":"a"}]`} {
		if err := store.Set(ctx, "k", v); err != nil {
			t.Fatalf("set %q: %v", v, err)
		}
	}
	got, err := store.Get(ctx, "k")
	if err != nil || got != `[{"id":"a"}]` {
		t.Fatalf("expected last write to win, got %q err=%v", got, err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TASKLIST_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TASKLIST_TEST_REDIS_ADDR not set")
	}
	store, err := OpenRedis(context.Background(), addr, 15)
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}

func TestOpenSelectsKind(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, Options{Kind: KindMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected *MemoryStore, got %T", store)
	}

	store, err = Open(ctx, Options{Kind: KindFile, Path: filepath.Join(t.TempDir(), "s.json")})
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("expected *FileStore, got %T", store)
	}

	if _, err := Open(ctx, Options{Kind: Kind("etcd")}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" SQLite "); err != nil || k != KindSQLite {
		t.Fatalf("parse kind: %q %v", k, err)
	}
	if _, err := ParseKind("mongo"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}
