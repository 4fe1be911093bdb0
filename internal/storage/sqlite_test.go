package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestSQLiteKVSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "session.db")

	kv, err := NewSQLiteKV(dbPath, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if kv.Session() == "" {
		t.Fatalf("expected a session id")
	}

	if err := kv.Set(ctx, DefaultKey, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, DefaultKey, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, DefaultKey)
	if err != nil || !ok || string(v) != `{"a":2}` {
		t.Fatalf("unexpected get: %q ok=%v err=%v", v, ok, err)
	}

	other, err := NewSQLiteKV(dbPath, nil)
	if err != nil {
		t.Fatalf("open second session: %v", err)
	}
	defer other.Close()
	if _, ok, _ := other.Get(ctx, DefaultKey); ok {
		t.Fatalf("sessions must not share rows")
	}

	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM session_kv WHERE session_id = ?`, kv.Session()).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected session rows removed, found %d", n)
	}
}

func TestSQLiteKVDelete(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "kv.db"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, err := kv.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected missing key after delete, ok=%v err=%v", ok, err)
	}
	if err := kv.Delete(ctx, "missing"); err != nil {
		t.Fatalf("deleting a missing key must be a no-op: %v", err)
	}
}
