package store

import (
	"testing"

	"github.com/nbmusic/nbx/internal/shared"
)

func TestSQLiteStorage(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	storage := NewSQLiteStorage(db)

	t.Run("missing key is an error", func(t *testing.T) {
		if _, err := storage.Load("nope"); err == nil {
			t.Error("expected error for missing key")
		}
	})

	t.Run("stores and loads a value", func(t *testing.T) {
		if err := storage.Store(StorageKey, []byte(`[{"name":"test"}]`)); err != nil {
			t.Fatalf("store failed: %v", err)
		}

		value, err := storage.Load(StorageKey)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if string(value) != `[{"name":"test"}]` {
			t.Errorf("unexpected value: %s", value)
		}
	})

	t.Run("upserts on conflict", func(t *testing.T) {
		if err := storage.Store(StorageKey, []byte(`[]`)); err != nil {
			t.Fatalf("store failed: %v", err)
		}

		value, err := storage.Load(StorageKey)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if string(value) != `[]` {
			t.Errorf("expected overwritten value, got %s", value)
		}
	})
}
