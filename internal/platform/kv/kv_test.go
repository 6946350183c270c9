package kv_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"chronicle/internal/platform/clock"
	"chronicle/internal/platform/kv"
)

func stores(t *testing.T) map[string]kv.Store {
	t.Helper()

	sqlite, err := kv.NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "chronicle.db"), clock.Fixed{At: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]kv.Store{
		"memory": kv.NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, found, err := store.Get(ctx, "missing"); err != nil || found {
				t.Fatalf("missing key: found=%v err=%v", found, err)
			}
			if err := store.Set(ctx, kv.SessionsKey("c1"), []byte(`[1]`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set(ctx, kv.SessionsKey("c1"), []byte(`[2]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			raw, found, err := store.Get(ctx, kv.SessionsKey("c1"))
			if err != nil || !found {
				t.Fatalf("get: found=%v err=%v", found, err)
			}
			if string(raw) != `[2]` {
				t.Fatalf("value = %s", raw)
			}
			if err := store.Remove(ctx, kv.SessionsKey("c1")); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if _, found, _ := store.Get(ctx, kv.SessionsKey("c1")); found {
				t.Fatalf("expected key removed")
			}
			if err := store.Remove(ctx, "never-written"); err != nil {
				t.Fatalf("remove absent key: %v", err)
			}
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kv.NewMemoryStore()
	type record struct {
		Name string `json:"name"`
	}
	var got record
	found, err := kv.GetJSON(ctx, store, "r", &got)
	if err != nil || found {
		t.Fatalf("absent: found=%v err=%v", found, err)
	}
	if err := kv.SetJSON(ctx, store, "r", record{Name: "Ysolde"}); err != nil {
		t.Fatalf("set json: %v", err)
	}
	if _, err := kv.GetJSON(ctx, store, "r", &got); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if got.Name != "Ysolde" {
		t.Fatalf("name = %q", got.Name)
	}

	if err := store.Set(ctx, "broken", []byte("{")); err != nil {
		t.Fatalf("set raw: %v", err)
	}
	if found, err := kv.GetJSON(ctx, store, "broken", &got); err == nil || !found {
		t.Fatalf("expected decode error, found=%v err=%v", found, err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kv.NewMemoryStore()
	value := []byte("abc")
	_ = store.Set(ctx, "k", value)
	value[0] = 'z'
	raw, _, _ := store.Get(ctx, "k")
	if string(raw) != "abc" {
		t.Fatalf("stored value aliased caller slice: %s", raw)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chronicle.db")
	first, err := kv.NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(ctx, kv.KeyLanguage, []byte(`"ru"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = first.Close()

	second, err := kv.NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	raw, found, err := second.Get(ctx, kv.KeyLanguage)
	if err != nil || !found || string(raw) != `"ru"` {
		t.Fatalf("reopen get: %s found=%v err=%v", raw, found, err)
	}
}
