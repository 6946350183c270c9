package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	campaignadapter "chronicle/internal/modules/campaign/adapter/out"
	"chronicle/internal/modules/campaign/service"
	"chronicle/internal/platform/clock"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/id"
	"chronicle/internal/platform/kv"
)

// flakyStore fails writes to one key on demand.
type flakyStore struct {
	*kv.MemoryStore
	failKey string
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return errors.New("quota exceeded")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestFailedWriteLeavesMemoryUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &flakyStore{MemoryStore: kv.NewMemoryStore()}
	svc := service.NewCampaignService(
		clock.Fixed{At: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		&id.Sequence{},
		campaignadapter.NewKVCampaignStore(store),
		campaignadapter.NewKVWorkspaceStore(store),
		campaignadapter.NewKVPartitionStore(store),
		nil,
	)
	if _, err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	store.failKey = kv.KeyCampaigns
	_, err := svc.Create(ctx, "Brine", "", nil)
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 1 {
		t.Fatalf("memory changed after failed write: %d campaigns", len(list))
	}
	ws, _ := svc.Workspace(ctx)
	if ws.ActiveCampaignID != "default-chronicle" {
		t.Fatalf("active changed after failed write: %q", ws.ActiveCampaignID)
	}
}

func TestBootstrapReplacesEmptyCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kv.NewMemoryStore()
	_ = store.Set(ctx, kv.KeyCampaigns, []byte(`[]`))
	_ = store.Set(ctx, kv.KeyLegacySessions, []byte(`[]`))
	svc := service.NewCampaignService(clock.SystemClock{}, &id.Sequence{Prefix: "c"}, campaignadapter.NewKVCampaignStore(store),
		campaignadapter.NewKVWorkspaceStore(store), campaignadapter.NewKVPartitionStore(store), nil)

	ws, err := svc.Bootstrap(ctx)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if ws.ActiveCampaignID != "c-1" {
		t.Fatalf("active = %q", ws.ActiveCampaignID)
	}
	if _, found, _ := store.Get(ctx, kv.SessionsKey("c-1")); found {
		t.Fatalf("legacy migration only runs on first start")
	}
}

func TestFailedMigrationIsRetriedOnNextStart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	legacy := []byte(`[{"id":"s1","date":"2024-05-01","title":"Old","rawNotes":"n","story":"s"}]`)
	store := &flakyStore{MemoryStore: kv.NewMemoryStore(), failKey: kv.SessionsKey("default-chronicle")}
	_ = store.Set(ctx, kv.KeyLegacySessions, legacy)
	newSvc := func() *service.CampaignService {
		return service.NewCampaignService(clock.SystemClock{}, &id.Sequence{}, campaignadapter.NewKVCampaignStore(store),
			campaignadapter.NewKVWorkspaceStore(store), campaignadapter.NewKVPartitionStore(store), nil)
	}

	if _, err := newSvc().Bootstrap(ctx); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, found, _ := store.Get(ctx, kv.KeyCampaigns); found {
		t.Fatalf("campaigns saved although migration failed")
	}

	store.failKey = ""
	if _, err := newSvc().Bootstrap(ctx); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	got, found, _ := store.Get(ctx, kv.SessionsKey("default-chronicle"))
	if !found || string(got) != string(legacy) {
		t.Fatalf("legacy sessions not migrated on retry: %s", got)
	}
	if _, found, _ := store.Get(ctx, kv.KeyCampaigns); !found {
		t.Fatalf("campaigns not saved after successful migration")
	}
}
