package out_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	campaignadapter "chronicle/internal/modules/campaign/adapter/out"
	"chronicle/internal/modules/campaign/domain"
	"chronicle/internal/platform/kv"
	"chronicle/internal/platform/locale"
)

func TestCampaignStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := kv.NewMemoryStore()
	store := campaignadapter.NewKVCampaignStore(mem)

	if _, found, err := store.LoadCampaigns(ctx); err != nil || found {
		t.Fatalf("fresh store: found=%v err=%v", found, err)
	}
	want := []domain.Campaign{
		domain.NewDefault(time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)),
		{ID: "c2", Name: "Brine", CreatedAt: time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC), Settings: &domain.Settings{ImageStyle: "ink wash"}},
	}
	if err := store.SaveCampaigns(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, found, err := campaignadapter.NewKVCampaignStore(mem).LoadCampaigns(ctx)
	if err != nil || !found {
		t.Fatalf("reload: found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("campaigns differ after reload (-want +got):\n%s", diff)
	}
}

func TestWorkspaceStoreDefaultsAndFallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := kv.NewMemoryStore()
	store := campaignadapter.NewKVWorkspaceStore(mem)

	ws, err := store.LoadWorkspace(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ws.ActiveCampaignID != "" || ws.Language != locale.English {
		t.Fatalf("unexpected defaults: %+v", ws)
	}

	_ = mem.Set(ctx, kv.KeyLanguage, []byte(`"fr"`))
	if ws, _ = store.LoadWorkspace(ctx); ws.Language != locale.English {
		t.Fatalf("unknown language should fall back, got %q", ws.Language)
	}

	if err := store.SaveLanguage(ctx, locale.Russian); err != nil {
		t.Fatalf("save language: %v", err)
	}
	if err := store.SaveActiveCampaign(ctx, "c9"); err != nil {
		t.Fatalf("save active: %v", err)
	}
	ws, _ = store.LoadWorkspace(ctx)
	if ws.Language != locale.Russian || ws.ActiveCampaignID != "c9" {
		t.Fatalf("workspace after save: %+v", ws)
	}
	raw, _, _ := mem.Get(ctx, kv.KeyLanguage)
	if string(raw) != `"ru"` {
		t.Fatalf("language stored as %s", raw)
	}
}

func TestMigrateLegacyCopiesVerbatimAndKeepsOldKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := kv.NewMemoryStore()
	legacySessions := []byte(`[{"id":"s1","date":"2024-05-01","title":"Old","rawNotes":"n","story":"st","charactersInvolved":[]}]`)
	_ = mem.Set(ctx, kv.KeyLegacySessions, legacySessions)

	store := campaignadapter.NewKVPartitionStore(mem)
	migration, err := store.MigrateLegacy(ctx, domain.DefaultID)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !migration.Sessions || migration.Characters {
		t.Fatalf("migration = %+v", migration)
	}
	raw, found, _ := mem.Get(ctx, kv.SessionsKey(domain.DefaultID))
	if !found || string(raw) != string(legacySessions) {
		t.Fatalf("scoped sessions = %s", raw)
	}
	if _, found, _ := mem.Get(ctx, kv.KeyLegacySessions); !found {
		t.Fatalf("legacy key must be left in place")
	}

	_ = mem.Set(ctx, kv.SessionsKey(domain.DefaultID), []byte(`[]`))
	if migration, _ = store.MigrateLegacy(ctx, domain.DefaultID); migration.Sessions {
		t.Fatalf("existing partition must not be overwritten")
	}
}

func TestDropPartitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := kv.NewMemoryStore()
	_ = mem.Set(ctx, kv.SessionsKey("c1"), []byte(`[]`))
	_ = mem.Set(ctx, kv.CharactersKey("c1"), []byte(`[]`))
	_ = mem.Set(ctx, kv.SessionsKey("c2"), []byte(`[]`))

	if err := campaignadapter.NewKVPartitionStore(mem).DropPartitions(ctx, "c1"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, found, _ := mem.Get(ctx, kv.SessionsKey("c1")); found {
		t.Fatalf("sessions partition survived")
	}
	if _, found, _ := mem.Get(ctx, kv.CharactersKey("c1")); found {
		t.Fatalf("characters partition survived")
	}
	if _, found, _ := mem.Get(ctx, kv.SessionsKey("c2")); !found {
		t.Fatalf("other campaign's partition was dropped")
	}
}
