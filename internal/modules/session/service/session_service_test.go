package service_test

import (
	"context"
	"errors"
	"testing"

	sessionadapter "chronicle/internal/modules/session/adapter/out"
	"chronicle/internal/modules/session/domain"
	"chronicle/internal/modules/session/service"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/id"
	"chronicle/internal/platform/kv"
	"chronicle/internal/platform/locale"
)

type flakyStore struct {
	*kv.MemoryStore
	fail bool
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func newService(store kv.Store) *service.SessionService {
	return service.NewSessionService(&id.Sequence{Prefix: "ses"}, sessionadapter.NewKVSessionStore(store), nil)
}

func TestRequiresScope(t *testing.T) {
	t.Parallel()

	svc := newService(kv.NewMemoryStore())
	if _, err := svc.List(context.Background()); !errors.Is(err, apperrors.ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.Session{Title: "x"}); !errors.Is(err, apperrors.ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestFailedSaveKeepsTimeline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &flakyStore{MemoryStore: kv.NewMemoryStore()}
	svc := newService(store)
	if err := svc.LoadScope(ctx, "c1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	s, err := svc.Create(ctx, domain.Session{Date: "2025-01-10", Title: "Siege", Story: "fell"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	store.fail = true
	if _, err := svc.Create(ctx, domain.Session{Date: "2025-01-11", Title: "Next"}); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, err := svc.SetTranslation(ctx, s.ID, locale.Russian, "пали"); !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 1 || list[0].Translations != nil {
		t.Fatalf("memory changed after failed write: %+v", list)
	}
}

func TestWritesToInactiveCampaignGoToStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newService(store)
	_ = svc.LoadScope(ctx, "c1")
	s, _ := svc.Create(ctx, domain.Session{Date: "2025-01-10", Title: "Siege", Story: "fell"})
	_ = svc.LoadScope(ctx, "c2")

	story := "fell"
	result, cached, err := svc.SetTranslationFor(ctx, "c1", s.ID, locale.Russian, "пали", &story)
	if err != nil || result != domain.TranslationStored || cached != "пали" {
		t.Fatalf("set translation: %v %q %v", result, cached, err)
	}
	if _, ok, err := svc.Mutate(ctx, "c1", "ghost", func(*domain.Session) {}); err != nil || ok {
		t.Fatalf("mutate of unknown id should be a no-op: %v %v", ok, err)
	}
	if list, _ := svc.List(ctx); len(list) != 0 {
		t.Fatalf("active campaign c2 should stay empty: %+v", list)
	}

	_ = svc.LoadScope(ctx, "c1")
	got, ok, _ := svc.Get(ctx, s.ID)
	if !ok || got.Translations[locale.Russian] != "пали" {
		t.Fatalf("translation not persisted to c1: %+v", got)
	}
}
