package domain_test

import (
	"testing"
	"time"

	"chronicle/internal/modules/campaign/domain"
)

func sample() []domain.Campaign {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Campaign{
		{ID: "a", Name: "Ashes", CreatedAt: at},
		{ID: "b", Name: "Brine", CreatedAt: at},
	}
}

func TestMergeOnlyTouchesGivenFields(t *testing.T) {
	t.Parallel()

	list := sample()
	desc := "Salt and ruin"
	out, merged, ok := domain.Merge(list, "b", domain.Patch{Description: &desc, Settings: &domain.Settings{ImageStyle: "ink"}})
	if !ok {
		t.Fatalf("expected merge to match b")
	}
	if merged.Name != "Brine" || merged.Description != desc || merged.Settings.ImageStyle != "ink" {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if list[1].Description != "" {
		t.Fatalf("merge mutated input list")
	}
	if out[1].Description != desc {
		t.Fatalf("merge result not placed in list")
	}
}

func TestMergeUnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	name := "x"
	list := sample()
	out, _, ok := domain.Merge(list, "zzz", domain.Patch{Name: &name})
	if ok || len(out) != 2 || out[0].Name != "Ashes" {
		t.Fatalf("expected no-op, got ok=%v out=%+v", ok, out)
	}
}

func TestRemoveAndResolveActive(t *testing.T) {
	t.Parallel()

	out, ok := domain.Remove(sample(), "a")
	if !ok || len(out) != 1 || out[0].ID != "b" {
		t.Fatalf("remove a: ok=%v out=%+v", ok, out)
	}
	if _, ok := domain.Remove(out, "a"); ok {
		t.Fatalf("second remove should not match")
	}
	if got := domain.ResolveActive(out, "a"); got != "b" {
		t.Fatalf("resolve dangling active = %q", got)
	}
	if got := domain.ResolveActive(out, "b"); got != "b" {
		t.Fatalf("resolve known active = %q", got)
	}
	if got := domain.ResolveActive(nil, "b"); got != "" {
		t.Fatalf("resolve on empty list = %q", got)
	}
}
