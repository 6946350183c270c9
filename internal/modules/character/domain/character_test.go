package domain_test

import (
	"testing"

	"chronicle/internal/modules/character/domain"
)

func roster() []domain.Character {
	return []domain.Character{
		{ID: "c1", Name: "Ysolde"},
		{ID: "c2", Name: "Brann"},
	}
}

func TestReplaceKeepsPosition(t *testing.T) {
	t.Parallel()

	list := roster()
	out, ok := domain.Replace(list, domain.Character{ID: "c1", Name: "Ysolde the Grey"})
	if !ok || out[0].Name != "Ysolde the Grey" || out[1].ID != "c2" {
		t.Fatalf("replace: ok=%v out=%+v", ok, out)
	}
	if list[0].Name != "Ysolde" {
		t.Fatalf("replace mutated input")
	}
	if _, ok := domain.Replace(list, domain.Character{ID: "c9"}); ok {
		t.Fatalf("unknown id should not match")
	}
}

func TestRemoveThenResolveReportsUnknown(t *testing.T) {
	t.Parallel()

	out, ok := domain.Remove(roster(), "c2")
	if !ok || len(out) != 1 {
		t.Fatalf("remove: ok=%v out=%+v", ok, out)
	}
	known, unknown := domain.Resolve(out, []string{"c2", "c1"})
	if len(known) != 1 || known[0].ID != "c1" {
		t.Fatalf("known = %+v", known)
	}
	if len(unknown) != 1 || unknown[0] != "c2" {
		t.Fatalf("unknown = %v", unknown)
	}
}
