package attrs

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestNormalizeIsKeyOrderIndependent(t *testing.T) {
	t.Parallel()

	a := Normalize(strPtr(`{"Color":"Red","Size":"M"}`), nil)
	b := Normalize(strPtr(`{"Size":"M","Color":"Red"}`), nil)

	if a != b {
		t.Fatalf("signatures differ: %q vs %q", a, b)
	}
	if a != `{"Color":"Red","Size":"M"}` {
		t.Fatalf("unexpected canonical form %q", a)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	t.Parallel()

	raw := strPtr(`{"Capacity":"512GB","Color":"Blue"}`)
	first := Normalize(raw, nil)
	for i := 0; i < 20; i++ {
		if got := Normalize(raw, nil); got != first {
			t.Fatalf("iteration %d produced %q, want %q", i, got, first)
		}
	}
}

func TestNormalizeDerivesDefaultsFromCatalog(t *testing.T) {
	t.Parallel()

	catalog := map[string][]string{
		"Size":  {"S", "M", "L"},
		"Color": {"Green", "Blue"},
	}

	got := Normalize(nil, catalog)
	want := `{"Color":"Green","Size":"S"}`
	if got != want {
		t.Fatalf("default signature %q, want %q", got, want)
	}

	// Undecodable input falls back to the same defaults.
	if got := Normalize(strPtr("not-json"), catalog); got != want {
		t.Fatalf("fallback signature %q, want %q", got, want)
	}
	if got := Normalize(strPtr(""), catalog); got != want {
		t.Fatalf("blank input signature %q, want %q", got, want)
	}
}

func TestNormalizePlaceholderForAttributelessProducts(t *testing.T) {
	t.Parallel()

	if got := Normalize(nil, nil); got != PlaceholderSignature {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := Normalize(nil, map[string][]string{"Size": {}}); got != PlaceholderSignature {
		t.Fatalf("empty value lists should yield placeholder, got %q", got)
	}
}

func TestNormalizeCoercesNonStringValues(t *testing.T) {
	t.Parallel()

	got := Normalize(strPtr(`{"Capacity":512}`), nil)
	if got != `{"Capacity":"512"}` {
		t.Fatalf("unexpected signature %q", got)
	}
}

func TestDefaultSelectionSkipsEmptyLists(t *testing.T) {
	t.Parallel()

	selection := DefaultSelection(map[string][]string{
		"Size":  {"M"},
		"Color": {},
	})
	if len(selection) != 1 || selection["Size"] != "M" {
		t.Fatalf("unexpected selection %v", selection)
	}
}
