package search

import (
	"testing"

	"github.com/vozamiga/govoz/pkg/board"
)

func testCategories() []board.Category {
	return []board.Category{
		{ID: "core", Name: "Essenciais", Items: []board.Symbol{
			{ID: "yes", Label: "Sim"},
			{ID: "please", Label: "Por favor"},
			{ID: "want", Label: "Eu quero", SpeechText: "eu quero"},
			{ID: "water", Label: "Água"},
		}},
		{ID: "feelings", Name: "Sentimentos", Items: []board.Symbol{
			{ID: "happy", Label: "Feliz"},
			{ID: "sad", Label: "Triste", SpeechText: "Estou triste"},
		}},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := New()
	if err := idx.Rebuild(testCategories()); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	return idx
}

func TestLookup(t *testing.T) {
	idx := newTestIndex(t)

	hits := idx.Lookup("Sim")
	if len(hits) != 1 {
		t.Fatalf("Expected 1 hit, got %d", len(hits))
	}
	if hits[0].Symbol.ID != "yes" || hits[0].CategoryID != "core" {
		t.Errorf("Expected yes in core, got %s in %s", hits[0].Symbol.ID, hits[0].CategoryID)
	}

	// Canonicalization: case and punctuation are ignored
	if got := idx.Lookup("por FAVOR!"); len(got) != 1 || got[0].Symbol.ID != "please" {
		t.Errorf("Expected please, got %v", got)
	}

	// Speech override is a searchable surface too
	if got := idx.Lookup("estou triste"); len(got) != 1 || got[0].Symbol.ID != "sad" {
		t.Errorf("Expected sad via speech text, got %v", got)
	}

	if got := idx.Lookup("inexistente"); got != nil {
		t.Errorf("Expected no hits, got %v", got)
	}
}

func TestScan(t *testing.T) {
	idx := newTestIndex(t)

	hits := idx.Scan("Hoje estou feliz e quero água, por favor")
	ids := make(map[string]bool)
	for _, h := range hits {
		ids[h.Symbol.ID] = true
	}
	for _, want := range []string{"happy", "water", "please"} {
		if !ids[want] {
			t.Errorf("Expected %s in scan results, got %v", want, ids)
		}
	}
}

func TestScanDeduplicates(t *testing.T) {
	idx := newTestIndex(t)

	hits := idx.Scan("sim sim sim")
	if len(hits) != 1 {
		t.Errorf("Expected 1 deduplicated hit, got %d", len(hits))
	}
}

func TestScanEmptyIndex(t *testing.T) {
	idx := New()
	if err := idx.Rebuild(nil); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if got := idx.Scan("qualquer coisa"); got != nil {
		t.Errorf("Expected no hits from empty index, got %v", got)
	}
}

func TestSuggest(t *testing.T) {
	idx := newTestIndex(t)

	hits := idx.Suggest("fav")
	if len(hits) != 1 || hits[0].Symbol.ID != "please" {
		t.Errorf("Expected please for partial token, got %v", hits)
	}

	// A query made only of stopwords still matches labels built from them
	hits = idx.Suggest("eu quero")
	if len(hits) != 1 || hits[0].Symbol.ID != "want" {
		t.Errorf("Expected want for stopword-only query, got %v", hits)
	}

	if got := idx.Suggest(""); got != nil {
		t.Errorf("Expected no hits for empty query, got %v", got)
	}
}

func TestRebuildReplaces(t *testing.T) {
	idx := newTestIndex(t)

	if err := idx.Rebuild([]board.Category{
		{ID: "core", Items: []board.Symbol{{ID: "new", Label: "Novo"}}},
	}); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	if got := idx.Lookup("Sim"); got != nil {
		t.Errorf("Expected old vocabulary gone, got %v", got)
	}
	if got := idx.Lookup("novo"); len(got) != 1 {
		t.Errorf("Expected new vocabulary present, got %v", got)
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Por favor!", "por favor"},
		{"  ÁGUA  ", "água"},
		{"guarda-chuva", "guarda-chuva"},
		{"d'água", "d'água"},
		{"a,b;c", "a b c"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Canonicalize(tt.in); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
