package store

import (
	"context"
	"testing"
)

func TestSQLiteKVGetSet(t *testing.T) {
	s, err := NewSQLiteKV()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	// Absent keys are empty, not errors
	got, err := s.Get(ctx, "aac_categories")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty value for absent key, got %q", got)
	}

	if err := s.Set(ctx, "aac_categories", `[{"id":"core"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err = s.Get(ctx, "aac_categories")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `[{"id":"core"}]` {
		t.Errorf("Expected stored value, got %q", got)
	}

	// Set replaces
	if err := s.Set(ctx, "aac_categories", `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, _ = s.Get(ctx, "aac_categories")
	if got != `[]` {
		t.Errorf("Expected replaced value, got %q", got)
	}
}

func TestSQLiteKVDelete(t *testing.T) {
	s, err := NewSQLiteKV()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Set(ctx, "aac_settings_u1", `{}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete(ctx, "aac_settings_u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, _ := s.Get(ctx, "aac_settings_u1")
	if got != "" {
		t.Errorf("Expected key gone after delete, got %q", got)
	}

	// Deleting an absent key is fine
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of absent key failed: %v", err)
	}
}

func TestSQLiteKVExportImport(t *testing.T) {
	src, err := NewSQLiteKV()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer src.Close()

	ctx := context.Background()
	src.Set(ctx, "aac_categories", `[{"id":"core"}]`)
	src.Set(ctx, "aac_favorites", `[]`)

	data, err := src.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected non-empty export")
	}

	dst, err := NewSQLiteKV()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer dst.Close()

	dst.Set(ctx, "stale", "value")
	if err := dst.Import(data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	got, _ := dst.Get(ctx, "aac_categories")
	if got != `[{"id":"core"}]` {
		t.Errorf("Expected imported value, got %q", got)
	}
	got, _ = dst.Get(ctx, "stale")
	if got != "" {
		t.Errorf("Expected import to clear stale keys, got %q", got)
	}
}

func TestSQLiteKVImportEmpty(t *testing.T) {
	s, err := NewSQLiteKV()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	s.Set(ctx, "aac_agenda", `[]`)

	// An empty snapshot (first launch) leaves the store alone
	if err := s.Import(nil); err != nil {
		t.Fatalf("Import of empty data failed: %v", err)
	}
	got, _ := s.Get(ctx, "aac_agenda")
	if got != `[]` {
		t.Errorf("Expected existing key kept, got %q", got)
	}
}

func TestSQLiteKVImportCorrupt(t *testing.T) {
	s, err := NewSQLiteKV()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.Import([]byte("{broken")); err == nil {
		t.Error("Expected error for corrupt snapshot")
	}
}

func TestMemoryKV(t *testing.T) {
	m := NewMemoryKV()
	ctx := context.Background()

	got, err := m.Get(ctx, "k")
	if err != nil || got != "" {
		t.Errorf("Expected empty value for absent key, got %q, %v", got, err)
	}

	m.Set(ctx, "k", "v1")
	m.Set(ctx, "k", "v2")
	got, _ = m.Get(ctx, "k")
	if got != "v2" {
		t.Errorf("Expected v2, got %q", got)
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 key, got %d", m.Len())
	}

	m.Delete(ctx, "k")
	if m.Len() != 0 {
		t.Errorf("Expected empty store after delete, got %d", m.Len())
	}
}

func TestMemoryKVExportImport(t *testing.T) {
	src := NewMemoryKV()
	ctx := context.Background()
	src.Set(ctx, "aac_settings", `{"gridSize":"large"}`)

	data, err := src.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := NewMemoryKV()
	if err := dst.Import(data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	got, _ := dst.Get(ctx, "aac_settings")
	if got != `{"gridSize":"large"}` {
		t.Errorf("Expected round-tripped value, got %q", got)
	}
}
