package board

import "testing"

func testDefaults() []Category {
	return []Category{
		{ID: CoreCategoryID, Name: "Essenciais", Items: []Symbol{
			{ID: "yes", Label: "Sim"},
			{ID: "no", Label: "Não"},
		}},
		{ID: "feelings", Name: "Sentimentos", Items: []Symbol{
			{ID: "happy", Label: "Feliz"},
		}},
	}
}

func TestReconcileEmptyPersisted(t *testing.T) {
	merged := Reconcile(nil, testDefaults())

	if len(merged) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(merged))
	}
	if merged[0].ID != CoreCategoryID {
		t.Errorf("Expected core first, got %s", merged[0].ID)
	}
}

func TestReconcileCustomStaysInFront(t *testing.T) {
	persisted := []Category{
		{ID: "custom_b", Name: "B", IsCustom: true},
		{ID: "custom_a", Name: "A", IsCustom: true},
		{ID: CoreCategoryID, Name: "Essenciais"},
	}

	merged := Reconcile(persisted, testDefaults())

	if len(merged) != 4 {
		t.Fatalf("Expected 4 categories, got %d", len(merged))
	}
	if merged[0].ID != "custom_b" || merged[1].ID != "custom_a" {
		t.Errorf("Expected custom categories in persisted order, got %s, %s", merged[0].ID, merged[1].ID)
	}
	if merged[2].ID != CoreCategoryID || merged[3].ID != "feelings" {
		t.Errorf("Expected built-ins in defaults order, got %s, %s", merged[2].ID, merged[3].ID)
	}
}

func TestReconcileKeepsEditedBuiltins(t *testing.T) {
	persisted := []Category{
		{ID: "feelings", Name: "Renomeado", Items: []Symbol{
			{ID: "happy", Label: "Feliz"},
			{ID: "sym_1", Label: "Calmo"},
		}},
	}

	merged := Reconcile(persisted, testDefaults())

	if len(merged) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(merged))
	}
	if merged[0].ID != CoreCategoryID {
		t.Errorf("Expected missing built-in restored from defaults, got %s first", merged[0].ID)
	}
	if merged[1].Name != "Renomeado" {
		t.Errorf("Expected persisted edit to survive, got %s", merged[1].Name)
	}
	if len(merged[1].Items) != 2 {
		t.Errorf("Expected added symbol to survive, got %d items", len(merged[1].Items))
	}
}

func TestReconcileBuiltinIDCollision(t *testing.T) {
	// A corrupted isCustom flag on a built-in ID must not duplicate it.
	persisted := []Category{
		{ID: CoreCategoryID, Name: "Essenciais", IsCustom: true},
	}

	merged := Reconcile(persisted, testDefaults())

	count := 0
	for _, cat := range merged {
		if cat.ID == CoreCategoryID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected core exactly once, got %d", count)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	persisted := []Category{
		{ID: "custom_a", Name: "A", IsCustom: true},
		{ID: CoreCategoryID, Name: "Editado"},
	}

	once := Reconcile(persisted, testDefaults())
	twice := Reconcile(once, testDefaults())

	if len(once) != len(twice) {
		t.Fatalf("Expected stable length, got %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("Expected stable order at %d: %s vs %s", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestReconcileClonesInputs(t *testing.T) {
	defaults := testDefaults()
	merged := Reconcile(nil, defaults)

	merged[0].Items[0].Label = "changed"
	if defaults[0].Items[0].Label != "Sim" {
		t.Errorf("Expected defaults untouched, got %s", defaults[0].Items[0].Label)
	}
}
