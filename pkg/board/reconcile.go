package board

// Reconcile merges persisted categories with the shipped default
// vocabulary at load time. App updates that add or rename default
// content must not be lost, and neither must user edits:
//
//   - a built-in category the user edited keeps the persisted version
//   - a built-in category missing from disk comes from the defaults
//     (newly shipped content)
//   - custom categories survive unchanged and stay in front, in their
//     persisted order (most recently added first)
//
// A persisted category whose ID collides with a built-in is treated as
// built-in regardless of its isCustom flag, so a corrupted flag cannot
// duplicate it.
func Reconcile(persisted, defaults []Category) []Category {
	builtinIDs := make(map[string]bool, len(defaults))
	for _, def := range defaults {
		builtinIDs[def.ID] = true
	}

	persistedByID := make(map[string]Category, len(persisted))
	for _, cat := range persisted {
		persistedByID[cat.ID] = cat
	}

	merged := make([]Category, 0, len(persisted)+len(defaults))

	for _, cat := range persisted {
		if cat.IsCustom && !builtinIDs[cat.ID] {
			merged = append(merged, cloneCategory(cat))
		}
	}

	for _, def := range defaults {
		if saved, ok := persistedByID[def.ID]; ok {
			merged = append(merged, cloneCategory(saved))
		} else {
			merged = append(merged, cloneCategory(def))
		}
	}

	return merged
}
