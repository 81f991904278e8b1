package board

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vozamiga/govoz/internal/store"
	"github.com/vozamiga/govoz/pkg/identity"
	"github.com/vozamiga/govoz/pkg/speech"
)

// Persistence keys. They match the AsyncStorage keys of earlier app
// releases so an upgrade keeps the user's board intact. Settings get a
// per-user suffix once someone is signed in.
const (
	keyCategories = "aac_categories"
	keyFavorites  = "aac_favorites"
	keyAgenda     = "aac_agenda"
	keySettings   = "aac_settings"
)

// Config wires a Board's collaborators. Zero fields fall back to an
// in-memory KV, a silent speaker, a nop logger, and the wall clock, so
// tests only set what they assert on.
type Config struct {
	KV       store.KV
	Speaker  speech.Speaker
	Identity identity.Service
	Defaults []Category // default vocabulary, merged on every load
	Logger   *zap.Logger
	Now      func() time.Time
	OnChange func() // re-render signal, invoked after every state change
}

// Board is the single authoritative holder of all AAC domain state.
// Mutations update memory first and schedule a fire-and-forget
// write-through; persistence failures are logged and never surfaced.
// Thread-safe for concurrent WASM callbacks.
type Board struct {
	mu       sync.RWMutex
	kv       store.KV
	speaker  speech.Speaker
	auth     identity.Service
	defaults []Category
	log      *zap.Logger
	now      func() time.Time
	onChange func()
	writes   sync.WaitGroup

	ready            bool
	categories       []Category
	sentence         []SentenceItem
	favorites        []Symbol
	agenda           []AgendaItem
	settings         Settings
	user             *identity.User
	activeTab        Tab
	activeCategoryID string
}

// New creates a Board seeded with the default vocabulary and default
// settings. Call Load to fold in persisted state.
func New(cfg Config) *Board {
	if cfg.KV == nil {
		cfg.KV = store.NewMemoryKV()
	}
	if cfg.Speaker == nil {
		cfg.Speaker = speech.Null{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Board{
		kv:         cfg.KV,
		speaker:    cfg.Speaker,
		auth:       cfg.Identity,
		defaults:   cloneCategories(cfg.Defaults),
		log:        cfg.Logger,
		now:        cfg.Now,
		onChange:   cfg.OnChange,
		categories: cloneCategories(cfg.Defaults),
		settings:   DefaultSettings(),
		activeTab:  TabHome,
	}
}

// Load reads every persisted collection and reconciles categories with
// the default vocabulary. Runs once per process; operations dispatched
// before Load completes see the defaults, and the UI re-renders when it
// finishes. Never fails: anything unreadable falls back to defaults.
func (b *Board) Load(ctx context.Context) {
	categories := b.loadCategories(ctx)
	favorites := loadCollection[Symbol](ctx, b, keyFavorites)
	agenda := loadCollection[AgendaItem](ctx, b, keyAgenda)
	settings := b.loadSettings(ctx, keySettings, DefaultSettings())

	b.mu.Lock()
	b.categories = categories
	b.favorites = favorites
	b.agenda = agenda
	b.settings = settings
	b.ready = true
	b.mu.Unlock()
	b.notify()
}

// Ready reports whether Load has completed.
func (b *Board) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ready
}

// Flush blocks until every scheduled write-through has finished. Test
// hook: asserts on persisted content become deterministic instead of
// racing the async writes.
func (b *Board) Flush() {
	b.writes.Wait()
}

func (b *Board) loadCategories(ctx context.Context) []Category {
	raw, err := b.kv.Get(ctx, keyCategories)
	if err != nil {
		b.log.Warn("category load failed, using defaults", zap.Error(err))
		return cloneCategories(b.defaults)
	}
	if raw == "" {
		return cloneCategories(b.defaults)
	}

	var persisted []Category
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		b.log.Warn("persisted categories unreadable, using defaults", zap.Error(err))
		return cloneCategories(b.defaults)
	}

	return Reconcile(persisted, b.defaults)
}

// loadCollection reads a persisted slice, treating absence and corrupt
// JSON alike as an empty collection.
func loadCollection[T any](ctx context.Context, b *Board, key string) []T {
	raw, err := b.kv.Get(ctx, key)
	if err != nil {
		b.log.Warn("collection load failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if raw == "" {
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		b.log.Warn("persisted collection unreadable", zap.String("key", key), zap.Error(err))
		return nil
	}
	return items
}

// loadSettings reads the settings blob for a scope key. Persisted
// fields overlay the fallback so partially stored settings keep their
// defaults for the rest.
func (b *Board) loadSettings(ctx context.Context, key string, fallback Settings) Settings {
	raw, err := b.kv.Get(ctx, key)
	if err != nil {
		b.log.Warn("settings load failed", zap.String("key", key), zap.Error(err))
		return fallback
	}
	if raw == "" {
		return fallback
	}

	s := fallback
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		b.log.Warn("persisted settings unreadable", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return s
}

// persist serializes a collection and schedules the write-through.
// Called with b.mu held so the snapshot matches the in-memory state the
// caller just produced; the KV call itself runs outside the lock.
func (b *Board) persist(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		b.log.Error("serialize for write-through failed", zap.String("key", key), zap.Error(err))
		return
	}

	b.writes.Add(1)
	go func() {
		defer b.writes.Done()
		if err := b.kv.Set(context.Background(), key, string(data)); err != nil {
			b.log.Warn("write-through failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

func (b *Board) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}

// =============================================================================
// Categories
// =============================================================================

// Categories returns a snapshot of the category collection.
func (b *Board) Categories() []Category {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneCategories(b.categories)
}

// Category returns a snapshot of one category.
func (b *Board) Category(id string) (Category, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := range b.categories {
		if b.categories[i].ID == id {
			return cloneCategory(b.categories[i]), true
		}
	}
	return Category{}, false
}

// AddCategory appends a new custom category at the front of the list.
func (b *Board) AddCategory(name, icon, color string) Category {
	b.mu.Lock()
	cat := Category{
		ID:       "custom_" + uuid.NewString(),
		Name:     name,
		Icon:     icon,
		Color:    color,
		Items:    []Symbol{},
		IsCustom: true,
	}
	b.categories = append([]Category{cat}, b.categories...)
	b.persist(keyCategories, b.categories)
	b.mu.Unlock()

	b.notify()
	return cloneCategory(cat)
}

// UpdateCategory shallow-merges patch into the matching category.
// No-op when the ID is unknown.
func (b *Board) UpdateCategory(id string, patch CategoryPatch) bool {
	b.mu.Lock()
	idx := b.categoryIndex(id)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	patch.apply(&b.categories[idx])
	b.persist(keyCategories, b.categories)
	b.mu.Unlock()

	b.notify()
	return true
}

// DeleteCategory removes a category and its symbols. The core category
// is delete-proof; deleting the drilled-into category navigates back to
// the category list.
func (b *Board) DeleteCategory(id string) bool {
	if id == CoreCategoryID {
		return false
	}

	b.mu.Lock()
	idx := b.categoryIndex(id)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	b.categories = append(b.categories[:idx], b.categories[idx+1:]...)
	if b.activeCategoryID == id {
		b.activeCategoryID = ""
	}
	b.persist(keyCategories, b.categories)
	b.mu.Unlock()

	b.notify()
	return true
}

// AddSymbolToCategory generates an ID for the symbol and appends it to
// the category's items. Refuses symbols without a label; no-op when the
// category is unknown.
func (b *Board) AddSymbolToCategory(categoryID string, sym Symbol) (Symbol, bool) {
	if sym.Label == "" {
		return Symbol{}, false
	}

	b.mu.Lock()
	idx := b.categoryIndex(categoryID)
	if idx < 0 {
		b.mu.Unlock()
		return Symbol{}, false
	}
	sym.ID = "sym_" + uuid.NewString()
	b.categories[idx].Items = append(b.categories[idx].Items, sym)
	b.persist(keyCategories, b.categories)
	b.mu.Unlock()

	b.notify()
	return sym, true
}

// UpdateSymbolInCategory shallow-merges patch into the matching symbol.
func (b *Board) UpdateSymbolInCategory(categoryID, symbolID string, patch SymbolPatch) bool {
	b.mu.Lock()
	idx := b.categoryIndex(categoryID)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	items := b.categories[idx].Items
	for i := range items {
		if items[i].ID == symbolID {
			patch.apply(&items[i])
			b.persist(keyCategories, b.categories)
			b.mu.Unlock()
			b.notify()
			return true
		}
	}
	b.mu.Unlock()
	return false
}

// DeleteSymbolFromCategory removes a symbol from a category's items.
func (b *Board) DeleteSymbolFromCategory(categoryID, symbolID string) bool {
	b.mu.Lock()
	idx := b.categoryIndex(categoryID)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	items := b.categories[idx].Items
	for i := range items {
		if items[i].ID == symbolID {
			b.categories[idx].Items = append(items[:i], items[i+1:]...)
			b.persist(keyCategories, b.categories)
			b.mu.Unlock()
			b.notify()
			return true
		}
	}
	b.mu.Unlock()
	return false
}

// ReorderCategoryItems replaces a category's item order with the given
// list. The caller owns permutation correctness (the UI hands back the
// same symbols it was rendered from).
func (b *Board) ReorderCategoryItems(categoryID string, items []Symbol) bool {
	b.mu.Lock()
	idx := b.categoryIndex(categoryID)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	b.categories[idx].Items = cloneSymbols(items)
	b.persist(keyCategories, b.categories)
	b.mu.Unlock()

	b.notify()
	return true
}

// categoryIndex returns the position of a category, or -1. Caller holds b.mu.
func (b *Board) categoryIndex(id string) int {
	for i := range b.categories {
		if b.categories[i].ID == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// Navigation
// =============================================================================

// ActiveTab returns the current top-level tab.
func (b *Board) ActiveTab() Tab {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.activeTab
}

// SetActiveTab switches the top-level tab. No guards: every tab is
// reachable from every tab.
func (b *Board) SetActiveTab(tab Tab) {
	b.mu.Lock()
	b.activeTab = tab
	b.mu.Unlock()
	b.notify()
}

// ActiveCategoryID returns the drilled-into category on the home tab,
// or "" while the category list is showing.
func (b *Board) ActiveCategoryID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.activeCategoryID
}

// NavigateToCategory drills into a category on the home tab.
func (b *Board) NavigateToCategory(id string) {
	b.mu.Lock()
	b.activeCategoryID = id
	b.mu.Unlock()
	b.notify()
}

// GoBack returns from a category to the category list.
func (b *Board) GoBack() {
	b.mu.Lock()
	b.activeCategoryID = ""
	b.mu.Unlock()
	b.notify()
}

// =============================================================================
// Sentence
// =============================================================================

// Sentence returns a snapshot of the in-progress utterance.
func (b *Board) Sentence() []SentenceItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]SentenceItem, len(b.sentence))
	copy(out, b.sentence)
	return out
}

// AddToSentence appends a symbol to the utterance under a fresh tempId
// and speaks it unless the user prefers speech only on play. The
// sentence is session state and is never persisted.
func (b *Board) AddToSentence(sym Symbol) SentenceItem {
	b.mu.Lock()
	item := SentenceItem{Symbol: sym, TempID: uuid.NewString()}
	b.sentence = append(b.sentence, item)
	speakNow := !b.settings.SpeakOnlyOnPlay
	opts := b.speechOptions()
	b.mu.Unlock()

	if speakNow {
		b.speaker.Speak(item.SpokenText(), opts)
	}
	b.notify()
	return item
}

// RemoveFromSentence removes the insertion identified by tempID.
func (b *Board) RemoveFromSentence(tempID string) bool {
	b.mu.Lock()
	for i := range b.sentence {
		if b.sentence[i].TempID == tempID {
			b.sentence = append(b.sentence[:i], b.sentence[i+1:]...)
			b.mu.Unlock()
			b.notify()
			return true
		}
	}
	b.mu.Unlock()
	return false
}

// ClearSentence empties the utterance.
func (b *Board) ClearSentence() {
	b.mu.Lock()
	b.sentence = nil
	b.mu.Unlock()
	b.notify()
}

// Speak renders text with the current voice and rate settings.
func (b *Board) Speak(text string) {
	b.mu.RLock()
	opts := b.speechOptions()
	b.mu.RUnlock()
	b.speaker.Speak(text, opts)
}

// PlaySentence speaks the whole utterance in insertion order. The
// sentence bar's play button.
func (b *Board) PlaySentence() {
	b.mu.RLock()
	parts := make([]string, 0, len(b.sentence))
	for _, item := range b.sentence {
		parts = append(parts, item.SpokenText())
	}
	opts := b.speechOptions()
	b.mu.RUnlock()

	if len(parts) == 0 {
		return
	}
	b.speaker.Speak(strings.Join(parts, " "), opts)
}

// speechOptions builds speak options from settings. Caller holds b.mu.
func (b *Board) speechOptions() speech.Options {
	return speech.Options{
		VoiceID:  b.settings.VoiceID,
		Rate:     b.settings.SpeakingRate,
		Language: speech.DefaultLanguage,
	}
}

// =============================================================================
// Favorites
// =============================================================================

// Favorites returns a snapshot of the favorites list.
func (b *Board) Favorites() []Symbol {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneSymbols(b.favorites)
}

// AddFavorite appends a symbol to favorites, deduplicating by ID.
// Returns false when the symbol was already a favorite.
func (b *Board) AddFavorite(sym Symbol) bool {
	b.mu.Lock()
	for i := range b.favorites {
		if b.favorites[i].ID == sym.ID {
			b.mu.Unlock()
			return false
		}
	}
	b.favorites = append(b.favorites, sym)
	b.persist(keyFavorites, b.favorites)
	b.mu.Unlock()

	b.notify()
	return true
}

// RemoveFavorite removes a symbol from favorites by ID.
func (b *Board) RemoveFavorite(symbolID string) bool {
	b.mu.Lock()
	for i := range b.favorites {
		if b.favorites[i].ID == symbolID {
			b.favorites = append(b.favorites[:i], b.favorites[i+1:]...)
			b.persist(keyFavorites, b.favorites)
			b.mu.Unlock()
			b.notify()
			return true
		}
	}
	b.mu.Unlock()
	return false
}

// ReorderFavorites replaces the favorites order with the given list.
func (b *Board) ReorderFavorites(items []Symbol) {
	b.mu.Lock()
	b.favorites = cloneSymbols(items)
	b.persist(keyFavorites, b.favorites)
	b.mu.Unlock()
	b.notify()
}

// =============================================================================
// Agenda
// =============================================================================

// AgendaItems returns a snapshot of every agenda entry, unpartitioned.
func (b *Board) AgendaItems() []AgendaItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]AgendaItem, len(b.agenda))
	copy(out, b.agenda)
	return out
}

// ActiveAgenda returns the non-archived entries sorted by date ascending.
func (b *Board) ActiveAgenda() []AgendaItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	active, _ := PartitionAgenda(b.agenda, b.now())
	return active
}

// ArchivedAgenda returns completed or past entries, newest first.
func (b *Board) ArchivedAgenda() []AgendaItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, archived := PartitionAgenda(b.agenda, b.now())
	return archived
}

// AddAgendaItem appends a new scheduled activity. Refuses empty titles.
func (b *Board) AddAgendaItem(title string, typ AgendaType, date, timeOfDay string) (AgendaItem, bool) {
	if title == "" {
		return AgendaItem{}, false
	}

	b.mu.Lock()
	item := AgendaItem{
		ID:    "ag_" + uuid.NewString(),
		Title: title,
		Type:  typ,
		Date:  date,
		Time:  timeOfDay,
	}
	b.agenda = append(b.agenda, item)
	b.persist(keyAgenda, b.agenda)
	b.mu.Unlock()

	b.notify()
	return item, true
}

// ToggleAgendaItem flips an entry's completed flag.
func (b *Board) ToggleAgendaItem(id string) bool {
	b.mu.Lock()
	for i := range b.agenda {
		if b.agenda[i].ID == id {
			b.agenda[i].Completed = !b.agenda[i].Completed
			b.persist(keyAgenda, b.agenda)
			b.mu.Unlock()
			b.notify()
			return true
		}
	}
	b.mu.Unlock()
	return false
}

// DeleteAgendaItem removes an entry.
func (b *Board) DeleteAgendaItem(id string) bool {
	b.mu.Lock()
	for i := range b.agenda {
		if b.agenda[i].ID == id {
			b.agenda = append(b.agenda[:i], b.agenda[i+1:]...)
			b.persist(keyAgenda, b.agenda)
			b.mu.Unlock()
			b.notify()
			return true
		}
	}
	b.mu.Unlock()
	return false
}

// =============================================================================
// Settings and identity
// =============================================================================

// Settings returns the current settings.
func (b *Board) Settings() Settings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings
}

// UpdateSettings shallow-merges patch into the current settings and
// persists them under the active scope (per-user when signed in).
// Values are passed through unvalidated.
func (b *Board) UpdateSettings(patch SettingsPatch) Settings {
	b.mu.Lock()
	patch.apply(&b.settings)
	b.persist(b.settingsKey(), b.settings)
	updated := b.settings
	b.mu.Unlock()

	b.notify()
	return updated
}

// User returns the signed-in account, if any.
func (b *Board) User() (identity.User, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.user == nil {
		return identity.User{}, false
	}
	return *b.user, true
}

// Login delegates to the identity capability and, on success, switches
// the settings scope to the user: previously stored per-user settings
// replace the session's, a first login keeps them as they are. A failed
// login leaves all state untouched and propagates the error.
func (b *Board) Login(ctx context.Context, provider identity.ProviderName) (identity.User, error) {
	if b.auth == nil {
		return identity.User{}, errNoIdentity
	}

	user, err := b.auth.Login(ctx, provider)
	if err != nil {
		return identity.User{}, err
	}

	b.mu.Lock()
	b.user = &user
	current := b.settings
	key := b.settingsKey()
	b.mu.Unlock()

	scoped := b.loadSettings(ctx, key, current)
	b.mu.Lock()
	b.settings = scoped
	b.mu.Unlock()

	b.notify()
	return user, nil
}

// Logout clears the user and returns the settings scope to the global
// key. A failed logout keeps the session signed in.
func (b *Board) Logout(ctx context.Context) error {
	if b.auth == nil {
		return errNoIdentity
	}

	if err := b.auth.Logout(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	b.user = nil
	current := b.settings
	b.mu.Unlock()

	global := b.loadSettings(ctx, keySettings, current)
	b.mu.Lock()
	b.settings = global
	b.mu.Unlock()

	b.notify()
	return nil
}

// settingsKey returns the persistence key for the active settings
// scope. Caller holds b.mu.
func (b *Board) settingsKey() string {
	if b.user != nil {
		return keySettings + "_" + b.user.ID
	}
	return keySettings
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is the full render state handed to the UI in one call.
type Snapshot struct {
	Ready            bool           `json:"ready"`
	ActiveTab        Tab            `json:"activeTab"`
	ActiveCategoryID string         `json:"activeCategoryId,omitempty"`
	Categories       []Category     `json:"categories"`
	Sentence         []SentenceItem `json:"sentence"`
	Favorites        []Symbol       `json:"favorites"`
	ActiveAgenda     []AgendaItem   `json:"activeAgenda"`
	ArchivedAgenda   []AgendaItem   `json:"archivedAgenda"`
	Settings         Settings       `json:"settings"`
	User             *identity.User `json:"user,omitempty"`
}

// State returns a consistent snapshot of everything the UI renders.
func (b *Board) State() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	active, archived := PartitionAgenda(b.agenda, b.now())
	snap := Snapshot{
		Ready:            b.ready,
		ActiveTab:        b.activeTab,
		ActiveCategoryID: b.activeCategoryID,
		Categories:       cloneCategories(b.categories),
		Sentence:         make([]SentenceItem, len(b.sentence)),
		Favorites:        cloneSymbols(b.favorites),
		ActiveAgenda:     active,
		ArchivedAgenda:   archived,
		Settings:         b.settings,
	}
	copy(snap.Sentence, b.sentence)
	if b.user != nil {
		u := *b.user
		snap.User = &u
	}
	return snap
}

// =============================================================================
// Helpers
// =============================================================================

var errNoIdentity = identityError{}

type identityError struct{}

func (identityError) Error() string { return "board: no identity service configured" }

func cloneCategories(cats []Category) []Category {
	out := make([]Category, len(cats))
	for i, c := range cats {
		out[i] = cloneCategory(c)
	}
	return out
}

func cloneCategory(c Category) Category {
	c.Items = cloneSymbols(c.Items)
	return c
}

func cloneSymbols(items []Symbol) []Symbol {
	out := make([]Symbol, len(items))
	copy(out, items)
	return out
}
