//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/vozamiga/govoz/internal/store"
	"github.com/vozamiga/govoz/pkg/board"
	"github.com/vozamiga/govoz/pkg/identity"
	"github.com/vozamiga/govoz/pkg/search"
	"github.com/vozamiga/govoz/pkg/speech"
	"github.com/vozamiga/govoz/pkg/vocab"
)

// Version info
const Version = "1.2.0" // Favorites + agenda + per-user settings scope

// Global state
var kv *store.SQLiteKV  // SQLite persistent store (synced to OPFS by the host)
var aac *board.Board    // Application state store
var index *search.Index // Vocabulary search
var logger *zap.Logger  // Go-side structured logging

func main() {
	logger, _ = zap.NewDevelopment()
	index = search.New()

	fmt.Println("[GoVoz] WASM Ready v" + Version)

	// Register exports
	js.Global().Set("GoVoz", js.ValueOf(map[string]interface{}{
		"version":    js.FuncOf(getVersion),
		"initialize": js.FuncOf(initialize),
		"getState":   js.FuncOf(getState),
		// Navigation
		"setActiveTab":       js.FuncOf(setActiveTab),
		"navigateToCategory": js.FuncOf(navigateToCategory),
		"goBack":             js.FuncOf(goBack),
		// Categories + symbols
		"addCategory":    js.FuncOf(addCategory),
		"updateCategory": js.FuncOf(updateCategory),
		"deleteCategory": js.FuncOf(deleteCategory),
		"addSymbol":      js.FuncOf(addSymbol),
		"updateSymbol":   js.FuncOf(updateSymbol),
		"deleteSymbol":   js.FuncOf(deleteSymbol),
		"reorderItems":   js.FuncOf(reorderItems),
		// Sentence + speech
		"addToSentence":      js.FuncOf(addToSentence),
		"removeFromSentence": js.FuncOf(removeFromSentence),
		"clearSentence":      js.FuncOf(clearSentence),
		"playSentence":       js.FuncOf(playSentence),
		"speak":              js.FuncOf(speak),
		// Favorites
		"addFavorite":      js.FuncOf(addFavorite),
		"removeFavorite":   js.FuncOf(removeFavorite),
		"reorderFavorites": js.FuncOf(reorderFavorites),
		// Agenda
		"addAgendaItem":    js.FuncOf(addAgendaItem),
		"toggleAgendaItem": js.FuncOf(toggleAgendaItem),
		"deleteAgendaItem": js.FuncOf(deleteAgendaItem),
		// Settings + identity
		"updateSettings": js.FuncOf(updateSettings),
		"login":          js.FuncOf(login),
		"logout":         js.FuncOf(logout),
		// Vocabulary search
		"searchLookup":  js.FuncOf(searchLookup),
		"searchScan":    js.FuncOf(searchScan),
		"searchSuggest": js.FuncOf(searchSuggest),
		// Store snapshot (OPFS sync)
		"storeExport": js.FuncOf(storeExport),
		"storeImport": js.FuncOf(storeImport),
		// Waits for outstanding write-throughs
		"flush": js.FuncOf(flush),
	}))

	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initialize opens the SQLite store, builds the board around it, loads
// persisted state, and compiles the search index. The host imports an
// OPFS snapshot via storeImport first if it has one.
func initialize(this js.Value, args []js.Value) interface{} {
	var err error
	if kv == nil {
		kv, err = store.NewSQLiteKV()
		if err != nil {
			return errorResult("failed to initialize SQLite store: " + err.Error())
		}
	}

	aac = board.New(board.Config{
		KV:       kv,
		Speaker:  speech.NewSynthesizer(),
		Identity: identity.NewBridge(),
		Defaults: vocab.Categories(),
		Logger:   logger,
		OnChange: notifyHost,
	})
	aac.Load(context.Background())

	if err := rebuildIndex(); err != nil {
		logger.Warn("search index build failed", zap.Error(err))
	}

	fmt.Println("[GoVoz] ✅ Board initialized")
	return successResult("initialized")
}

// notifyHost signals the UI to re-render. The host installs
// globalThis.GoVozOnChange before calling initialize.
func notifyHost() {
	callback := js.Global().Get("GoVozOnChange")
	if callback.Type() == js.TypeFunction {
		callback.Invoke()
	}
}

func rebuildIndex() error {
	return index.Rebuild(aac.Categories())
}

// getState returns the full render snapshot as JSON.
func getState(this js.Value, args []js.Value) interface{} {
	if aac == nil {
		return errorResult("board not initialized")
	}
	return marshalResult(aac.State())
}

// =============================================================================
// Navigation
// =============================================================================

// setActiveTab switches the top-level tab.
// Args: [tab string]
func setActiveTab(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("setActiveTab requires 1 arg: tab")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}
	aac.SetActiveTab(board.Tab(args[0].String()))
	return successResult("ok")
}

// navigateToCategory drills into a category on the home tab.
// Args: [categoryId string]
func navigateToCategory(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("navigateToCategory requires 1 arg: categoryId")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}
	aac.NavigateToCategory(args[0].String())
	return successResult("ok")
}

func goBack(this js.Value, args []js.Value) interface{} {
	if aac == nil {
		return errorResult("board not initialized")
	}
	aac.GoBack()
	return successResult("ok")
}

// =============================================================================
// Categories + symbols
// =============================================================================

// addCategory creates a custom category.
// Args: [name string, icon string, color string]
func addCategory(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("addCategory requires 3 args: name, icon, color")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	cat := aac.AddCategory(args[0].String(), args[1].String(), args[2].String())
	if err := rebuildIndex(); err != nil {
		logger.Warn("search index rebuild failed", zap.Error(err))
	}
	return marshalResult(cat)
}

// updateCategory merges a partial update into a category.
// Args: [categoryId string, patchJSON string]
func updateCategory(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("updateCategory requires 2 args: categoryId, patchJSON")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	var patch board.CategoryPatch
	if err := json.Unmarshal([]byte(args[1].String()), &patch); err != nil {
		return errorResult("invalid patch json: " + err.Error())
	}

	return boolResult(aac.UpdateCategory(args[0].String(), patch))
}

// deleteCategory removes a category. The core category silently refuses.
// Args: [categoryId string]
func deleteCategory(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("deleteCategory requires 1 arg: categoryId")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	deleted := aac.DeleteCategory(args[0].String())
	if deleted {
		if err := rebuildIndex(); err != nil {
			logger.Warn("search index rebuild failed", zap.Error(err))
		}
	}
	return boolResult(deleted)
}

// addSymbol appends a symbol to a category. The ID is generated Go-side.
// Args: [categoryId string, symbolJSON string]
func addSymbol(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("addSymbol requires 2 args: categoryId, symbolJSON")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	var sym board.Symbol
	if err := json.Unmarshal([]byte(args[1].String()), &sym); err != nil {
		return errorResult("invalid symbol json: " + err.Error())
	}

	created, ok := aac.AddSymbolToCategory(args[0].String(), sym)
	if !ok {
		return boolResult(false)
	}
	if err := rebuildIndex(); err != nil {
		logger.Warn("search index rebuild failed", zap.Error(err))
	}
	return marshalResult(created)
}

// updateSymbol merges a partial update into a symbol.
// Args: [categoryId string, symbolId string, patchJSON string]
func updateSymbol(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("updateSymbol requires 3 args: categoryId, symbolId, patchJSON")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	var patch board.SymbolPatch
	if err := json.Unmarshal([]byte(args[2].String()), &patch); err != nil {
		return errorResult("invalid patch json: " + err.Error())
	}

	updated := aac.UpdateSymbolInCategory(args[0].String(), args[1].String(), patch)
	if updated {
		if err := rebuildIndex(); err != nil {
			logger.Warn("search index rebuild failed", zap.Error(err))
		}
	}
	return boolResult(updated)
}

// deleteSymbol removes a symbol from a category.
// Args: [categoryId string, symbolId string]
func deleteSymbol(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("deleteSymbol requires 2 args: categoryId, symbolId")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	deleted := aac.DeleteSymbolFromCategory(args[0].String(), args[1].String())
	if deleted {
		if err := rebuildIndex(); err != nil {
			logger.Warn("search index rebuild failed", zap.Error(err))
		}
	}
	return boolResult(deleted)
}

// reorderItems replaces a category's symbol order after a drag.
// Args: [categoryId string, itemsJSON string]
func reorderItems(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("reorderItems requires 2 args: categoryId, itemsJSON")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	var items []board.Symbol
	if err := json.Unmarshal([]byte(args[1].String()), &items); err != nil {
		return errorResult("invalid items json: " + err.Error())
	}

	return boolResult(aac.ReorderCategoryItems(args[0].String(), items))
}

// =============================================================================
// Sentence + speech
// =============================================================================

// addToSentence appends a symbol to the utterance and returns the
// sentence item with its generated tempId.
// Args: [symbolJSON string]
func addToSentence(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("addToSentence requires 1 arg: symbolJSON")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	var sym board.Symbol
	if err := json.Unmarshal([]byte(args[0].String()), &sym); err != nil {
		return errorResult("invalid symbol json: " + err.Error())
	}

	return marshalResult(aac.AddToSentence(sym))
}

// removeFromSentence removes one insertion by tempId.
// Args: [tempId string]
func removeFromSentence(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("removeFromSentence requires 1 arg: tempId")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}
	return boolResult(aac.RemoveFromSentence(args[0].String()))
}

func clearSentence(this js.Value, args []js.Value) interface{} {
	if aac == nil {
		return errorResult("board not initialized")
	}
	aac.ClearSentence()
	return successResult("ok")
}

func playSentence(this js.Value, args []js.Value) interface{} {
	if aac == nil {
		return errorResult("board not initialized")
	}
	aac.PlaySentence()
	return successResult("ok")
}

// speak renders arbitrary text with the current voice settings.
// Args: [text string]
func speak(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("speak requires 1 arg: text")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}
	aac.Speak(args[0].String())
	return successResult("ok")
}

// =============================================================================
// Favorites
// =============================================================================

// addFavorite pins a symbol, deduplicated by ID.
// Args: [symbolJSON string]
func addFavorite(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("addFavorite requires 1 arg: symbolJSON")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	var sym board.Symbol
	if err := json.Unmarshal([]byte(args[0].String()), &sym); err != nil {
		return errorResult("invalid symbol json: " + err.Error())
	}
	return boolResult(aac.AddFavorite(sym))
}

// removeFavorite unpins a symbol by ID.
// Args: [symbolId string]
func removeFavorite(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("removeFavorite requires 1 arg: symbolId")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}
	return boolResult(aac.RemoveFavorite(args[0].String()))
}

// reorderFavorites replaces the favorites order after a drag.
// Args: [itemsJSON string]
func reorderFavorites(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("reorderFavorites requires 1 arg: itemsJSON")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	var items []board.Symbol
	if err := json.Unmarshal([]byte(args[0].String()), &items); err != nil {
		return errorResult("invalid items json: " + err.Error())
	}
	aac.ReorderFavorites(items)
	return successResult("ok")
}

// =============================================================================
// Agenda
// =============================================================================

// addAgendaItem creates a scheduled activity.
// Args: [title string, type string, date string, time string]
func addAgendaItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("addAgendaItem requires args: title, type, date[, time]")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	timeOfDay := ""
	if len(args) > 3 {
		timeOfDay = args[3].String()
	}

	item, ok := aac.AddAgendaItem(args[0].String(), board.AgendaType(args[1].String()), args[2].String(), timeOfDay)
	if !ok {
		return boolResult(false)
	}
	return marshalResult(item)
}

// toggleAgendaItem flips an entry's completed flag.
// Args: [id string]
func toggleAgendaItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("toggleAgendaItem requires 1 arg: id")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}
	return boolResult(aac.ToggleAgendaItem(args[0].String()))
}

// deleteAgendaItem removes an entry.
// Args: [id string]
func deleteAgendaItem(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("deleteAgendaItem requires 1 arg: id")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}
	return boolResult(aac.DeleteAgendaItem(args[0].String()))
}

// =============================================================================
// Settings + identity
// =============================================================================

// updateSettings merges a partial settings update and returns the
// resulting settings.
// Args: [patchJSON string]
func updateSettings(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("updateSettings requires 1 arg: patchJSON")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	var patch board.SettingsPatch
	if err := json.Unmarshal([]byte(args[0].String()), &patch); err != nil {
		return errorResult("invalid patch json: " + err.Error())
	}
	return marshalResult(aac.UpdateSettings(patch))
}

// login starts the host sign-in flow.
// Args: [provider string] — "google" or "apple"
// Returns: Promise<JSON user>
func login(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("login requires 1 arg: provider")
	}
	if aac == nil {
		return errorResult("board not initialized")
	}

	provider := identity.ProviderName(args[0].String())
	promise, resolve, reject := makePromise()

	go func() {
		user, err := aac.Login(context.Background(), provider)
		if err != nil {
			reject.Invoke(err.Error())
			return
		}
		data, _ := json.Marshal(user)
		resolve.Invoke(string(data))
	}()

	return promise
}

// logout ends the host session.
// Returns: Promise<JSON>
func logout(this js.Value, args []js.Value) interface{} {
	if aac == nil {
		return errorResult("board not initialized")
	}

	promise, resolve, reject := makePromise()

	go func() {
		if err := aac.Logout(context.Background()); err != nil {
			reject.Invoke(err.Error())
			return
		}
		resolve.Invoke(successResult("signed out"))
	}()

	return promise
}

// =============================================================================
// Vocabulary search
// =============================================================================

// searchLookup finds symbols matching a surface form exactly.
// Args: [surface string]
func searchLookup(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("searchLookup requires 1 arg: surface")
	}
	return marshalResult(index.Lookup(args[0].String()))
}

// searchScan finds every symbol mentioned inside free text.
// Args: [text string]
func searchScan(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("searchScan requires 1 arg: text")
	}
	return marshalResult(index.Scan(args[0].String()))
}

// searchSuggest returns symbols matching the tokens of a typed query.
// Args: [query string]
func searchSuggest(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("searchSuggest requires 1 arg: query")
	}
	return marshalResult(index.Suggest(args[0].String()))
}

// =============================================================================
// Store snapshot (OPFS sync)
// =============================================================================

// storeExport serializes the KV store for the host to persist.
// Returns: Uint8Array
func storeExport(this js.Value, args []js.Value) interface{} {
	if kv == nil {
		return errorResult("store not initialized")
	}
	if aac != nil {
		aac.Flush() // snapshot must include in-flight write-throughs
	}

	data, err := kv.Export()
	if err != nil {
		return errorResult("export failed: " + err.Error())
	}

	jsArray := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(jsArray, data)

	fmt.Printf("[GoVoz] ✅ Exported %d bytes\n", len(data))
	return jsArray
}

// storeImport restores the KV store from a host snapshot. Call before
// initialize so the board loads the imported state.
// Args: [data Uint8Array]
func storeImport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeImport requires 1 arg: data")
	}

	var err error
	if kv == nil {
		kv, err = store.NewSQLiteKV()
		if err != nil {
			return errorResult("failed to initialize SQLite store: " + err.Error())
		}
	}

	data := make([]byte, args[0].Length())
	js.CopyBytesToGo(data, args[0])

	if err := kv.Import(data); err != nil {
		return errorResult("import failed: " + err.Error())
	}

	fmt.Printf("[GoVoz] ✅ Imported %d bytes\n", len(data))
	return successResult("imported")
}

// flush waits for every outstanding write-through.
func flush(this js.Value, args []js.Value) interface{} {
	if aac == nil {
		return errorResult("board not initialized")
	}
	aac.Flush()
	return successResult("flushed")
}

// =============================================================================
// Helpers
// =============================================================================

// makePromise creates a JS Promise and returns it along with resolve/reject functions.
func makePromise() (promise js.Value, resolve js.Value, reject js.Value) {
	var resolveFn, rejectFn js.Value
	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolveFn = args[0]
		rejectFn = args[1]
		return nil
	})
	defer handler.Release()

	promise = js.Global().Get("Promise").New(handler)
	return promise, resolveFn, rejectFn
}

func marshalResult(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult("marshal failed: " + err.Error())
	}
	return string(data)
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

func boolResult(ok bool) interface{} {
	result := map[string]interface{}{
		"ok": ok,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
