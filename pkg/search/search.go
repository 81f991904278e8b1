// Package search finds symbols across the whole vocabulary. A single
// Aho-Corasick automaton over every symbol surface (label and speech
// override) serves both exact lookup and free-text scanning, so a
// caregiver can type a phrase and get back the pictograms it mentions.
package search

import (
	"strings"
	"sync"
	"unicode"

	"github.com/coregx/ahocorasick"
	"github.com/orsinium-labs/stopwords"

	"github.com/vozamiga/govoz/pkg/board"
)

// Hit is a symbol found by a query, with the category it lives in so
// the UI can jump there.
type Hit struct {
	CategoryID string       `json:"categoryId"`
	Symbol     board.Symbol `json:"symbol"`
}

// Index is the searchable view of the vocabulary. Rebuild it whenever
// categories change; queries are cheap and safe to run concurrently.
type Index struct {
	mu           sync.RWMutex
	ac           *ahocorasick.Automaton
	patternIndex map[string]int // canonical surface -> pattern position
	patternHits  [][]int        // pattern position -> indexes into hits
	hits         []Hit
	surfaces     []string // canonical surface per hit, for token queries

	stop *stopwords.Stopwords
}

// New creates an empty index with Portuguese stopword filtering.
func New() *Index {
	return &Index{
		patternIndex: make(map[string]int),
		stop:         stopwords.MustGet("pt"),
	}
}

// Rebuild replaces the index contents from the current categories.
func (x *Index) Rebuild(categories []board.Category) error {
	patternIndex := make(map[string]int)
	var patterns []string
	var patternHits [][]int
	var hits []Hit
	var surfaces []string

	for _, cat := range categories {
		for _, sym := range cat.Items {
			hitIdx := len(hits)
			hits = append(hits, Hit{CategoryID: cat.ID, Symbol: sym})

			primary := Canonicalize(sym.Label)
			surfaces = append(surfaces, primary)

			for _, surface := range []string{sym.Label, sym.SpeechText} {
				key := Canonicalize(surface)
				if key == "" {
					continue
				}
				idx, exists := patternIndex[key]
				if !exists {
					idx = len(patterns)
					patterns = append(patterns, key)
					patternIndex[key] = idx
					patternHits = append(patternHits, nil)
				}
				patternHits[idx] = appendUnique(patternHits[idx], hitIdx)
			}
		}
	}

	var ac *ahocorasick.Automaton
	if len(patterns) > 0 {
		// LeftmostLongest so "por favor" wins over a bare "por"
		automaton, err := ahocorasick.NewBuilder().
			AddStrings(patterns).
			SetMatchKind(ahocorasick.LeftmostLongest).
			SetPrefilter(true).
			Build()
		if err != nil {
			return err
		}
		ac = automaton
	}

	x.mu.Lock()
	x.ac = ac
	x.patternIndex = patternIndex
	x.patternHits = patternHits
	x.hits = hits
	x.surfaces = surfaces
	x.mu.Unlock()
	return nil
}

// Lookup returns the symbols whose label or speech text matches the
// surface exactly (after canonicalization).
func (x *Index) Lookup(surface string) []Hit {
	x.mu.RLock()
	defer x.mu.RUnlock()

	idx, exists := x.patternIndex[Canonicalize(surface)]
	if !exists {
		return nil
	}

	out := make([]Hit, 0, len(x.patternHits[idx]))
	for _, hitIdx := range x.patternHits[idx] {
		out = append(out, x.hits[hitIdx])
	}
	return out
}

// Scan finds every symbol mentioned inside free text, in match order,
// deduplicated by symbol ID.
func (x *Index) Scan(text string) []Hit {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.ac == nil {
		return nil
	}

	matches := x.ac.FindAllOverlapping([]byte(Canonicalize(text)))

	var out []Hit
	seen := make(map[string]bool)
	for _, m := range matches {
		for _, hitIdx := range x.patternHits[m.PatternID] {
			hit := x.hits[hitIdx]
			if seen[hit.Symbol.ID] {
				continue
			}
			seen[hit.Symbol.ID] = true
			out = append(out, hit)
		}
	}
	return out
}

// Suggest returns symbols whose label contains every meaningful token
// of the query. Stopwords are dropped from the query unless it is made
// of nothing else ("eu quero" is a real symbol label).
func (x *Index) Suggest(query string) []Hit {
	tokens := x.queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	var out []Hit
	for i, surface := range x.surfaces {
		if containsAll(surface, tokens) {
			out = append(out, x.hits[i])
		}
	}
	return out
}

// queryTokens canonicalizes and tokenizes a query, filtering Portuguese
// stopwords. Falls back to the raw tokens when everything was filtered.
func (x *Index) queryTokens(query string) []string {
	tokens := strings.Fields(Canonicalize(query))
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if x.stop != nil && x.stop.Contains(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return tokens
	}
	return kept
}

func containsAll(surface string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(surface, tok) {
			return false
		}
	}
	return true
}

func appendUnique(list []int, v int) []int {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// Canonicalize lowercases a surface and collapses everything that is
// not a letter, digit, hyphen, or apostrophe into single spaces.
// Accented letters pass through untouched; "Por favor!" and "por favor"
// canonicalize identically.
func Canonicalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := true
	for _, ch := range s {
		c := unicode.ToLower(ch)
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '\'' {
			out.WriteRune(c)
			lastWasSpace = false
			continue
		}
		if !lastWasSpace {
			out.WriteRune(' ')
			lastWasSpace = true
		}
	}

	return strings.TrimRight(out.String(), " ")
}
