// Package speech exposes the text-to-speech capability consumed by the
// board. The browser implementation drives window.speechSynthesis; on
// non-WASM builds the synthesizer is a no-op so the core stays testable.
package speech

// DefaultLanguage is the utterance language when none is configured.
const DefaultLanguage = "pt-BR"

// Options selects the voice and delivery of a single utterance.
// A zero Rate means engine default.
type Options struct {
	VoiceID  string
	Rate     float64
	Language string
}

// Speaker renders text as audio. Fire-and-forget: the board consumes no
// completion signal and failures stay inside the platform engine.
type Speaker interface {
	Speak(text string, opts Options)
}

// Func adapts a function to the Speaker interface.
type Func func(text string, opts Options)

// Speak calls f.
func (f Func) Speak(text string, opts Options) { f(text, opts) }

// Null is a Speaker that discards every utterance.
type Null struct{}

// Speak does nothing.
func (Null) Speak(string, Options) {}
