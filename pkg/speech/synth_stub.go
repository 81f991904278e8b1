//go:build !js && !wasm
// +build !js,!wasm

package speech

// Synthesizer is a stub for non-WASM builds; there is no speech engine
// outside the browser host.
type Synthesizer struct{}

// NewSynthesizer creates a no-op synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Speak discards the utterance.
func (s *Synthesizer) Speak(_ string, _ Options) {}

var _ Speaker = (*Synthesizer)(nil)
