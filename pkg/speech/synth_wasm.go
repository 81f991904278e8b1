//go:build js && wasm
// +build js,wasm

package speech

import "syscall/js"

// Synthesizer speaks through the browser's window.speechSynthesis.
type Synthesizer struct{}

// NewSynthesizer creates a browser-backed synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Speak queues text on the speech engine. Silently drops the utterance
// when the host has no speechSynthesis (old WebViews).
func (s *Synthesizer) Speak(text string, opts Options) {
	if text == "" {
		return
	}

	synth := js.Global().Get("speechSynthesis")
	if synth.IsUndefined() {
		return
	}

	utterance := js.Global().Get("SpeechSynthesisUtterance").New(text)

	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	utterance.Set("lang", lang)

	if opts.Rate > 0 {
		utterance.Set("rate", opts.Rate)
	}

	if opts.VoiceID != "" {
		if voice := findVoice(synth, opts.VoiceID); !voice.IsUndefined() {
			utterance.Set("voice", voice)
		}
	}

	synth.Call("speak", utterance)
}

// findVoice matches a configured voice ID against the engine's voice
// list by voiceURI first, then by name.
func findVoice(synth js.Value, voiceID string) js.Value {
	voices := synth.Call("getVoices")
	n := voices.Length()
	for i := 0; i < n; i++ {
		v := voices.Index(i)
		if v.Get("voiceURI").String() == voiceID || v.Get("name").String() == voiceID {
			return v
		}
	}
	return js.Undefined()
}

var _ Speaker = (*Synthesizer)(nil)
