// Package voice wraps an external text-to-speech engine and composes the
// spoken reminder announcements.
package voice

// Voice describes one synthesis voice offered by the engine.
type Voice struct {
	Name string
	Lang string
}

// Options controls one utterance.
type Options struct {
	Rate   float64 // 1.0 = normal speed
	Pitch  float64 // 1.0 = normal pitch
	Volume float64 // 0..1
	Lang   string  // BCP 47 style language code, e.g. "zh-CN"
	Voice  string  // engine voice name; empty = pick by Lang
}

// Engine is the text-to-speech collaborator.
type Engine interface {
	// Supported reports whether the engine is usable on this device.
	Supported() bool
	// Voices lists the available voices; may be empty.
	Voices() []Voice
	// Speak synthesizes text and blocks until the utterance finishes or
	// fails.
	Speak(text string, opts Options) error
	// Stop cancels any utterance in flight.
	Stop()
}
