// Package synth provides the sound sources for the renderer: a
// Karplus-Strong plucked-string voice with technique-dependent decay
// and damping, a darker bass variant, and one-shot percussion voices
// (kick, snare, hi-hat, crash).
//
// All voices are mono and operate at an arbitrary sample rate. They
// produce raw, unprocessed audio; amp-style coloration lives in
// synth/chain.
package synth
