// Package drums turns rhythm grids into humanized drum hit events and
// generates blast-beat patterns. Humanization jitters timing and velocity
// inside preset bounds so fast passages lose the machine-gun feel.
package drums

import "fmt"

// Instrument identifies a percussion voice.
type Instrument int

const (
	Kick Instrument = iota
	Snare
	Rimshot
	HiHatClosed
	Crash
)

// String returns the instrument name.
func (i Instrument) String() string {
	switch i {
	case Kick:
		return "kick"
	case Snare:
		return "snare"
	case Rimshot:
		return "rimshot"
	case HiHatClosed:
		return "hihat-closed"
	case Crash:
		return "crash"
	default:
		return fmt.Sprintf("instrument(%d)", int(i))
	}
}

// HitEvent is one humanized drum hit: the grid step it belongs to, a
// timing offset in ticks around that step, and a velocity in [0, 127].
type HitEvent struct {
	Instrument Instrument
	Step       int
	TickOffset int
	Velocity   int
}
