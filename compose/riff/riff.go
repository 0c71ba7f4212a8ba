package riff

import (
	"fmt"

	"github.com/cwbudde/algo-metal/compose/rhythm"
	"github.com/cwbudde/algo-metal/compose/theory"
)

// Event is one rhythmic slot of a riff. A rest carries a nil pitch; it is
// an explicit event, not an absence, so downstream stages can account for
// every step. Steps is the event's duration in grid steps.
type Event struct {
	Pitch     *theory.Note
	Steps     int
	PalmMuted bool
}

// Rest reports whether the event is a rest.
func (e Event) Rest() bool {
	return e.Pitch == nil
}

// Riff is an immutable sequence of events whose step durations sum to the
// riff's total step count.
type Riff struct {
	events []Event
	steps  int
}

// NewRiff builds a riff from events, validating that their durations cover
// exactly the given number of steps.
func NewRiff(steps int, events []Event) (Riff, error) {
	if steps <= 0 {
		return Riff{}, fmt.Errorf("riff: step count must be positive, got %d", steps)
	}

	total := 0

	for i, ev := range events {
		if ev.Steps <= 0 {
			return Riff{}, fmt.Errorf("riff: event %d has non-positive duration %d", i, ev.Steps)
		}

		if ev.Pitch != nil && !ev.Pitch.Valid() {
			return Riff{}, fmt.Errorf("riff: event %d pitch %d out of range", i, *ev.Pitch)
		}

		total += ev.Steps
	}

	if total != steps {
		return Riff{}, fmt.Errorf("riff: event durations sum to %d, want %d", total, steps)
	}

	out := make([]Event, len(events))
	copy(out, events)

	return Riff{events: out, steps: steps}, nil
}

// Steps returns the riff length in grid steps.
func (r Riff) Steps() int {
	return r.steps
}

// Events returns a copy of the riff's events.
func (r Riff) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)

	return out
}

// Pitches returns the sounding pitches in order, skipping rests.
func (r Riff) Pitches() []theory.Note {
	out := make([]theory.Note, 0, len(r.events))

	for _, ev := range r.events {
		if ev.Pitch != nil {
			out = append(out, *ev.Pitch)
		}
	}

	return out
}

// NoteCount returns the number of sounding (non-rest) events.
func (r Riff) NoteCount() int {
	count := 0

	for _, ev := range r.events {
		if ev.Pitch != nil {
			count++
		}
	}

	return count
}

// WithPitches returns a copy of the riff with its sounding pitches
// replaced in order. The pitch count must match the riff's note count.
func (r Riff) WithPitches(pitches []theory.Note) (Riff, error) {
	if len(pitches) != r.NoteCount() {
		return Riff{}, fmt.Errorf("riff: got %d pitches for %d notes", len(pitches), r.NoteCount())
	}

	events := r.Events()
	i := 0

	for j := range events {
		if events[j].Pitch == nil {
			continue
		}

		p := pitches[i]
		if !p.Valid() {
			return Riff{}, fmt.Errorf("riff: pitch %d out of range", p)
		}

		events[j].Pitch = &p
		i++
	}

	return Riff{events: events, steps: r.steps}, nil
}

// Assemble lays a degree walk onto a rhythm grid in the given key. Hit
// slots consume walk steps in order and sound for the full gap to the next
// hit; silent gaps become explicit rest events. Pedal steps come out
// palm-muted.
func Assemble(grid rhythm.Grid, walk []Step, key theory.Key) (Riff, error) {
	if len(grid) == 0 {
		return Riff{}, fmt.Errorf("riff: grid must not be empty")
	}

	hits := grid.HitSteps()
	if len(hits) > len(walk) {
		return Riff{}, fmt.Errorf("riff: grid has %d hits but walk has %d steps", len(hits), len(walk))
	}

	events := make([]Event, 0, len(hits)+1)

	if len(hits) == 0 {
		events = append(events, Event{Steps: len(grid)})
		return NewRiff(len(grid), events)
	}

	if hits[0] > 0 {
		events = append(events, Event{Steps: hits[0]})
	}

	for i, slot := range hits {
		end := len(grid)
		if i+1 < len(hits) {
			end = hits[i+1]
		}

		step := walk[i]

		pitch, err := key.Root.TransposeChecked(key.Scale.Offset(step.Degree))
		if err != nil {
			return Riff{}, fmt.Errorf("riff: degree %d from root %d: %w",
				step.Degree, int(key.Root), err)
		}

		events = append(events, Event{
			Pitch:     &pitch,
			Steps:     end - slot,
			PalmMuted: step.Pedal,
		})
	}

	return NewRiff(len(grid), events)
}
