package riff

import (
	"testing"

	"github.com/cwbudde/algo-metal/compose/rhythm"
	"github.com/cwbudde/algo-metal/compose/theory"
)

func notePtr(n theory.Note) *theory.Note {
	return &n
}

func TestNewRiffValidatesDurations(t *testing.T) {
	events := []Event{
		{Pitch: notePtr(40), Steps: 4, PalmMuted: true},
		{Steps: 4},
		{Pitch: notePtr(43), Steps: 8},
	}

	r, err := NewRiff(16, events)
	if err != nil {
		t.Fatalf("NewRiff error: %v", err)
	}

	if r.Steps() != 16 {
		t.Fatalf("Steps() = %d, want 16", r.Steps())
	}

	if r.NoteCount() != 2 {
		t.Fatalf("NoteCount() = %d, want 2", r.NoteCount())
	}

	if _, err := NewRiff(12, events); err == nil {
		t.Fatal("expected error for duration mismatch")
	}

	if _, err := NewRiff(16, []Event{{Pitch: notePtr(40), Steps: 0}}); err == nil {
		t.Fatal("expected error for zero-duration event")
	}

	if _, err := NewRiff(4, []Event{{Pitch: notePtr(200), Steps: 4}}); err == nil {
		t.Fatal("expected error for out-of-range pitch")
	}
}

func TestRiffWithPitches(t *testing.T) {
	r, err := NewRiff(8, []Event{
		{Pitch: notePtr(40), Steps: 2},
		{Steps: 2},
		{Pitch: notePtr(45), Steps: 4},
	})
	if err != nil {
		t.Fatalf("NewRiff error: %v", err)
	}

	swapped, err := r.WithPitches([]theory.Note{41, 47})
	if err != nil {
		t.Fatalf("WithPitches error: %v", err)
	}

	got := swapped.Pitches()
	if len(got) != 2 || got[0] != 41 || got[1] != 47 {
		t.Fatalf("Pitches() = %v, want [41 47]", got)
	}

	// The original riff keeps its pitches.
	orig := r.Pitches()
	if orig[0] != 40 || orig[1] != 45 {
		t.Fatalf("original mutated: %v", orig)
	}

	if _, err := r.WithPitches([]theory.Note{41}); err == nil {
		t.Fatal("expected error for pitch count mismatch")
	}
}

func TestAssembleMapsDegreesToPitches(t *testing.T) {
	key, err := theory.NewKey(40, theory.Phrygian)
	if err != nil {
		t.Fatalf("NewKey error: %v", err)
	}

	grid := rhythm.Grid{true, false, true, false, false, false, true, false}
	walk := []Step{
		{Degree: 0, Pedal: true},
		{Degree: 1},
		{Degree: 4},
	}

	r, err := Assemble(grid, walk, key)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	if r.Steps() != 8 {
		t.Fatalf("Steps() = %d, want 8", r.Steps())
	}

	events := r.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(events), events)
	}

	// E Phrygian: degree 0 -> E2 (40), degree 1 -> F2 (41), degree 4 -> B2 (47).
	if *events[0].Pitch != 40 || !events[0].PalmMuted || events[0].Steps != 2 {
		t.Fatalf("event 0 = %+v", events[0])
	}

	if *events[1].Pitch != 41 || events[1].PalmMuted || events[1].Steps != 4 {
		t.Fatalf("event 1 = %+v", events[1])
	}

	if *events[2].Pitch != 47 || events[2].Steps != 2 {
		t.Fatalf("event 2 = %+v", events[2])
	}
}

func TestAssembleEmitsExplicitRests(t *testing.T) {
	key, err := theory.NewKey(40, theory.Minor)
	if err != nil {
		t.Fatalf("NewKey error: %v", err)
	}

	grid := rhythm.Grid{false, false, true, false}
	walk := []Step{{Degree: 0, Pedal: true}}

	r, err := Assemble(grid, walk, key)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	events := r.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	if !events[0].Rest() || events[0].Steps != 2 {
		t.Fatalf("leading rest = %+v", events[0])
	}

	if events[1].Rest() || events[1].Steps != 2 {
		t.Fatalf("note event = %+v", events[1])
	}
}

func TestAssembleAllRests(t *testing.T) {
	key, err := theory.NewKey(40, theory.Minor)
	if err != nil {
		t.Fatalf("NewKey error: %v", err)
	}

	r, err := Assemble(rhythm.Grid{false, false, false, false}, nil, key)
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	if r.NoteCount() != 0 || r.Steps() != 4 {
		t.Fatalf("all-rest riff = %+v", r.Events())
	}
}

func TestAssembleValidation(t *testing.T) {
	key, err := theory.NewKey(40, theory.Minor)
	if err != nil {
		t.Fatalf("NewKey error: %v", err)
	}

	if _, err := Assemble(rhythm.Grid{}, nil, key); err == nil {
		t.Fatal("expected error for empty grid")
	}

	grid := rhythm.Grid{true, true}
	if _, err := Assemble(grid, []Step{{Degree: 0}}, key); err == nil {
		t.Fatal("expected error for short walk")
	}
}

func TestAssembleRejectsOutOfRangeDegree(t *testing.T) {
	key, err := theory.NewKey(120, theory.Phrygian)
	if err != nil {
		t.Fatalf("NewKey error: %v", err)
	}

	grid := rhythm.Grid{true, false}
	walk := []Step{{Degree: 6}} // 120 + 10 semitones overshoots 127

	if _, err := Assemble(grid, walk, key); err == nil {
		t.Fatal("expected error for a degree past the top of the MIDI range")
	}
}
