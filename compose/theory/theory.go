// Package theory provides the harmonic foundation for metal composition:
// pitch classes, intervals with directed (shortest-wrap) distance,
// dissonance scoring, modal scales, and extended-range guitar tunings.
package theory

import (
	"fmt"
	"math"
)

// Note is an absolute pitch as a MIDI note number (C4 = 60).
type Note int

// PitchClass is a pitch reduced modulo the octave, in [0, 11].
type PitchClass int

// Interval is a signed semitone distance between two pitches.
type Interval int

const (
	semitonesPerOctave = 12

	minNote = 0
	maxNote = 127

	referenceNote   = 69 // A4
	referenceFreqHz = 440.0
)

// Class returns the pitch class of n.
func (n Note) Class() PitchClass {
	c := int(n) % semitonesPerOctave
	if c < 0 {
		c += semitonesPerOctave
	}

	return PitchClass(c)
}

// Frequency returns the equal-temperament frequency of n in Hz.
func (n Note) Frequency() float64 {
	return referenceFreqHz * math.Pow(2, float64(int(n)-referenceNote)/semitonesPerOctave)
}

// Valid reports whether n is in the MIDI range [0, 127].
func (n Note) Valid() bool {
	return n >= minNote && n <= maxNote
}

// Transpose returns n shifted by iv semitones, clamped to the MIDI range.
func (n Note) Transpose(iv Interval) Note {
	t := int(n) + int(iv)
	if t < minNote {
		t = minNote
	}

	if t > maxNote {
		t = maxNote
	}

	return Note(t)
}

// TransposeChecked returns n shifted by iv semitones, or an error when
// the result leaves the MIDI range. Callers that want saturation use
// Transpose instead.
func (n Note) TransposeChecked(iv Interval) (Note, error) {
	t := int(n) + int(iv)
	if t < minNote || t > maxNote {
		return 0, fmt.Errorf("transpose of %d by %d leaves [%d, %d]: %d",
			int(n), int(iv), minNote, maxNote, t)
	}

	return Note(t), nil
}

// DirectedDistance returns the shortest-wrap interval from a to b in
// [-6, +6]. Ascending motion wins the tie at the tritone.
func DirectedDistance(a, b PitchClass) Interval {
	d := (int(b) - int(a)) % semitonesPerOctave
	if d < 0 {
		d += semitonesPerOctave
	}

	if d > semitonesPerOctave/2 {
		d -= semitonesPerOctave
	}

	return Interval(d)
}

// dissonanceByClass scores each interval class in [0, 1]. The ordering
// follows the usual consonance ranking with the tritone on top; the
// minor second sits just below it, which is what makes it the metal
// interval of choice.
var dissonanceByClass = [7]float64{
	0: 0.00, // unison / octave
	1: 0.95, // minor second
	2: 0.55, // major second
	3: 0.40, // minor third
	4: 0.30, // major third
	5: 0.15, // perfect fourth
	6: 1.00, // tritone
}

// Dissonance returns the dissonance score of iv in [0, 1].
// The score depends only on the undirected interval class.
func Dissonance(iv Interval) float64 {
	c := int(iv) % semitonesPerOctave
	if c < 0 {
		c += semitonesPerOctave
	}

	if c > semitonesPerOctave/2 {
		c = semitonesPerOctave - c
	}

	return dissonanceByClass[c]
}

// SequenceDissonance returns the mean dissonance over consecutive note
// pairs of seq, or 0 for sequences shorter than two notes.
func SequenceDissonance(seq []Note) float64 {
	if len(seq) < 2 {
		return 0
	}

	var sum float64

	for i := 1; i < len(seq); i++ {
		sum += Dissonance(DirectedDistance(seq[i-1].Class(), seq[i].Class()))
	}

	return sum / float64(len(seq)-1)
}

func validateNote(name string, n Note) error {
	if !n.Valid() {
		return fmt.Errorf("%s must be in [%d, %d]: %d", name, minNote, maxNote, int(n))
	}

	return nil
}
