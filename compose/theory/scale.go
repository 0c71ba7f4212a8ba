package theory

import "fmt"

// Scale is a modal formula: an ordered set of semitone offsets from a
// root. Offsets are strictly increasing, start at 0, and stay within a
// single octave.
type Scale struct {
	name    string
	offsets []Interval
}

// Predefined scales covering the metal vocabulary.
var (
	Minor           = mustScale("minor", 0, 2, 3, 5, 7, 8, 10)
	Phrygian        = mustScale("phrygian", 0, 1, 3, 5, 7, 8, 10)
	Dorian          = mustScale("dorian", 0, 2, 3, 5, 7, 9, 10)
	HarmonicMinor   = mustScale("harmonic minor", 0, 2, 3, 5, 7, 8, 11)
	MinorPentatonic = mustScale("minor pentatonic", 0, 3, 5, 7, 10)
)

// NewScale creates a validated scale from semitone offsets.
func NewScale(name string, offsets ...Interval) (Scale, error) {
	if len(offsets) == 0 {
		return Scale{}, fmt.Errorf("scale %q must have at least one offset", name)
	}

	if offsets[0] != 0 {
		return Scale{}, fmt.Errorf("scale %q first offset must be 0: %d", name, offsets[0])
	}

	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			return Scale{}, fmt.Errorf("scale %q offsets must be strictly increasing: offset[%d]=%d after %d",
				name, i, offsets[i], offsets[i-1])
		}
	}

	last := offsets[len(offsets)-1]
	if last >= semitonesPerOctave {
		return Scale{}, fmt.Errorf("scale %q offsets must stay below an octave: %d", name, last)
	}

	s := Scale{name: name, offsets: make([]Interval, len(offsets))}
	copy(s.offsets, offsets)

	return s, nil
}

func mustScale(name string, offsets ...Interval) Scale {
	s, err := NewScale(name, offsets...)
	if err != nil {
		panic(err)
	}

	return s
}

// Name returns the scale's display name.
func (s Scale) Name() string { return s.name }

// Degrees returns the number of scale degrees.
func (s Scale) Degrees() int { return len(s.offsets) }

// Offset returns the semitone offset of degree i. Degrees beyond the
// formula wrap into higher octaves.
func (s Scale) Offset(i int) Interval {
	n := len(s.offsets)
	octave := i / n
	idx := i % n

	if idx < 0 {
		idx += n
		octave--
	}

	return s.offsets[idx] + Interval(octave*semitonesPerOctave)
}

// Notes returns one octave of the scale built on root. Notes above the
// MIDI range are omitted.
func (s Scale) Notes(root Note) []Note {
	notes := make([]Note, 0, len(s.offsets))

	for _, off := range s.offsets {
		n := Note(int(root) + int(off))
		if n.Valid() {
			notes = append(notes, n)
		}
	}

	return notes
}

// NotesRange returns the scale built on root across the given number
// of octaves, omitting notes above the MIDI range.
func (s Scale) NotesRange(root Note, octaves int) []Note {
	notes := make([]Note, 0, octaves*len(s.offsets))

	for oct := range octaves {
		for _, off := range s.offsets {
			n := Note(int(root) + oct*semitonesPerOctave + int(off))
			if n.Valid() {
				notes = append(notes, n)
			}
		}
	}

	return notes
}

// Contains reports whether the pitch class of n belongs to the scale
// built on root.
func (s Scale) Contains(root, n Note) bool {
	d := DirectedDistance(root.Class(), n.Class())

	c := int(d)
	if c < 0 {
		c += semitonesPerOctave
	}

	for _, off := range s.offsets {
		if int(off) == c {
			return true
		}
	}

	return false
}

// Key pairs a root note with a scale.
type Key struct {
	Root  Note
	Scale Scale
}

// NewKey creates a validated key.
func NewKey(root Note, scale Scale) (Key, error) {
	if err := validateNote("key root", root); err != nil {
		return Key{}, err
	}

	if scale.Degrees() == 0 {
		return Key{}, fmt.Errorf("key scale must not be empty")
	}

	return Key{Root: root, Scale: scale}, nil
}

// Notes returns one octave of the key's scale.
func (k Key) Notes() []Note { return k.Scale.Notes(k.Root) }
