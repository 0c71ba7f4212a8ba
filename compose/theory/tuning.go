package theory

import "fmt"

const (
	minStrings = 6
	maxStrings = 8

	// Tunings with the lowest string below B1 keep the bass in unison;
	// an octave below would fall outside the useful register.
	bassUnisonThreshold = 35 // B1
)

// Tuning is an ordered sequence of open-string pitches, low to high.
type Tuning struct {
	name    string
	strings []Note
}

// Standard and extended-range metal tunings.
var (
	EStandard       = mustTuning("E standard", 40, 45, 50, 55, 59, 64)
	DropD           = mustTuning("drop D", 38, 45, 50, 55, 59, 64)
	DStandard       = mustTuning("D standard", 38, 43, 48, 53, 57, 62)
	CStandard       = mustTuning("C standard", 36, 41, 46, 51, 55, 60)
	DropC           = mustTuning("drop C", 36, 43, 48, 53, 57, 62)
	BStandard7      = mustTuning("B standard 7", 35, 40, 45, 50, 55, 59, 64)
	DropA7          = mustTuning("drop A 7", 33, 40, 45, 50, 55, 59, 64)
	FSharpStandard8 = mustTuning("F# standard 8", 30, 35, 40, 45, 50, 55, 59, 64)
	DropE8          = mustTuning("drop E 8", 28, 35, 40, 45, 50, 55, 59, 64)
)

// NewTuning creates a validated tuning from open-string notes, low to
// high.
func NewTuning(name string, strings ...Note) (Tuning, error) {
	if len(strings) < minStrings || len(strings) > maxStrings {
		return Tuning{}, fmt.Errorf("tuning %q must have %d to %d strings: %d",
			name, minStrings, maxStrings, len(strings))
	}

	for i, n := range strings {
		if err := validateNote(fmt.Sprintf("tuning %q string %d", name, i), n); err != nil {
			return Tuning{}, err
		}

		if i > 0 && n < strings[i-1] {
			return Tuning{}, fmt.Errorf("tuning %q strings must be non-decreasing: string %d (%d) below string %d (%d)",
				name, i, int(n), i-1, int(strings[i-1]))
		}
	}

	t := Tuning{name: name, strings: make([]Note, len(strings))}
	copy(t.strings, strings)

	return t, nil
}

func mustTuning(name string, strings ...Note) Tuning {
	t, err := NewTuning(name, strings...)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns the tuning's display name.
func (t Tuning) Name() string { return t.name }

// Strings returns the number of strings.
func (t Tuning) Strings() int { return len(t.strings) }

// OpenNote returns the open-string pitch of string i (0 = lowest).
func (t Tuning) OpenNote(i int) Note { return t.strings[i] }

// OpenNotes returns a copy of all open-string pitches, low to high.
func (t Tuning) OpenNotes() []Note {
	notes := make([]Note, len(t.strings))
	copy(notes, t.strings)

	return notes
}

// Lowest returns the lowest open-string pitch.
func (t Tuning) Lowest() Note { return t.strings[0] }

// BassUnison reports whether the bass should double the guitar in
// unison rather than an octave below.
func (t Tuning) BassUnison() bool {
	return t.Lowest() < bassUnisonThreshold
}

// BassOffset returns the bass register offset in semitones: 0 for
// unison tunings, -12 otherwise.
func (t Tuning) BassOffset() Interval {
	if t.BassUnison() {
		return 0
	}

	return -semitonesPerOctave
}
