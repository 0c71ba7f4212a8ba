package song

import "fmt"

// SectionKind labels a structural section of a song.
type SectionKind int

const (
	Intro SectionKind = iota
	Verse
	Chorus
	Breakdown
	Solo
	Outro
)

// String returns the section name.
func (k SectionKind) String() string {
	switch k {
	case Intro:
		return "intro"
	case Verse:
		return "verse"
	case Chorus:
		return "chorus"
	case Breakdown:
		return "breakdown"
	case Solo:
		return "solo"
	case Outro:
		return "outro"
	default:
		return fmt.Sprintf("section(%d)", int(k))
	}
}

// Intensity grades how hard a section hits, driving drum velocity and
// the section's mix trim.
type Intensity int

const (
	Low Intensity = iota
	Medium
	High
	Extreme
)

// String returns the intensity name.
func (i Intensity) String() string {
	switch i {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Extreme:
		return "extreme"
	default:
		return fmt.Sprintf("intensity(%d)", int(i))
	}
}

// DrumVelocity returns the base drum velocity for the intensity.
func (i Intensity) DrumVelocity() int {
	switch i {
	case Low:
		return 85
	case Medium:
		return 100
	case High:
		return 110
	case Extreme:
		return 120
	default:
		return 100
	}
}

// Trim returns the intensity's section gain trim applied before the
// final mix.
func (i Intensity) Trim() float64 {
	switch i {
	case Low:
		return 0.7
	case Medium:
		return 0.85
	case High:
		return 1.0
	case Extreme:
		return 1.0
	default:
		return 0.85
	}
}

// Intensity returns the section kind's intensity grade.
func (k SectionKind) Intensity() Intensity {
	switch k {
	case Intro, Outro:
		return Low
	case Verse:
		return Medium
	case Chorus, Solo:
		return High
	case Breakdown:
		return Extreme
	default:
		return Medium
	}
}

// Halftime reports whether the section's snare drops to the halftime
// accent.
func (k SectionKind) Halftime() bool {
	return k == Breakdown || k == Outro
}

// PedalProbability returns the section's pedal-return probability: how
// strongly its riff gravitates back to the pedal after melodic steps.
func (k SectionKind) PedalProbability() float64 {
	switch k {
	case Intro:
		return 0.60
	case Verse:
		return 0.50
	case Chorus:
		return 0.30
	case Solo:
		return 0.20
	case Outro:
		return 0.80
	default:
		return 0.50
	}
}

// DefaultOrder returns the standard metal arrangement.
func DefaultOrder() []SectionKind {
	return []SectionKind{
		Intro,
		Verse,
		Chorus,
		Verse,
		Chorus,
		Verse,
		Breakdown,
		Solo,
		Chorus,
		Breakdown,
		Chorus,
		Outro,
	}
}
