package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/cwbudde/algo-metal/compose/drums"
	"github.com/cwbudde/algo-metal/compose/song"
	"github.com/cwbudde/algo-metal/compose/theory"
)

const (
	wavBitDepth = 16

	ticksPerQuarter = 960
	ticksPerStep    = ticksPerQuarter / 4

	// Humanizer tick offsets use a 96-PPQ grid.
	humanizerTickScale = ticksPerQuarter / 96

	guitarChannel = 0
	drumChannel   = 9

	guitarOnVelocity   = 100
	guitarMuteVelocity = 80

	drumHitTicks = ticksPerStep / 2
)

func writeWAV(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, 1, 1)
	defer enc.Close()

	data := make([]float32, len(samples))
	for i, s := range samples {
		data[i] = float32(s)
	}

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	return enc.Write(buf)
}

type sectionMetadata struct {
	Kind        string  `json:"kind"`
	Measures    int     `json:"measures"`
	NoteCount   int     `json:"note_count"`
	Playability float64 `json:"playability"`
}

type songMetadata struct {
	Subgenre        string            `json:"subgenre"`
	Key             string            `json:"key"`
	Scale           string            `json:"scale"`
	Tuning          string            `json:"tuning"`
	TempoBPM        int               `json:"tempo_bpm"`
	Seed            int64             `json:"seed"`
	SampleRate      int               `json:"sample_rate"`
	DurationSeconds float64           `json:"duration_seconds"`
	Sections        []sectionMetadata `json:"sections"`
}

func writeMetadata(path string, s *song.Song, duration float64) error {
	meta := songMetadata{
		Subgenre:        s.Subgenre.String(),
		Key:             noteName(s.Key.Root),
		Scale:           s.Key.Scale.Name(),
		Tuning:          s.Tuning.Name(),
		TempoBPM:        s.TempoBPM,
		Seed:            s.Seed,
		SampleRate:      s.SampleRate,
		DurationSeconds: duration,
		Sections:        make([]sectionMetadata, 0, len(s.Sections)),
	}

	for _, sec := range s.Sections {
		meta.Sections = append(meta.Sections, sectionMetadata{
			Kind:        sec.Kind.String(),
			Measures:    sec.Measures,
			NoteCount:   sec.Riff.NoteCount(),
			Playability: sec.Playability,
		})
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func noteName(n theory.Note) string {
	return fmt.Sprintf("%s%d", pitchNames[int(n.Class())], int(n)/12-1)
}

// timedEvent is a MIDI message at an absolute tick. Priority orders
// note-offs before note-ons at the same tick.
type timedEvent struct {
	tick     int
	priority int
	msg      midi.Message
}

// writeMIDI exports the symbolic composition as a two-track Standard
// MIDI File: guitar on channel 0, drums on channel 9 with General MIDI
// percussion keys.
func writeMIDI(path string, s *song.Song) error {
	out := smf.New()
	out.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	guitar := buildGuitarEvents(s)
	drumTrack := buildDrumEvents(s)

	if err := out.Add(eventsToTrack(guitar, float64(s.TempoBPM))); err != nil {
		return err
	}

	if err := out.Add(eventsToTrack(drumTrack, 0)); err != nil {
		return err
	}

	return out.WriteFile(path)
}

func buildGuitarEvents(s *song.Song) []timedEvent {
	var events []timedEvent

	sectionStart := 0

	for _, sec := range s.Sections {
		step := 0

		for _, ev := range sec.Riff.Events() {
			start := sectionStart + step*ticksPerStep
			step += ev.Steps

			if ev.Rest() {
				continue
			}

			velocity := uint8(guitarOnVelocity)
			if ev.PalmMuted {
				velocity = guitarMuteVelocity
			}

			key := uint8(*ev.Pitch)
			events = append(events,
				timedEvent{start, 1, midi.NoteOn(guitarChannel, key, velocity)},
				timedEvent{start + ev.Steps*ticksPerStep, 0, midi.NoteOff(guitarChannel, key)},
			)
		}

		sectionStart += sec.Measures * song.StepsPerMeasure * ticksPerStep
	}

	return events
}

func buildDrumEvents(s *song.Song) []timedEvent {
	var events []timedEvent

	sectionStart := 0

	for _, sec := range s.Sections {
		for _, hit := range sec.Drums {
			tick := sectionStart + hit.Step*ticksPerStep + hit.TickOffset*humanizerTickScale
			if tick < sectionStart {
				tick = sectionStart
			}

			key := drumKey(hit.Instrument)
			events = append(events,
				timedEvent{tick, 1, midi.NoteOn(drumChannel, key, uint8(hit.Velocity))},
				timedEvent{tick + drumHitTicks, 0, midi.NoteOff(drumChannel, key)},
			)
		}

		sectionStart += sec.Measures * song.StepsPerMeasure * ticksPerStep
	}

	return events
}

// drumKey maps drum instruments to General MIDI percussion keys.
func drumKey(inst drums.Instrument) uint8 {
	switch inst {
	case drums.Kick:
		return 36
	case drums.Snare:
		return 38
	case drums.Rimshot:
		return 37
	case drums.HiHatClosed:
		return 42
	case drums.Crash:
		return 49
	default:
		return 38
	}
}

// eventsToTrack sorts events, converts absolute ticks to deltas, and
// closes the track. A positive tempo prepends a tempo meta event.
func eventsToTrack(events []timedEvent, tempoBPM float64) smf.Track {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}

		return events[i].priority < events[j].priority
	})

	var tr smf.Track

	if tempoBPM > 0 {
		tr.Add(0, smf.MetaTempo(tempoBPM))
	}

	prev := 0
	for _, ev := range events {
		tr.Add(uint32(ev.tick-prev), ev.msg)
		prev = ev.tick
	}

	tr.Close(0)

	return tr
}
