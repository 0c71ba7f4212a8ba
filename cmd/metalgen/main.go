// Command metalgen composes and renders a procedural metal song.
//
// Usage:
//
//	metalgen --subgenre death --seed 42 --output song.wav
//	metalgen --config song.toml --midi song.mid --metadata song.json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-metal/compose/song"
	"github.com/cwbudde/algo-metal/render"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "metalgen: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath   string
	outputPath   string
	metadataPath string
	midiPath     string

	subgenre        string
	seed            int64
	tempoMin        int
	tempoMax        int
	sampleRate      int
	sections        int
	sectionMeasures int
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "metalgen",
		Short: "Procedural metal song generator",
		Long: `metalgen composes a metal song (riffs, structure, drums) for a chosen
subgenre and renders it through a synthesized guitar, bass and drum
chain to a WAV file.

Subgenres: heavy, thrash, death, doom, progressive.

A TOML config file can set any generation parameter; command-line
flags override it.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "song.wav", "output WAV path")
	cmd.Flags().StringVar(&f.metadataPath, "metadata", "", "write song metadata JSON to this path")
	cmd.Flags().StringVar(&f.midiPath, "midi", "", "write a Standard MIDI File of the composition to this path")
	cmd.Flags().StringVarP(&f.subgenre, "subgenre", "g", "", "subgenre (default heavy)")
	cmd.Flags().Int64VarP(&f.seed, "seed", "s", 0, "random seed (0 = derive from time)")
	cmd.Flags().IntVar(&f.tempoMin, "tempo-min", 0, "minimum tempo in BPM (0 = subgenre default)")
	cmd.Flags().IntVar(&f.tempoMax, "tempo-max", 0, "maximum tempo in BPM (0 = subgenre default)")
	cmd.Flags().IntVar(&f.sampleRate, "sample-rate", 0, "output sample rate in Hz (0 = 44100)")
	cmd.Flags().IntVar(&f.sections, "sections", 0, "number of sections (0 = full arrangement)")
	cmd.Flags().IntVar(&f.sectionMeasures, "section-measures", 0, "measures per section (0 = 4)")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	cfg, err := buildConfig(cmd, f)
	if err != nil {
		return err
	}

	s, err := song.Generate(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Composed %s in %s %s, %d BPM, %d sections\n",
		s.Subgenre, noteName(s.Key.Root), s.Key.Scale.Name(), s.TempoBPM, len(s.Sections))
	fmt.Printf("Tuning: %s, seed: %d\n", s.Tuning.Name(), s.Seed)

	samples, err := render.RenderSong(s)
	if err != nil {
		return err
	}

	if err := writeWAV(f.outputPath, samples, s.SampleRate); err != nil {
		return err
	}

	duration := float64(len(samples)) / float64(s.SampleRate)
	fmt.Printf("Wrote %s (%.1f s, %d samples at %d Hz)\n",
		f.outputPath, duration, len(samples), s.SampleRate)

	if f.metadataPath != "" {
		if err := writeMetadata(f.metadataPath, s, duration); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", f.metadataPath)
	}

	if f.midiPath != "" {
		if err := writeMIDI(f.midiPath, s); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", f.midiPath)
	}

	return nil
}
