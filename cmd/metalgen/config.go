package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-metal/compose/song"
)

// fileConfig mirrors the generation parameters in TOML form. Zero
// values defer to subgenre or package defaults.
type fileConfig struct {
	Subgenre        string `toml:"subgenre"`
	Seed            int64  `toml:"seed"`
	TempoMin        int    `toml:"tempo_min"`
	TempoMax        int    `toml:"tempo_max"`
	SampleRate      int    `toml:"sample_rate"`
	Sections        int    `toml:"sections"`
	SectionMeasures int    `toml:"section_measures"`
}

// buildConfig merges the TOML config (if any) with command-line flags;
// explicitly set flags win.
func buildConfig(cmd *cobra.Command, f flags) (song.Config, error) {
	var fc fileConfig

	if f.configPath != "" {
		if _, err := toml.DecodeFile(f.configPath, &fc); err != nil {
			return song.Config{}, fmt.Errorf("loading config %s: %w", f.configPath, err)
		}
	}

	if cmd.Flags().Changed("subgenre") {
		fc.Subgenre = f.subgenre
	}

	if cmd.Flags().Changed("seed") {
		fc.Seed = f.seed
	}

	if cmd.Flags().Changed("tempo-min") {
		fc.TempoMin = f.tempoMin
	}

	if cmd.Flags().Changed("tempo-max") {
		fc.TempoMax = f.tempoMax
	}

	if cmd.Flags().Changed("sample-rate") {
		fc.SampleRate = f.sampleRate
	}

	if cmd.Flags().Changed("sections") {
		fc.Sections = f.sections
	}

	if cmd.Flags().Changed("section-measures") {
		fc.SectionMeasures = f.sectionMeasures
	}

	subgenre := song.Heavy

	if fc.Subgenre != "" {
		var err error

		subgenre, err = song.ParseSubgenre(fc.Subgenre)
		if err != nil {
			return song.Config{}, err
		}
	}

	seed := fc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return song.Config{
		Subgenre:        subgenre,
		Seed:            seed,
		TempoMinBPM:     fc.TempoMin,
		TempoMaxBPM:     fc.TempoMax,
		SampleRate:      fc.SampleRate,
		SectionCount:    fc.Sections,
		SectionMeasures: fc.SectionMeasures,
	}, nil
}
