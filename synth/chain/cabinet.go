package chain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-metal/synth/filter"
)

const (
	cabinetResonanceQ = 1.2

	// Slight attenuation for headroom before the mix stage.
	cabinetHeadroom = 0.95
)

// CabinetPreset describes a speaker cabinet as a filter cascade:
// a highpass removing subsonics, a lowpass modelling speaker rolloff,
// and a resonant peak at the cabinet's characteristic frequency.
// ResonanceGain is linear (1.0 = no peak).
type CabinetPreset struct {
	Name          string
	HighpassHz    float64
	LowpassHz     float64
	ResonanceHz   float64
	ResonanceGain float64
}

// Metal4x12 is a tight modern 4x12: extended lows cut below 80 Hz,
// rolloff at 5 kHz, moderate midbass bump.
func Metal4x12() CabinetPreset {
	return CabinetPreset{
		Name:          "metal 4x12",
		HighpassHz:    80,
		LowpassHz:     5000,
		ResonanceHz:   400,
		ResonanceGain: 1.3,
	}
}

// Combo2x12 is a tighter, slightly boxier open-back combo.
func Combo2x12() CabinetPreset {
	return CabinetPreset{
		Name:          "combo 2x12",
		HighpassHz:    100,
		LowpassHz:     4500,
		ResonanceHz:   500,
		ResonanceGain: 1.2,
	}
}

// Vintage is darker and warmer with a pronounced low resonance.
func Vintage() CabinetPreset {
	return CabinetPreset{
		Name:          "vintage",
		HighpassHz:    70,
		LowpassHz:     4000,
		ResonanceHz:   350,
		ResonanceGain: 1.5,
	}
}

// CabinetSim colors a signal through the preset's filter cascade.
type CabinetSim struct {
	preset CabinetPreset

	highpass  *filter.Section
	lowpass   *filter.Section
	resonance *filter.Section
}

// NewCabinetSim creates a cabinet simulator for the given preset.
func NewCabinetSim(sampleRate float64, preset CabinetPreset) (*CabinetSim, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("cabinet sample rate must be positive and finite: %f", sampleRate)
	}

	nyquist := sampleRate / 2
	if preset.HighpassHz <= 0 || preset.HighpassHz >= nyquist {
		return nil, fmt.Errorf("cabinet highpass must be in (0, %g): %f", nyquist, preset.HighpassHz)
	}

	if preset.LowpassHz <= preset.HighpassHz || preset.LowpassHz >= nyquist {
		return nil, fmt.Errorf("cabinet lowpass must be in (%g, %g): %f",
			preset.HighpassHz, nyquist, preset.LowpassHz)
	}

	if preset.ResonanceHz <= 0 || preset.ResonanceHz >= nyquist {
		return nil, fmt.Errorf("cabinet resonance must be in (0, %g): %f", nyquist, preset.ResonanceHz)
	}

	if preset.ResonanceGain <= 0 || math.IsNaN(preset.ResonanceGain) || math.IsInf(preset.ResonanceGain, 0) {
		return nil, fmt.Errorf("cabinet resonance gain must be positive and finite: %f", preset.ResonanceGain)
	}

	resonanceDB := 20 * math.Log10(preset.ResonanceGain)

	return &CabinetSim{
		preset:    preset,
		highpass:  filter.NewSection(filter.Highpass(preset.HighpassHz, 0, sampleRate)),
		lowpass:   filter.NewSection(filter.Lowpass(preset.LowpassHz, 0, sampleRate)),
		resonance: filter.NewSection(filter.Peak(preset.ResonanceHz, resonanceDB, cabinetResonanceQ, sampleRate)),
	}, nil
}

// Preset returns the cabinet's preset.
func (c *CabinetSim) Preset() CabinetPreset { return c.preset }

// ProcessSample colors one sample.
func (c *CabinetSim) ProcessSample(input float64) float64 {
	y := c.highpass.ProcessSample(input)
	y = c.resonance.ProcessSample(y)
	y = c.lowpass.ProcessSample(y)

	return y * cabinetHeadroom
}

// ProcessInPlace colors buf in place.
func (c *CabinetSim) ProcessInPlace(buf []float64) {
	c.highpass.ProcessInPlace(buf)
	c.resonance.ProcessInPlace(buf)
	c.lowpass.ProcessInPlace(buf)

	for i := range buf {
		buf[i] *= cabinetHeadroom
	}
}

// Reset clears all filter states.
func (c *CabinetSim) Reset() {
	c.highpass.Reset()
	c.lowpass.Reset()
	c.resonance.Reset()
}
