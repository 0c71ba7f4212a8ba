package chain

import (
	"math"
	"testing"
)

func TestCabinetPresets(t *testing.T) {
	tests := []struct {
		preset CabinetPreset
		name   string
	}{
		{Metal4x12(), "metal 4x12"},
		{Combo2x12(), "combo 2x12"},
		{Vintage(), "vintage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.preset.Name != tt.name {
				t.Errorf("preset name = %q, want %q", tt.preset.Name, tt.name)
			}

			cab, err := NewCabinetSim(44100, tt.preset)
			if err != nil {
				t.Fatalf("NewCabinetSim: %v", err)
			}

			if cab.Preset().Name != tt.name {
				t.Errorf("Preset().Name = %q, want %q", cab.Preset().Name, tt.name)
			}
		})
	}
}

func TestCabinetRejectsDC(t *testing.T) {
	cab, err := NewCabinetSim(44100, Metal4x12())
	if err != nil {
		t.Fatalf("NewCabinetSim: %v", err)
	}

	var out float64
	for i := 0; i < 2*44100; i++ {
		out = cab.ProcessSample(1)
	}

	if math.Abs(out) > 0.01 {
		t.Fatalf("DC leaked through highpass: %f", out)
	}
}

func TestCabinetResonanceBoost(t *testing.T) {
	steadyRMS := func(freq float64) float64 {
		cab, err := NewCabinetSim(44100, Metal4x12())
		if err != nil {
			t.Fatalf("NewCabinetSim: %v", err)
		}

		buf := sineBlock(freq, 44100, 0.5, 44100)
		cab.ProcessInPlace(buf)

		var sum float64

		tail := buf[len(buf)/2:]
		for _, s := range tail {
			sum += s * s
		}

		return math.Sqrt(sum / float64(len(tail)))
	}

	atResonance := steadyRMS(400)
	aboveResonance := steadyRMS(2000)

	if atResonance <= aboveResonance {
		t.Fatalf("resonance peak missing: 400 Hz RMS %f <= 2 kHz RMS %f",
			atResonance, aboveResonance)
	}
}

func TestCabinetProcessInPlaceMatchesSample(t *testing.T) {
	a, err := NewCabinetSim(44100, Vintage())
	if err != nil {
		t.Fatalf("NewCabinetSim: %v", err)
	}

	b, err := NewCabinetSim(44100, Vintage())
	if err != nil {
		t.Fatalf("NewCabinetSim: %v", err)
	}

	in := sineBlock(330, 44100, 0.7, 512)
	block := make([]float64, len(in))
	copy(block, in)
	a.ProcessInPlace(block)

	for i, x := range in {
		want := b.ProcessSample(x)
		if math.Abs(block[i]-want) > 1e-12 {
			t.Fatalf("sample %d: block %g, sample-wise %g", i, block[i], want)
		}
	}
}

func TestCabinetValidation(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		preset CabinetPreset
	}{
		{"zero sample rate", 0, Metal4x12()},
		{"zero highpass", 44100, CabinetPreset{HighpassHz: 0, LowpassHz: 5000, ResonanceHz: 400, ResonanceGain: 1.3}},
		{"lowpass below highpass", 44100, CabinetPreset{HighpassHz: 80, LowpassHz: 50, ResonanceHz: 400, ResonanceGain: 1.3}},
		{"lowpass above Nyquist", 44100, CabinetPreset{HighpassHz: 80, LowpassHz: 30000, ResonanceHz: 400, ResonanceGain: 1.3}},
		{"zero resonance gain", 44100, CabinetPreset{HighpassHz: 80, LowpassHz: 5000, ResonanceHz: 400, ResonanceGain: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCabinetSim(tt.rate, tt.preset); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestCabinetReset(t *testing.T) {
	cab, err := NewCabinetSim(44100, Metal4x12())
	if err != nil {
		t.Fatalf("NewCabinetSim: %v", err)
	}

	for i := 0; i < 100; i++ {
		cab.ProcessSample(0.9)
	}

	cab.Reset()

	if out := cab.ProcessSample(0); out != 0 {
		t.Fatalf("output after reset = %f, want 0", out)
	}
}
