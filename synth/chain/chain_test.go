package chain

import (
	"math"
	"testing"
)

func TestMetalChainProcess(t *testing.T) {
	c, err := NewMetalChain(44100)
	if err != nil {
		t.Fatalf("NewMetalChain: %v", err)
	}

	in := sineBlock(110, 44100, 0.8, 8192)

	out, err := c.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("output length = %d, want %d", len(out), len(in))
	}

	for i, s := range out {
		if math.Abs(s) > 1 || !isFinite(s) {
			t.Fatalf("sample %d out of range: %f", i, s)
		}
	}
}

func TestHighGainChain(t *testing.T) {
	c, err := NewHighGainChain(44100)
	if err != nil {
		t.Fatalf("NewHighGainChain: %v", err)
	}

	if c.Distortion().Drive() != highGainDrive {
		t.Errorf("Drive() = %f, want %f", c.Distortion().Drive(), highGainDrive)
	}

	out, err := c.Process(sineBlock(220, 44100, 0.8, 4096))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	for i, s := range out {
		if math.Abs(s) > 1 {
			t.Fatalf("sample %d out of range: %f", i, s)
		}
	}
}

func TestChainWithConvolutionCabinet(t *testing.T) {
	ir, err := SyntheticIR(DefaultIRLength)
	if err != nil {
		t.Fatalf("SyntheticIR: %v", err)
	}

	c, err := NewMetalChain(44100, WithConvolutionCabinet(ir))
	if err != nil {
		t.Fatalf("NewMetalChain: %v", err)
	}

	in := sineBlock(110, 44100, 0.8, 8192)

	out, err := c.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("output length = %d, want %d", len(out), len(in))
	}

	peak := 0.0
	for _, s := range out {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	if peak > 1+1e-9 {
		t.Fatalf("peak = %f, want <= 1", peak)
	}
}

func TestChainGatesSilence(t *testing.T) {
	c, err := NewMetalChain(44100)
	if err != nil {
		t.Fatalf("NewMetalChain: %v", err)
	}

	in := make([]float64, 4096)
	for i := range in {
		in[i] = 0.005 * math.Sin(2*math.Pi*110*float64(i)/44100)
	}

	out, err := c.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	for i, s := range out {
		if s != 0 {
			t.Fatalf("sample %d: noise floor leaked through the gate: %f", i, s)
		}
	}
}

func TestChainInputNotModified(t *testing.T) {
	c, err := NewMetalChain(44100)
	if err != nil {
		t.Fatalf("NewMetalChain: %v", err)
	}

	in := sineBlock(110, 44100, 0.8, 1024)
	ref := make([]float64, len(in))
	copy(ref, in)

	if _, err := c.Process(in); err != nil {
		t.Fatalf("Process: %v", err)
	}

	for i := range in {
		if in[i] != ref[i] {
			t.Fatalf("Process modified its input at sample %d", i)
		}
	}
}

func TestChainOptionValidation(t *testing.T) {
	if _, err := NewMetalChain(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewMetalChain(44100, WithChainGate(nil)); err == nil {
		t.Fatal("expected error for nil gate")
	}

	if _, err := NewMetalChain(44100, WithChainDistortion(nil)); err == nil {
		t.Fatal("expected error for nil distortion")
	}

	if _, err := NewMetalChain(44100, WithConvolutionCabinet(nil)); err == nil {
		t.Fatal("expected error for empty impulse response")
	}
}

func TestChainEmptyBlock(t *testing.T) {
	c, err := NewMetalChain(44100)
	if err != nil {
		t.Fatalf("NewMetalChain: %v", err)
	}

	out, err := c.Process(nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if out != nil {
		t.Fatalf("expected nil output for empty block, got %d samples", len(out))
	}
}
