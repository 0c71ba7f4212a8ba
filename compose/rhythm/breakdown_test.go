package rhythm

import (
	"math/rand"
	"testing"
)

func TestBreakdownRestRunsCoverBursts(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))

		g, err := Breakdown(32, defaultBurstDensity, rng)
		if err != nil {
			t.Fatalf("Breakdown error: %v", err)
		}

		if g.Pulses() == 0 {
			t.Fatalf("seed %d: breakdown has no hits", seed)
		}

		// Every rest run must be at least as long as the burst run
		// that preceded it.
		burst, rest := 0, 0
		inBurst := false

		for _, hit := range g {
			switch {
			case hit && inBurst:
				burst++
			case hit && !inBurst:
				if burst > 0 && rest < burst {
					t.Fatalf("seed %d: rest run %d shorter than preceding burst %d in %v",
						seed, rest, burst, g.HitSteps())
				}

				burst, rest, inBurst = 1, 0, true
			case !hit && inBurst:
				rest, inBurst = 1, false
			default:
				rest++
			}
		}
	}
}

func TestBreakdownDeterministicForSeed(t *testing.T) {
	a, err := Breakdown(16, 0.6, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Breakdown error: %v", err)
	}

	b, err := Breakdown(16, 0.6, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Breakdown error: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different grids: %v vs %v", a.HitSteps(), b.HitSteps())
		}
	}
}

func TestBreakdownValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := Breakdown(0, 0.5, rng); err == nil {
		t.Fatal("expected error for zero steps")
	}

	if _, err := Breakdown(16, 0, rng); err == nil {
		t.Fatal("expected error for zero density")
	}

	if _, err := Breakdown(16, 1.5, rng); err == nil {
		t.Fatal("expected error for density above 1")
	}

	if _, err := Breakdown(16, 0.5, nil); err == nil {
		t.Fatal("expected error for nil random source")
	}
}

func TestSnareGrids(t *testing.T) {
	back, err := BackbeatSnare(16)
	if err != nil {
		t.Fatalf("BackbeatSnare error: %v", err)
	}

	got := back.HitSteps()
	if len(got) != 2 || got[0] != 4 || got[1] != 12 {
		t.Fatalf("backbeat hits = %v, want [4 12]", got)
	}

	half, err := HalftimeSnare(16)
	if err != nil {
		t.Fatalf("HalftimeSnare error: %v", err)
	}

	got = half.HitSteps()
	if len(got) != 1 || got[0] != 8 {
		t.Fatalf("halftime hits = %v, want [8]", got)
	}
}

func TestSnareGridValidation(t *testing.T) {
	if _, err := BackbeatSnare(10); err == nil {
		t.Fatal("expected error for steps not divisible by 4")
	}

	if _, err := HalftimeSnare(3); err == nil {
		t.Fatal("expected error for odd steps")
	}
}
