package rhythm

import "testing"

func TestEuclideanKnownPatterns(t *testing.T) {
	tests := []struct {
		name   string
		steps  int
		pulses int
		want   []int
	}{
		{"five over sixteen", 16, 5, []int{0, 4, 7, 10, 13}},
		{"four on the floor", 16, 4, []int{0, 4, 8, 12}},
		{"tresillo", 8, 3, []int{0, 3, 6}},
		{"all rests", 8, 0, []int{}},
		{"all hits", 4, 4, []int{0, 1, 2, 3}},
		{"single pulse", 7, 1, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Euclidean(tt.steps, tt.pulses)
			if err != nil {
				t.Fatalf("Euclidean(%d, %d) error: %v", tt.steps, tt.pulses, err)
			}

			got := g.HitSteps()
			if len(got) != len(tt.want) {
				t.Fatalf("hit steps = %v, want %v", got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("hit steps = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestEuclideanPulseCountAndSpacing(t *testing.T) {
	for steps := 1; steps <= 24; steps++ {
		for pulses := 0; pulses <= steps; pulses++ {
			g, err := Euclidean(steps, pulses)
			if err != nil {
				t.Fatalf("Euclidean(%d, %d) error: %v", steps, pulses, err)
			}

			if got := g.Pulses(); got != pulses {
				t.Errorf("Euclidean(%d, %d) has %d pulses", steps, pulses, got)
			}

			if pulses < 2 {
				continue
			}

			// Maximally even spacing: no circular inter-hit gap may
			// differ from another by more than one step.
			hits := g.HitSteps()
			minGap, maxGap := steps, 0

			for i := range hits {
				next := hits[(i+1)%len(hits)]
				gap := next - hits[i]
				if gap <= 0 {
					gap += steps
				}

				if gap < minGap {
					minGap = gap
				}

				if gap > maxGap {
					maxGap = gap
				}
			}

			if maxGap-minGap > 1 {
				t.Errorf("Euclidean(%d, %d) gaps spread %d..%d", steps, pulses, minGap, maxGap)
			}
		}
	}
}

func TestEuclideanValidation(t *testing.T) {
	tests := []struct {
		name   string
		steps  int
		pulses int
	}{
		{"zero steps", 0, 0},
		{"negative steps", -4, 0},
		{"negative pulses", 8, -1},
		{"pulses above steps", 8, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Euclidean(tt.steps, tt.pulses); err == nil {
				t.Fatalf("Euclidean(%d, %d) expected error", tt.steps, tt.pulses)
			}
		})
	}
}

func TestRotateRoundTrip(t *testing.T) {
	g, err := Euclidean(16, 5)
	if err != nil {
		t.Fatalf("Euclidean error: %v", err)
	}

	for _, k := range []int{0, 1, 5, 15, 16, 17, -1, -16, -33} {
		back := g.Rotate(k).Rotate(-k)

		for i := range g {
			if back[i] != g[i] {
				t.Fatalf("Rotate(%d) round trip mismatch at slot %d", k, i)
			}
		}
	}
}

func TestRotateShiftsLeft(t *testing.T) {
	g := Grid{true, false, false, true}
	got := g.Rotate(1)
	want := Grid{false, false, true, true}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rotate(1) = %v, want %v", got, want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := Grid{true, false, true}
	c := g.Clone()
	c[0] = false

	if !g[0] {
		t.Fatal("mutating clone changed the original")
	}
}
