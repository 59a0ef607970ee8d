package dsp

import (
	"math"
	"testing"

	"github.com/linuxmatters/tuner/internal/config"
)

// TestRefineFoldInvariant checks the phase-vocoder fold invariant: for
// all i, |refined_freq[i] - i*fps| <= Oversample*fps/2, i.e. the
// refinement never moves a bin's frequency estimate outside its fold
// interval, across a spread of synthetic phase inputs.
func TestRefineFoldInvariant(t *testing.T) {
	r := config.UsableBins
	fps := config.BinSpacing()
	maxDelta := float64(config.Oversample) * fps / 2

	phase := make([]float64, r)
	prevPhase := make([]float64, r)
	mag := make([]float64, r)
	freq := make([]float64, r)
	derivative := make([]float64, r)

	seeds := []float64{0, 0.3, 1.2, -2.1, 3.0, -3.1, 6.0}
	for _, seed := range seeds {
		for i := range phase {
			phase[i] = math.Mod(seed*float64(i), 2*math.Pi)
			prevPhase[i] = math.Mod(seed*float64(i)*1.7, 2*math.Pi)
			mag[i] = math.Abs(math.Sin(float64(i)))
		}

		Refine(phase, prevPhase, freq, mag, derivative)

		for i := 1; i < r; i++ {
			delta := freq[i] - float64(i)*fps
			if delta > maxDelta+1e-6 || delta < -maxDelta-1e-6 {
				t.Fatalf("seed %v, bin %d: refined freq %v exceeds fold interval (delta=%v, max=%v)",
					seed, i, freq[i], delta, maxDelta)
			}
		}
	}
}

// TestRefineZeroPhaseDelta verifies that when a bin's raw phase advance
// exactly matches its own expected per-hop advance (dp == expect_i before
// folding, i.e. the signal shows no deviation from that bin's center
// frequency), the refined frequency comes back out as exactly that bin's
// center frequency.
func TestRefineZeroPhaseDelta(t *testing.T) {
	r := config.UsableBins
	phase := make([]float64, r)
	prevPhase := make([]float64, r)
	mag := make([]float64, r)
	freq := make([]float64, r)
	derivative := make([]float64, r)

	for i := range phase {
		phase[i] = 0
		prevPhase[i] = expectedAdvance[i]
	}

	Refine(phase, prevPhase, freq, mag, derivative)

	fps := config.BinSpacing()
	for i := 1; i < r; i++ {
		want := float64(i) * fps
		if diff := freq[i] - want; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("bin %d: freq = %v, want %v (diff %v)", i, freq[i], want, diff)
		}
	}
}

// TestNearestEvenBreaksTiesToEven exercises the banker's-rounding fold
// helper directly: odd integer inputs must round to the adjacent even
// value chosen by round-half-to-even, not round-half-away-from-zero.
func TestNearestEvenBreaksTiesToEven(t *testing.T) {
	testCases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{-1, 0},
		{2, 2},
		{3, 4},
		{-3, -4},
		{5, 4},
		{4, 4},
	}

	for _, tc := range testCases {
		got := nearestEven(tc.in)
		if got != tc.want {
			t.Errorf("nearestEven(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
