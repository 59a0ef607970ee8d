package dsp

import (
	"math"

	"github.com/linuxmatters/tuner/internal/config"
)

// expectedAdvance is the expected per-hop phase advance for bin i:
// 2*pi*i*H/N. Precomputed since it depends only on fixed constants.
var expectedAdvance = buildExpectedAdvance(config.UsableBins)

func buildExpectedAdvance(bins int) []float64 {
	e := make([]float64, bins)
	for i := range e {
		e[i] = 2 * math.Pi * float64(i) * float64(config.HopSize) / float64(config.FFTSize)
	}
	return e
}

// Refine computes the phase-vocoder-refined frequency and the magnitude
// derivative for every bin in [1, R), writing into freq (overwriting the
// raw bin-center frequency with the refined one) and derivative.
//
// prevPhase holds the previous hop's raw phase, indexed identically to
// phase; it is the caller's responsibility (the frame driver) to copy
// the current phase into prevPhase after this call returns, ready for the
// next hop.
//
// The qpd fold uses round-half-to-even (banker's rounding): round-half-
// away-from-zero diverges by one bin right at the fold points.
func Refine(phase, prevPhase []float64, freq []float64, mag []float64, derivative []float64) {
	fps := config.BinSpacing()
	r := len(phase)

	for i := 1; i < r; i++ {
		dp := prevPhase[i] - phase[i]
		dp -= expectedAdvance[i]
		dp -= math.Pi * nearestEven(dp/math.Pi)

		df := float64(config.Oversample) * dp / (2 * math.Pi)
		freq[i] = float64(i)*fps + df*fps
	}
	freq[0] = 0

	for i := 1; i < r; i++ {
		derivative[i] = mag[i] - mag[i-1]
	}
	if r > 0 {
		derivative[0] = 0
	}
}

// nearestEven rounds v to the nearest even integer. When v sits exactly
// between two odd/even candidates (v itself an odd integer), the choice
// is made by banker's rounding on v/2 rather than rounding away from zero.
func nearestEven(v float64) float64 {
	return math.RoundToEven(v/2) * 2
}
