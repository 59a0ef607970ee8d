// Package dsp implements the windowing, FFT, phase-vocoder refinement,
// and optional preprocessors of the analysis pipeline: windowing+FFT,
// phase-vocoder bin refiner, and low-pass/HPS preprocessors.
package dsp

import (
	"math"

	"github.com/argusdusty/gofft"

	"github.com/linuxmatters/tuner/internal/config"
)

// hannWindow is a precomputed Hann window table of length config.FFTSize,
// w[i] = 0.5 - 0.5*cos(2*pi*i/N).
var hannWindow = buildHannWindow(config.FFTSize)

func buildHannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// Frame holds one hop's spectrum: magnitude and refined frequency,
// index-aligned, plus the derivative used by the peak picker. Index 0 of
// every slice corresponds to DC and is always zero/unused by consumers.
type Frame struct {
	Mag        []float64
	Freq       []float64
	Derivative []float64
}

// NewFrame allocates a Frame sized for config.UsableBins.
func NewFrame() *Frame {
	return &Frame{
		Mag:        make([]float64, config.UsableBins),
		Freq:       make([]float64, config.UsableBins),
		Derivative: make([]float64, config.UsableBins),
	}
}

// Transformer holds the reusable complex buffer the FFT runs in place
// over, so a hot real-time loop does not allocate per hop.
type Transformer struct {
	buf []complex128
}

// NewTransformer creates a Transformer sized for config.FFTSize.
func NewTransformer() *Transformer {
	return &Transformer{buf: make([]complex128, config.FFTSize)}
}

// Transform windows, normalises and FFTs buffer (length config.FFTSize),
// writing magnitude into mag and raw phase (atan2(im, re)) into phase
// (both length config.UsableBins). It returns the peak absolute sample
// value observed, which the caller uses as the next frame's
// normalisation divisor (floored at config.NormFloor).
//
// buffer is not modified.
func (t *Transformer) Transform(buffer []float64, normDivisor float64, mag, phase []float64) (peak float64) {
	n := len(buffer)

	for i := 0; i < n; i++ {
		v := buffer[i]
		av := math.Abs(v)
		if av > peak {
			peak = av
		}
		windowed := (v / normDivisor) * hannWindow[i]
		t.buf[i] = complex(windowed, 0)
	}

	gofft.FFT(t.buf)

	// DC removal.
	t.buf[0] = 0

	r := len(mag)
	for i := 1; i < r; i++ {
		re := real(t.buf[i]) / config.FFTScale
		im := imag(t.buf[i]) / config.FFTScale
		mag[i] = math.Hypot(re, im)
		phase[i] = math.Atan2(im, re)
	}
	mag[0] = 0
	phase[0] = 0

	return peak
}

// NormDivisor applies the floor used to keep the next frame's
// normalisation from blowing up on near-silence.
func NormDivisor(dmax float64) float64 {
	if dmax > config.NormFloor {
		return dmax
	}
	return config.NormFloor
}
