package dsp

// LowPass is a one-pole, ~3 dB/oct pre-filter applied to raw samples
// before they enter the ring buffer. State persists across hops.
type LowPass struct {
	xPrev, yPrev float64
}

// Apply filters a single sample in place, updating the filter state.
// y[n] = (x[n-1] + x[n]) + K*y[n-1], where x[n] = sample/G.
func (lp *LowPass) Apply(sample, gain, pole float64) float64 {
	x := sample / gain
	y := (lp.xPrev + x) + pole*lp.yPrev
	lp.xPrev = x
	lp.yPrev = y
	return y
}

// hpsDegrees are the downsample factors the harmonic product spectrum
// sums bins over before multiplying them back into the spectrum.
var hpsDegrees = [...]int{2, 3, 4, 5}

// ApplyHPS multiplies mag (bin 0 untouched) by four downsampled copies of
// the ORIGINAL mag, one per degree in {2,3,4,5}: downsampled[j] sums d
// consecutive original bins starting at j*d, and mag[j] *= downsampled[j]
// for every j the downsampled array reaches (j < len(mag)/d). Bins beyond
// that reach for a given degree are left untouched by it. derivative is
// recomputed afterward since the multiplication reshapes the spectrum's
// local maxima.
//
// work must be a scratch buffer at least len(mag) long; it is provided by
// the caller to avoid allocating on the hot path.
func ApplyHPS(mag []float64, work []float64) {
	n := len(mag)

	original := work[:n]
	copy(original, mag)

	for _, d := range hpsDegrees {
		limit := n / d
		for j := 1; j < limit; j++ {
			var sum float64
			start := j * d
			end := start + d
			if end > n {
				end = n
			}
			for k := start; k < end; k++ {
				sum += original[k]
			}
			mag[j] *= sum
		}
	}
}

// RecomputeDerivative recomputes the first-difference derivative array
// from mag, as required after ApplyHPS reshapes the spectrum.
func RecomputeDerivative(mag, derivative []float64) {
	n := len(mag)
	for i := 1; i < n; i++ {
		derivative[i] = mag[i] - mag[i-1]
	}
	if n > 0 {
		derivative[0] = 0
	}
}
