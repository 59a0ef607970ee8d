// Package config holds the fixed numerical constants of the analysis
// pipeline. They are compile-time parameters, not runtime configuration:
// changing FFTSize, for instance, is a rebuild, not a flag.
package config

// Audio pipeline constants.
const (
	// SampleRate is the sample rate, in Hz, the analysis pipeline expects.
	// Callers supplying audio at a different rate must resample first.
	SampleRate = 11025

	// FFTSize is the analysis window length N. Must be a power of two.
	FFTSize = 16384

	// Oversample is N / HopSize, the phase-vocoder oversampling factor.
	Oversample = 16

	// HopSize is the number of new samples consumed per analysis frame.
	HopSize = FFTSize / Oversample

	// UsableBins is the number of spectrum bins retained after the
	// transform (R = N*7/16). Bins above this are discarded.
	UsableBins = FFTSize * 7 / 16

	// C5Offset places A4 at note_number 57 under the C0=0 convention.
	C5Offset = 57

	// MaxPeaks bounds the peak list returned by the peak picker.
	MaxPeaks = 8

	// MinAmplitude is the minimum magnitude a bin must exceed to ever
	// become a peak.
	MinAmplitude = 0.5

	// NormFloor is the floor applied to the running peak-magnitude
	// tracker used to normalise the next frame.
	NormFloor = 4096

	// FFTScale is the fixed post-transform divisor.
	FFTScale = 2048

	// InvalidFrameLimit is the number of consecutive invalid frames the
	// frame driver tolerates before zeroing its exposed result.
	InvalidFrameLimit = 16

	// MaxClusters bounds the offline cluster aggregator's arena.
	MaxClusters = 64

	// ClusterToleranceHz is the frequency window within which a peak is
	// folded into an existing cluster instead of opening a new one.
	ClusterToleranceHz = 1.5

	// HarmonicFilterRatio is the relative tolerance (5%) used to drop
	// clusters that sit near 2x or 3x an already-kept cluster.
	HarmonicFilterRatio = 0.05

	// DefaultReferenceA is the default reference pitch in Hz.
	DefaultReferenceA = 440.0
)

// LowPassGain and LowPassPole parameterise the optional one-pole,
// 3 dB/oct pre-filter.
const (
	LowPassGain = 30.2333
	LowPassPole = 0.9338
)

// BinSpacing returns the nominal Hz per FFT bin.
func BinSpacing() float64 {
	return float64(SampleRate) / float64(FFTSize)
}
