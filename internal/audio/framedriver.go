// Package audio implements the frame driver: the ring buffer, hop
// scheduling, and display hold-off state that turns a stream of fixed-size
// sample hops into a sequence of PitchResults, plus the minimal WAV
// decoder that feeds it from a file.
package audio

import (
	"github.com/linuxmatters/tuner/internal/config"
	"github.com/linuxmatters/tuner/internal/dsp"
	"github.com/linuxmatters/tuner/internal/pitch"
	"github.com/linuxmatters/tuner/internal/temperament"
)

// Driver owns the sample ring, the phase-memory vector, the optional
// low-pass filter state, and the running normalisation peak. It is a
// pure function of (new_samples, state): it never blocks and never
// spawns work of its own. The caller's thread discipline (one capture
// thread feeding OnSamples, one UI thread reading Result) is the only
// concurrency contract it relies on.
type Driver struct {
	buffer []float64 // length N, the most recent window of samples
	phase  []float64 // length R, previous frame's phase (phase-memory vector)

	transformer *dsp.Transformer
	lowPass     dsp.LowPass
	useLowPass  bool
	useHPS      bool

	dmax float64 // running peak magnitude; floors the NEXT frame's divisor

	mag        []float64
	curPhase   []float64
	freq       []float64
	derivative []float64
	hpsWork    []float64

	options pitch.Options

	displayLocked bool
	invalidCount  int
	lastValid     pitch.PitchResult
	validFrames   int
	totalFrames   int
}

// NewDriver constructs a frame driver. opt.Temperament/opt.Equal/opt.Key
// select the reference-note computation the peak picker and decision
// step use.
func NewDriver(opt pitch.Options, useLowPass, useHPS bool) *Driver {
	r := config.UsableBins
	return &Driver{
		buffer:      make([]float64, config.FFTSize),
		phase:       make([]float64, r),
		transformer: dsp.NewTransformer(),
		useLowPass:  useLowPass,
		useHPS:      useHPS,
		mag:         make([]float64, r),
		curPhase:    make([]float64, r),
		freq:        make([]float64, r),
		derivative:  make([]float64, r),
		hpsWork:     make([]float64, r),
		options:     opt,
	}
}

// SetDisplayLock mirrors the UI-thread display-hold contract: while
// locked, new results are computed (the pipeline never skips work) but
// discarded, and the previously exposed result remains current.
func (d *Driver) SetDisplayLock(locked bool) {
	d.displayLocked = locked
}

// OnSamples consumes exactly config.HopSize new samples, advances the
// ring buffer, and runs the full transform/refine/pick/decide pipeline for
// this hop. It never blocks and never returns an error: a bad hop yields
// an invalid PitchResult, not a failure. It returns this hop's own
// PitchResult, independent of what Result() exposes for display.
func (d *Driver) OnSamples(newSamples []float64) pitch.PitchResult {
	h := len(newSamples)
	n := len(d.buffer)
	copy(d.buffer, d.buffer[h:])
	for i, s := range newSamples {
		if d.useLowPass {
			s = d.lowPass.Apply(s, config.LowPassGain, config.LowPassPole)
		}
		d.buffer[n-h+i] = s
	}

	normDivisor := dsp.NormDivisor(d.dmax)
	d.dmax = d.transformer.Transform(d.buffer, normDivisor, d.mag, d.curPhase)

	dsp.Refine(d.curPhase, d.phase, d.freq, d.mag, d.derivative)
	copy(d.phase, d.curPhase)

	if d.useHPS {
		dsp.ApplyHPS(d.mag, d.hpsWork)
		dsp.RecomputeDerivative(d.mag, d.derivative)
	}

	d.options.HPSEnabled = d.useHPS
	peaks, maxMagnitude := pitch.Pick(d.mag, d.freq, d.derivative, d.options)
	result := pitch.Decide(peaks, maxMagnitude, d.options.ReferenceA, d.options.Temperament, d.options.Equal, d.options.Key)

	d.totalFrames++
	if d.displayLocked {
		return result
	}

	if result.Valid {
		d.invalidCount = 0
		d.validFrames++
		d.lastValid = result
		return result
	}

	d.invalidCount++
	if d.invalidCount >= config.InvalidFrameLimit {
		d.lastValid = pitch.PitchResult{}
	}
	return result
}

// Result returns the currently exposed PitchResult: the most recent valid
// result, held until InvalidFrameLimit consecutive invalid hops zero it
// out (and the zero value before any hop has been valid). This is the
// display-held value, distinct from the per-hop result OnSamples returns.
func (d *Driver) Result() pitch.PitchResult {
	return d.lastValid
}

// ValidFrames returns the number of hops that have produced a valid
// result so far.
func (d *Driver) ValidFrames() int {
	return d.validFrames
}

// TotalFrames returns the number of hops processed so far, valid or not.
func (d *Driver) TotalFrames() int {
	return d.totalFrames
}

// SetTemperament swaps the active temperament/key used for reference-note
// computation without resetting the ring buffer or phase memory.
func (d *Driver) SetTemperament(t, eq temperament.Temperament, key int) {
	d.options.Temperament = t
	d.options.Equal = eq
	d.options.Key = key
}
