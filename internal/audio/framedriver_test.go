package audio

import (
	"math"
	"testing"

	"github.com/linuxmatters/tuner/internal/config"
	"github.com/linuxmatters/tuner/internal/pitch"
	"github.com/linuxmatters/tuner/internal/temperament"
)

func newTestDriver() *Driver {
	r := temperament.NewRegistry()
	eq := r.Equal()
	opt := pitch.Options{
		ReferenceA:  config.DefaultReferenceA,
		Temperament: eq,
		Equal:       eq,
		Key:         0,
	}
	return NewDriver(opt, false, false)
}

func feedSine(d *Driver, freqHz float64, seconds float64) {
	total := int(float64(config.SampleRate) * seconds)
	hop := make([]float64, config.HopSize)
	sample := 0
	for sample < total {
		for i := range hop {
			t := float64(sample+i) / float64(config.SampleRate)
			hop[i] = 0.8 * math.Sin(2*math.Pi*freqHz*t)
		}
		d.OnSamples(hop)
		sample += config.HopSize
	}
}

func TestDriverLocksOntoA440(t *testing.T) {
	d := newTestDriver()
	feedSine(d, 440.0, 2.0)

	result := d.Result()
	if !result.Valid {
		t.Fatal("expected a valid result after 2s of a 440Hz tone")
	}
	if result.NoteName != "A" || result.Octave != 4 {
		t.Errorf("got %s%d, want A4", result.NoteName, result.Octave)
	}
	if math.Abs(result.Cents) > 5 {
		t.Errorf("cents = %v, want within +/-5 for a pure tone", result.Cents)
	}
	if d.ValidFrames() == 0 {
		t.Error("ValidFrames() = 0 after a clean tone")
	}
}

func TestDriverZeroesResultAfterSustainedSilence(t *testing.T) {
	d := newTestDriver()
	feedSine(d, 440.0, 0.5)
	if !d.Result().Valid {
		t.Fatal("setup: expected a valid lock-on before the silence segment")
	}

	hop := make([]float64, config.HopSize) // all zeros
	for i := 0; i < config.InvalidFrameLimit+2; i++ {
		d.OnSamples(hop)
	}

	if d.Result().Valid {
		t.Error("expected the exposed result to zero out after sustained silence")
	}
}

func TestDriverDisplayLockFreezesResult(t *testing.T) {
	d := newTestDriver()
	feedSine(d, 440.0, 0.5)
	frozen := d.Result()
	if !frozen.Valid {
		t.Fatal("setup: expected a valid lock-on before engaging the display lock")
	}

	d.SetDisplayLock(true)
	feedSine(d, 880.0, 0.5)
	locked := d.Result()

	if locked.NoteName != frozen.NoteName || locked.Octave != frozen.Octave {
		t.Errorf("display lock should freeze the exposed result, got %s%d want %s%d",
			locked.NoteName, locked.Octave, frozen.NoteName, frozen.Octave)
	}
}
