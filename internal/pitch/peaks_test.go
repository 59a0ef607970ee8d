package pitch

import (
	"testing"

	"github.com/linuxmatters/tuner/internal/config"
	"github.com/linuxmatters/tuner/internal/temperament"
)

// buildSpectrum synthesises mag/freq/derivative arrays of length r with a
// strict local maximum of height amp at each index in peakIdx, and a low
// flat floor elsewhere.
func buildSpectrum(r int, peakIdx []int, amp float64) (mag, freq, derivative []float64) {
	fps := config.BinSpacing()
	mag = make([]float64, r)
	freq = make([]float64, r)
	derivative = make([]float64, r)

	for i := range mag {
		mag[i] = 0.1
		freq[i] = float64(i) * fps
	}
	for _, idx := range peakIdx {
		mag[idx] = amp
		mag[idx-1] = 0.1
		mag[idx+1] = 0.1
	}
	for i := 1; i < r; i++ {
		derivative[i] = mag[i] - mag[i-1]
	}
	return mag, freq, derivative
}

func testOptions() Options {
	r := temperament.NewRegistry()
	eq := r.Equal()
	return Options{
		ReferenceA:  config.DefaultReferenceA,
		Temperament: eq,
		Equal:       eq,
		Key:         0,
		HPSEnabled:  true,
	}
}

func TestPickPeakOrderingStrictlyIncreasing(t *testing.T) {
	fps := config.BinSpacing()
	idx := []int{int(300 / fps), int(600 / fps), int(1200 / fps)}
	mag, freq, derivative := buildSpectrum(config.UsableBins, idx, 10.0)

	peaks, _ := Pick(mag, freq, derivative, testOptions())
	if len(peaks) < 2 {
		t.Fatalf("expected multiple peaks, got %d", len(peaks))
	}
	for i := 1; i < len(peaks); i++ {
		if peaks[i].FrequencyHz <= peaks[i-1].FrequencyHz {
			t.Fatalf("peaks not frequency-ascending: %v <= %v", peaks[i].FrequencyHz, peaks[i-1].FrequencyHz)
		}
	}
}

func TestPickRespectsMaxPeaksBudget(t *testing.T) {
	fps := config.BinSpacing()
	var idx []int
	for i := 1; i <= 12; i++ {
		idx = append(idx, int(float64(i)*300/fps))
	}
	mag, freq, derivative := buildSpectrum(config.UsableBins, idx, 10.0)

	peaks, _ := Pick(mag, freq, derivative, testOptions())
	if len(peaks) > config.MaxPeaks {
		t.Fatalf("Pick returned %d peaks, want <= %d", len(peaks), config.MaxPeaks)
	}
}

func TestPickRejectsBelowMinAmplitude(t *testing.T) {
	fps := config.BinSpacing()
	idx := []int{int(440 / fps)}
	mag, freq, derivative := buildSpectrum(config.UsableBins, idx, config.MinAmplitude/2)

	peaks, _ := Pick(mag, freq, derivative, testOptions())
	if len(peaks) != 0 {
		t.Fatalf("expected no peaks below MinAmplitude, got %d", len(peaks))
	}
}

func TestDecideEmptyPeaksIsInvalid(t *testing.T) {
	result := Decide(nil, 0, config.DefaultReferenceA, temperament.Temperament{}, temperament.Temperament{}, 0)
	if result.Valid {
		t.Fatal("Decide(nil, ...) should be invalid")
	}
}

func TestDecideA440IsValidAndNamesA4(t *testing.T) {
	r := temperament.NewRegistry()
	eq := r.Equal()

	peaks := []Peak{{FrequencyHz: 440.0, ReferenceHz: 440.0, NoteNumber: config.C5Offset, MagnitudeAt: 5.0}}
	result := Decide(peaks, 5.0, config.DefaultReferenceA, eq, eq, 0)

	if !result.Valid {
		t.Fatal("expected a valid result for an exact A4 peak")
	}
	if result.NoteName != "A" || result.Octave != 4 {
		t.Errorf("got note %s%d, want A4", result.NoteName, result.Octave)
	}
	if NoteNames[result.NoteNumber%12] != result.NoteName {
		t.Errorf("note name round-trip failed: NoteNames[%d] = %q, NoteName = %q",
			result.NoteNumber%12, NoteNames[result.NoteNumber%12], result.NoteName)
	}
	if result.NoteNumber/12 != result.Octave {
		t.Errorf("octave round-trip failed: NoteNumber/12 = %d, Octave = %d", result.NoteNumber/12, result.Octave)
	}
	if result.Cents < -50 || result.Cents > 50 {
		t.Errorf("cents = %v, want within +/-50", result.Cents)
	}
	if result.Confidence != 5.0 {
		t.Errorf("Confidence = %v, want the max magnitude passed in (5.0)", result.Confidence)
	}
}

func TestDecideRejectsPastCentsGate(t *testing.T) {
	r := temperament.NewRegistry()
	eq := r.Equal()
	idx, ok := r.FindByName("Pythagorean")
	if !ok {
		t.Fatal("setup: expected the built-in \"Pythagorean\" temperament")
	}
	pyth, _ := r.Get(idx)

	// A peak about 60 cents sharp of A4 rounds to A#4, about 40 cents flat
	// of the equal-tempered A#4. Pythagorean A# sits about 14 cents above
	// equal-tempered A# (relative to A), so against the tempered A#4
	// reference the peak is about 54 cents flat and must be gated out.
	peaks := []Peak{{FrequencyHz: 440.0 * 1.035, ReferenceHz: 440.0, NoteNumber: config.C5Offset, MagnitudeAt: 5.0}}
	result := Decide(peaks, 5.0, config.DefaultReferenceA, pyth, eq, 0)
	if result.Valid {
		t.Fatalf("expected gate rejection, got valid result with cents=%v", result.Cents)
	}
}
