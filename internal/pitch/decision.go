package pitch

import (
	"math"

	"github.com/linuxmatters/tuner/internal/config"
	"github.com/linuxmatters/tuner/internal/temperament"
)

// NoteNames maps a pitch class (0=C .. 11=B) to its conventional name.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchResult is the decision record Decide produces for one hop: either
// a validated note/cents verdict, or valid=false with all other fields at
// their zero value.
type PitchResult struct {
	Valid       bool
	FrequencyHz float64
	ReferenceHz float64
	Cents       float64
	NoteNumber  int
	Octave      int
	NoteName    string
	Confidence  float64
	BandLowHz   float64
	BandHighHz  float64
	Peaks       []Peak
}

// Decide chooses the fundamental among peaks and computes the final
// note/cents verdict: the first peak supplies the candidate note, but the
// actual displayed frequency snaps to whichever peak in the list sits
// closest to that note's reference frequency.
// maxMagnitude is the running peak magnitude Pick tracked across the
// whole hop; it becomes the result's Confidence.
func Decide(peaks []Peak, maxMagnitude, referenceA float64, temper, eq temperament.Temperament, key int) PitchResult {
	if len(peaks) == 0 {
		return PitchResult{Valid: false}
	}

	f := peaks[0].FrequencyHz
	cf := -12 * math.Log2(referenceA/f)
	if math.IsNaN(cf) || math.IsInf(cf, 0) {
		return PitchResult{Valid: false}
	}

	rounded := math.Round(cf)
	note := int(rounded) + config.C5Offset
	if note < 0 {
		return PitchResult{Valid: false}
	}

	refHz := temperament.ReferenceHz(temper, eq, referenceA, note, key, rounded)
	bandLow := temperament.ReferenceHz(temper, eq, referenceA, note, key, rounded-0.55)
	bandHigh := temperament.ReferenceHz(temper, eq, referenceA, note, key, rounded+0.55)

	closest := peaks[0]
	bestDist := math.Abs(closest.FrequencyHz - refHz)
	for _, p := range peaks[1:] {
		if d := math.Abs(p.FrequencyHz - refHz); d < bestDist {
			bestDist = d
			closest = p
		}
	}
	f = closest.FrequencyHz

	cents := -12 * math.Log2(refHz/f) * 100
	if math.IsNaN(cents) || math.IsInf(cents, 0) || math.Abs(cents/100) > 0.5 {
		return PitchResult{Valid: false}
	}

	return PitchResult{
		Valid:       true,
		FrequencyHz: f,
		ReferenceHz: refHz,
		Cents:       cents,
		NoteNumber:  note,
		Octave:      note / 12,
		NoteName:    NoteNames[note%12],
		Confidence:  maxMagnitude,
		BandLowHz:   bandLow,
		BandHighHz:  bandHigh,
		Peaks:       peaks,
	}
}
