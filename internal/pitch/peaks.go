// Package pitch implements the constrained peak picker and the
// note/cents decision: turning a refined spectrum into a bounded,
// frequency-ascending list of candidate pitches, and that list into a
// single note/cents verdict.
package pitch

import (
	"math"

	"github.com/linuxmatters/tuner/internal/config"
	"github.com/linuxmatters/tuner/internal/temperament"
)

// Peak is a single accepted spectral peak: its measured frequency, its
// temperament-adjusted reference frequency, and its note number under the
// C0=0 convention.
type Peak struct {
	FrequencyHz float64
	ReferenceHz float64
	NoteNumber  int
	MagnitudeAt float64
}

// NoteFilter restricts which pitch classes and octaves the peak picker
// may accept. A nil *NoteFilter disables the filter entirely.
type NoteFilter struct {
	PitchClassEnabled [12]bool
	OctaveMin         int
	OctaveMax         int
}

// Allows reports whether note passes the filter.
func (f *NoteFilter) Allows(note int) bool {
	if f == nil {
		return true
	}
	pc := note % 12
	oct := note / 12
	if !f.PitchClassEnabled[pc] {
		return false
	}
	return oct >= f.OctaveMin && oct <= f.OctaveMax
}

// Options bundles the peak picker's filter configuration.
type Options struct {
	ReferenceA        float64
	Temperament       temperament.Temperament
	Equal             temperament.Temperament
	Key               int
	FundamentalFilter bool
	NoteFilter        *NoteFilter
	HPSEnabled        bool
}

// Pick runs the constrained peak picker over one hop's spectrum. mag,
// freq, and derivative must all have the same length (R usable bins) and
// describe the same hop, index-aligned. Returns at most config.MaxPeaks
// peaks in frequency-ascending order, plus the running maximum magnitude
// seen across every bin considered (the confidence figure Decide reports).
func Pick(mag, freq, derivative []float64, opt Options) ([]Peak, float64) {
	r := len(mag)
	limit := r - 1

	var peaks []Peak
	var fundamentalPC int
	haveFundamental := false
	maxSoFar := 0.0

	for i := 1; i < limit; i++ {
		cf := -12 * math.Log2(opt.ReferenceA/freq[i])
		if math.IsNaN(cf) || math.IsInf(cf, 0) {
			continue
		}
		note := int(math.Round(cf)) + config.C5Offset
		if note < 0 {
			continue
		}

		if opt.FundamentalFilter && haveFundamental && note%12 != fundamentalPC {
			continue
		}
		if opt.NoteFilter != nil && !opt.NoteFilter.Allows(note) {
			continue
		}

		if mag[i] > maxSoFar {
			maxSoFar = mag[i]
		}

		if mag[i] <= config.MinAmplitude {
			continue
		}
		if mag[i] <= maxSoFar/4 {
			continue
		}
		if derivative[i] <= 0 || derivative[i+1] >= 0 {
			continue
		}

		refHz := temperament.ReferenceHz(opt.Temperament, opt.Equal, opt.ReferenceA, note, opt.Key, math.Round(cf))
		peaks = append(peaks, Peak{
			FrequencyHz: freq[i],
			ReferenceHz: refHz,
			NoteNumber:  note,
			MagnitudeAt: mag[i],
		})

		if !haveFundamental {
			fundamentalPC = note % 12
			haveFundamental = true
		}

		if !opt.HPSEnabled {
			tightened := 2*i - 1
			if tightened < limit {
				limit = tightened
			}
		}

		if len(peaks) >= config.MaxPeaks {
			break
		}
	}

	return peaks, maxSoFar
}
