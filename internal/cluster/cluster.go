// Package cluster implements the offline cluster aggregator: it
// folds an ordered sequence of per-frame PitchResults into a stable,
// ordered list of detected notes, filtering out octave/twelfth harmonics
// of notes already kept.
package cluster

import (
	"math"
	"sort"

	"github.com/linuxmatters/tuner/internal/config"
	"github.com/linuxmatters/tuner/internal/pitch"
)

// bucket is the running mean of every peak folded into it so far.
type bucket struct {
	freqSum  float64
	centsSum float64
	count    int
	note     int
}

func (b *bucket) meanFreq() float64  { return b.freqSum / float64(b.count) }
func (b *bucket) meanCents() float64 { return b.centsSum / float64(b.count) }

// Note is one stable detection emitted by Finish.
type Note struct {
	NoteName    string
	Octave      int
	FrequencyHz float64
	Cents       float64
}

// Aggregator accumulates frames. It is single-use: call AddFrame for
// every frame in the recording, then Finish once.
type Aggregator struct {
	buckets     []bucket
	validFrames int
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// AddFrame folds one hop's PitchResult into the running clusters. Invalid
// results contribute nothing but are still harmless to call this with;
// only valid results count toward the valid-frame denominator Finish
// uses for the survival threshold.
func (a *Aggregator) AddFrame(result pitch.PitchResult) {
	if !result.Valid {
		return
	}
	a.validFrames++

	for _, p := range result.Peaks {
		cents := -12 * math.Log2(p.ReferenceHz/p.FrequencyHz) * 100
		if math.IsNaN(cents) || math.IsInf(cents, 0) {
			continue
		}
		a.addPeak(p, cents)
	}
}

func (a *Aggregator) addPeak(p pitch.Peak, cents float64) {
	for i := range a.buckets {
		if math.Abs(a.buckets[i].meanFreq()-p.FrequencyHz) <= config.ClusterToleranceHz {
			a.buckets[i].freqSum += p.FrequencyHz
			a.buckets[i].centsSum += cents
			a.buckets[i].count++
			return
		}
	}
	if len(a.buckets) >= config.MaxClusters {
		return
	}
	a.buckets = append(a.buckets, bucket{freqSum: p.FrequencyHz, centsSum: cents, count: 1, note: p.NoteNumber})
}

// ValidFrames returns the number of valid frames folded in so far.
func (a *Aggregator) ValidFrames() int {
	return a.validFrames
}

// Finish consumes the accumulated clusters and returns up to
// config.MaxPeaks stable detected notes, lowest frequency first: the
// first entry is the fundamental of the whole recording.
func (a *Aggregator) Finish() []Note {
	threshold := float64(a.validFrames) / 4

	var survivors []bucket
	for _, b := range a.buckets {
		if float64(b.count) >= threshold {
			survivors = append(survivors, b)
		}
	}
	sort.Slice(survivors, func(i, j int) bool {
		return survivors[i].meanFreq() < survivors[j].meanFreq()
	})

	var kept []bucket
	for _, b := range survivors {
		if isHarmonicOf(b.meanFreq(), kept) {
			continue
		}
		kept = append(kept, b)
		if len(kept) >= config.MaxPeaks {
			break
		}
	}

	notes := make([]Note, len(kept))
	for i, b := range kept {
		notes[i] = Note{
			NoteName:    pitch.NoteNames[((b.note%12)+12)%12],
			Octave:      b.note / 12,
			FrequencyHz: b.meanFreq(),
			Cents:       b.meanCents(),
		}
	}
	return notes
}

// isHarmonicOf reports whether freq sits within HarmonicFilterRatio of
// 2x or 3x the mean frequency of any already-kept cluster. Fifths (1.5x)
// are intentionally not filtered: they are often legitimate co-sounding
// notes, not detection artefacts.
func isHarmonicOf(freq float64, kept []bucket) bool {
	for _, k := range kept {
		base := k.meanFreq()
		for _, multiple := range [2]float64{2, 3} {
			target := base * multiple
			if math.Abs(freq-target) <= target*config.HarmonicFilterRatio {
				return true
			}
		}
	}
	return false
}
