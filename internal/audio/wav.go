package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/linuxmatters/tuner/internal/config"
)

// chunkSamples is the read granularity used while streaming PCM out of
// the decoder; it has no relationship to config.HopSize.
const chunkSamples = 8192

// DecodeFile parses a RIFF/WAVE file (format 1 PCM or format 3 IEEE
// float), down-mixes it to mono by taking the first channel, and
// resamples it to config.SampleRate if the file's rate differs.
func DecodeFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("audio: %s is not a valid RIFF/WAVE file", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("audio: %s: seeking to PCM data: %w", path, err)
	}
	if dec.WavAudioFormat != 1 && dec.WavAudioFormat != 3 {
		return nil, fmt.Errorf("audio: %s: unsupported WAV format tag %d (want 1=PCM or 3=float)", path, dec.WavAudioFormat)
	}

	numChans := int(dec.NumChans)
	if numChans <= 0 {
		return nil, fmt.Errorf("audio: %s: invalid channel count %d", path, numChans)
	}

	var all []float64
	for {
		buf := &goaudio.FloatBuffer{
			Data: make([]float64, chunkSamples),
			Format: &goaudio.Format{
				NumChannels: numChans,
				SampleRate:  int(dec.SampleRate),
			},
		}
		n, err := dec.PCMBuffer(buf)
		if n > 0 {
			all = append(all, buf.Data[:n]...)
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("audio: %s: reading PCM data: %w", path, err)
		}
		if n == 0 || err == io.EOF {
			break
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("audio: %s contains no samples", path)
	}

	mono := downmix(all, numChans)
	return resample(mono, int(dec.SampleRate), config.SampleRate), nil
}

// downmix takes the first channel of an interleaved multi-channel buffer:
// a straight selection, not an average across channels.
func downmix(interleaved []float64, numChans int) []float64 {
	if numChans == 1 {
		out := make([]float64, len(interleaved))
		copy(out, interleaved)
		return out
	}
	n := len(interleaved) / numChans
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = interleaved[i*numChans]
	}
	return out
}

// resample adapts samples from srcRate to dstRate. When srcRate is an
// integer multiple of dstRate, it decimates (keeps every Nth sample);
// otherwise it falls back to nearest-neighbour selection. Polyphase
// resampling is out of scope, matching the source this is modelled on.
func resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(samples) == 0 {
		return samples
	}
	if srcRate%dstRate == 0 {
		factor := srcRate / dstRate
		out := make([]float64, 0, len(samples)/factor+1)
		for i := 0; i < len(samples); i += factor {
			out = append(out, samples[i])
		}
		return out
	}

	outLen := len(samples) * dstRate / srcRate
	out := make([]float64, outLen)
	for i := range out {
		srcIdx := i * srcRate / dstRate
		if srcIdx >= len(samples) {
			srcIdx = len(samples) - 1
		}
		out[i] = samples[srcIdx]
	}
	return out
}
