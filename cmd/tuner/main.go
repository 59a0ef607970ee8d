// Command tuner is the offline CLI path: it analyses one or more WAV
// files and emits per-file JSON pitch detections, and a "live" subcommand
// that replays a file through the real-time pipeline in a terminal UI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/linuxmatters/tuner/internal/audio"
	"github.com/linuxmatters/tuner/internal/cli"
	"github.com/linuxmatters/tuner/internal/cluster"
	"github.com/linuxmatters/tuner/internal/config"
	"github.com/linuxmatters/tuner/internal/pitch"
	"github.com/linuxmatters/tuner/internal/settings"
	"github.com/linuxmatters/tuner/internal/temperament"
	"github.com/linuxmatters/tuner/internal/ui"
)

// defaultReferenceFlag is kong's own default for -r; seeing it unchanged
// on the command line means the persisted settings file, not the flag,
// should supply the reference pitch.
const defaultReferenceFlag = 440.0

// CLI is the root command grammar: `tuner [-r FREQ] [-a] FILE...`, plus a
// `live` subcommand for real-time-style terminal replay.
type CLI struct {
	Reference    float64  `short:"r" default:"440.0" help:"Reference pitch for A4, in Hz."`
	Aggregate    bool     `short:"a" help:"Wrap all per-file outputs in one JSON object keyed by file basename."`
	Key          int      `short:"k" default:"0" help:"Transposition key, 0=C .. 11=B."`
	Temperment   string   `short:"t" name:"temperament" default:"Equal Temperament" help:"Temperament name from the built-in catalogue."`
	Filter       bool     `help:"Enable the low-pass pre-filter."`
	HPS          bool     `help:"Enable harmonic product spectrum sharpening."`
	SettingsFile string   `default:"tuner-settings.json" help:"Path to the persisted settings file."`
	Files        []string `arg:"" optional:"" name:"file" help:"WAV file(s) to analyse."`

	Live ui.LiveCmd `cmd:"" help:"Replay a WAV file through the live tuner display."`
}

func main() {
	var c CLI
	parser := kong.Must(&c,
		kong.Name("tuner"),
		kong.Description("Detects pitch in WAV recordings against a chosen temperament and reference pitch."),
		kong.HelpOptions{Compact: true},
		kong.Vars{"version": "0.1.0"},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{})),
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if strings.HasPrefix(ctx.Command(), "live") {
		ctx.FatalIfErrorf(ctx.Run())
		return
	}

	if len(c.Files) == 0 {
		cli.PrintError("no file path given")
		os.Exit(1)
	}

	store := settings.NewFileStore(c.SettingsFile)
	saved, err := store.Load()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	referenceA := c.Reference
	if referenceA == defaultReferenceFlag {
		referenceA = saved.ReferenceHz()
	}

	registry := temperament.NewRegistry()
	eq := registry.Equal()
	idx, ok := registry.FindByName(c.Temperment)
	if !ok {
		cli.PrintError(fmt.Sprintf("unknown temperament %q", c.Temperment))
		os.Exit(1)
	}
	temper, _ := registry.Get(idx)

	opt := pitch.Options{
		ReferenceA:  referenceA,
		Temperament: temper,
		Equal:       eq,
		Key:         c.Key,
	}

	results := make(map[string]fileResult, len(c.Files))
	order := make([]string, 0, len(c.Files))
	for _, path := range c.Files {
		key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		order = append(order, key)
		results[key] = analyzeFile(path, opt, c.Filter, c.HPS)
	}

	next := saved.WithReferenceHz(referenceA)
	next.Filter = c.Filter
	if err := store.Save(next); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if c.Aggregate {
		out := make(map[string]fileResult, len(order))
		for _, key := range order {
			out[key] = results[key]
		}
		emitJSON(out)
		return
	}

	for _, key := range order {
		emitJSON(results[key])
	}
}

// fileResult is the per-file analysis output emitted as JSON.
type fileResult struct {
	Valid           bool        `json:"valid"`
	Error           string      `json:"error,omitempty"`
	NumNotes        int         `json:"num_notes,omitempty"`
	Notes           []noteJSON  `json:"notes,omitempty"`
	PrimaryNote     string      `json:"primary_note,omitempty"`
	PrimaryOctave   int         `json:"primary_octave,omitempty"`
	PrimaryFreq     float64     `json:"primary_frequency,omitempty"`
	PrimaryCents    float64     `json:"primary_cents,omitempty"`
	NumValidFrames  int         `json:"num_valid_frames,omitempty"`
}

type noteJSON struct {
	NoteName  string  `json:"note_name"`
	Octave    int     `json:"octave"`
	Frequency float64 `json:"frequency"`
	Cents     float64 `json:"cents"`
}

func analyzeFile(path string, opt pitch.Options, useFilter, useHPS bool) fileResult {
	samples, err := audio.DecodeFile(path)
	if err != nil {
		return fileResult{Valid: false, Error: err.Error()}
	}

	driver := audio.NewDriver(opt, useFilter, useHPS)
	agg := cluster.NewAggregator()

	for offset := 0; offset < len(samples); offset += config.HopSize {
		hop := make([]float64, config.HopSize)
		n := copy(hop, samples[offset:])
		_ = n
		agg.AddFrame(driver.OnSamples(hop))
	}

	notes := agg.Finish()
	if len(notes) == 0 {
		return fileResult{Valid: false, Error: "No pitch detected"}
	}

	noteList := make([]noteJSON, len(notes))
	for i, n := range notes {
		noteList[i] = noteJSON{NoteName: n.NoteName, Octave: n.Octave, Frequency: n.FrequencyHz, Cents: n.Cents}
	}

	primary := notes[0]
	return fileResult{
		Valid:          true,
		NumNotes:       len(notes),
		Notes:          noteList,
		PrimaryNote:    primary.NoteName,
		PrimaryOctave:  primary.Octave,
		PrimaryFreq:    primary.FrequencyHz,
		PrimaryCents:   primary.Cents,
		NumValidFrames: agg.ValidFrames(),
	}
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
