// Package ui implements the real-time terminal replay: a WAV file fed
// through the frame driver at its native hop pace, displayed as a
// cents meter and magnitude sparkline in a Bubbletea Elm-architecture
// model.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/tuner/internal/audio"
	"github.com/linuxmatters/tuner/internal/cli"
	"github.com/linuxmatters/tuner/internal/config"
	"github.com/linuxmatters/tuner/internal/pitch"
	"github.com/linuxmatters/tuner/internal/temperament"
)

// LiveCmd is the kong subcommand: `tuner live FILE`.
type LiveCmd struct {
	File        string  `arg:"" help:"WAV file to replay."`
	Reference   float64 `short:"r" default:"440.0" help:"Reference pitch for A4, in Hz."`
	Key         int     `short:"k" default:"0" help:"Transposition key, 0=C .. 11=B."`
	Temperament string  `short:"t" default:"Equal Temperament" help:"Temperament name from the built-in catalogue."`
	Filter      bool    `help:"Enable the low-pass pre-filter."`
	HPS         bool    `help:"Enable harmonic product spectrum sharpening."`
}

// Run decodes File and replays it through the live display.
func (l *LiveCmd) Run() error {
	samples, err := audio.DecodeFile(l.File)
	if err != nil {
		return fmt.Errorf("live: %w", err)
	}

	registry := temperament.NewRegistry()
	eq := registry.Equal()
	idx, ok := registry.FindByName(l.Temperament)
	if !ok {
		return fmt.Errorf("live: unknown temperament %q", l.Temperament)
	}
	temper, _ := registry.Get(idx)

	opt := pitch.Options{
		ReferenceA:  l.Reference,
		Temperament: temper,
		Equal:       eq,
		Key:         l.Key,
	}

	m := newModel(samples, opt, l.Filter, l.HPS)
	_, err = tea.NewProgram(m).Run()
	return err
}

type hopTickMsg struct{}

const hopInterval = time.Second * time.Duration(config.HopSize) / time.Duration(config.SampleRate)

const sparklineWidth = 40

// model is the Bubbletea model driving the replay.
type model struct {
	samples []float64
	pos     int
	driver  *audio.Driver
	bar     progress.Model

	magHistory [sparklineWidth]float64
	magCount   int

	paused   bool
	finished bool
	width    int
}

func newModel(samples []float64, opt pitch.Options, useFilter, useHPS bool) *model {
	bar := progress.New(
		progress.WithGradient(string(cli.NoteRed), string(cli.NoteGreen)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	return &model{
		samples: samples,
		driver:  audio.NewDriver(opt, useFilter, useHPS),
		bar:     bar,
	}
}

func (m *model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(hopInterval, func(time.Time) tea.Msg { return hopTickMsg{} })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = clampInt(msg.Width-20, 10, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			m.driver.SetDisplayLock(m.paused)
		}
		return m, nil

	case hopTickMsg:
		if m.finished {
			return m, nil
		}
		end := m.pos + config.HopSize
		hop := make([]float64, config.HopSize)
		if m.pos < len(m.samples) {
			n := copy(hop, m.samples[m.pos:min(end, len(m.samples))])
			_ = n
		} else {
			m.finished = true
		}
		result := m.driver.OnSamples(hop)
		m.pushMagnitude(result.Confidence)
		m.pos = end
		if m.pos >= len(m.samples) {
			m.finished = true
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(cli.NoteGreen).Render("Tuner: live replay")
	b.WriteString(title)
	b.WriteString("\n\n")

	result := m.driver.Result()
	if !result.Valid {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("No pitch detected"))
		b.WriteString("\n")
	} else {
		noteStyle := lipgloss.NewStyle().Bold(true).Foreground(centsColor(result.Cents))
		b.WriteString(noteStyle.Render(fmt.Sprintf("%s%d", result.NoteName, result.Octave)))
		b.WriteString(fmt.Sprintf("   %.2f Hz   %+.1f cents\n\n", result.FrequencyHz, result.Cents))

		ratio := (result.Cents + 50) / 100
		b.WriteString(m.bar.ViewAs(clampFloat(ratio, 0, 1)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(cli.NoteGreen).Render(renderSparkline(m.magHistory, m.magCount)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("valid frames: %d   space: %s   q: quit",
			m.driver.ValidFrames(), pauseLabel(m.paused))))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.NoteGreen).
		Padding(1, 2).
		Render(b.String())
}

// pushMagnitude slides mag onto the end of the rolling magnitude history,
// used to draw the sparkline below the cents meter.
func (m *model) pushMagnitude(mag float64) {
	copy(m.magHistory[:], m.magHistory[1:])
	m.magHistory[sparklineWidth-1] = mag
	if m.magCount < sparklineWidth {
		m.magCount++
	}
}

var sparkBlocks = [...]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderSparkline draws the rolling confidence history as a row of block
// characters, each scaled against the loudest magnitude in the window.
func renderSparkline(history [sparklineWidth]float64, count int) string {
	if count == 0 {
		return strings.Repeat(string(sparkBlocks[0]), sparklineWidth)
	}

	start := sparklineWidth - count
	max := 0.0
	for _, v := range history[start:] {
		if v > max {
			max = v
		}
	}

	var b strings.Builder
	for i := 0; i < sparklineWidth; i++ {
		if i < start || max == 0 {
			b.WriteRune(sparkBlocks[0])
			continue
		}
		level := int((history[i] / max) * float64(len(sparkBlocks)-1))
		if level >= len(sparkBlocks) {
			level = len(sparkBlocks) - 1
		}
		if level < 0 {
			level = 0
		}
		b.WriteRune(sparkBlocks[level])
	}
	return b.String()
}

func centsColor(cents float64) lipgloss.Color {
	abs := cents
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 5:
		return cli.NoteGreen
	case abs < 20:
		return cli.NoteAmber
	default:
		return cli.NoteRed
	}
}

func pauseLabel(paused bool) string {
	if paused {
		return "resume"
	}
	return "pause"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
