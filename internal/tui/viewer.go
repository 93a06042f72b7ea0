// Package tui is an interactive playback viewer for rolled-out
// trajectories: pick a preset problem, roll it out, and scrub through the
// merged trajectory with a two-link arm animation and per-variable
// readouts.
package tui

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/trajopt/internal/config"
	"github.com/san-kum/trajopt/internal/solve"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type state int

const (
	stateMenu state = iota
	statePlay
)

type viewer struct {
	state   state
	cursor  int
	presets []string
	errMsg  string

	preset string
	times  []float64
	states [][]float64
	labels []string
	phases []phaseSpan

	frame     int
	playing   bool
	speed     float64
	lastFrame time.Time
	fps       float64

	width  int
	height int
}

type phaseSpan struct {
	name string
	end  float64
}

// NewViewer starts at the preset menu.
func NewViewer() *viewer {
	names := config.ListPresets()
	sort.Strings(names)
	return &viewer{
		state:   stateMenu,
		presets: names,
		speed:   1.0,
		width:   80,
		height:  24,
	}
}

func (v viewer) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (v viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil
	case tickMsg:
		if v.state != statePlay || !v.playing {
			return v, nil
		}
		now := time.Now()
		if !v.lastFrame.IsZero() {
			dt := now.Sub(v.lastFrame).Seconds()
			if dt > 0 {
				v.fps = 1.0 / dt
			}
		}
		v.lastFrame = now

		step := int(v.speed)
		if step < 1 {
			step = 1
		}
		v.frame += step
		if v.frame >= len(v.times) {
			v.frame = len(v.times) - 1
			v.playing = false
			return v, nil
		}
		return v, tick()
	}
	return v, nil
}

func (v viewer) handleKey(msg tea.KeyMsg) (viewer, tea.Cmd) {
	switch v.state {
	case stateMenu:
		return v.menuKey(msg)
	case statePlay:
		return v.playKey(msg)
	}
	return v, nil
}

func (v viewer) menuKey(msg tea.KeyMsg) (viewer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return v, tea.Quit
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.presets)-1 {
			v.cursor++
		}
	case "enter", " ":
		name := v.presets[v.cursor]
		if err := v.load(name); err != nil {
			v.errMsg = err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.state = statePlay
		v.playing = true
		v.lastFrame = time.Time{}
		return v, tea.Batch(tea.ClearScreen, tick())
	}
	return v, nil
}

func (v viewer) playKey(msg tea.KeyMsg) (viewer, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		v.state = stateMenu
		v.playing = false
		return v, tea.ClearScreen
	case " ", "p":
		v.playing = !v.playing
		if v.playing {
			v.lastFrame = time.Time{}
			return v, tick()
		}
	case "r":
		v.frame = 0
		v.playing = true
		v.lastFrame = time.Time{}
		return v, tick()
	case "left", "h":
		v.frame -= 5
		if v.frame < 0 {
			v.frame = 0
		}
	case "right", "l":
		v.frame += 5
		if v.frame >= len(v.times) {
			v.frame = len(v.times) - 1
		}
	case "+", "=":
		v.speed = math.Min(v.speed*2, 16)
	case "-", "_":
		v.speed = math.Max(v.speed/2, 0.25)
	case "0":
		v.speed = 1.0
	}
	return v, nil
}

// load rolls the preset out and keeps the merged matrix for scrubbing.
func (v *viewer) load(name string) error {
	cfg := config.GetPreset(name)
	prob, err := cfg.BuildProblem()
	if err != nil {
		return err
	}
	inputs, err := cfg.RolloutInputs(prob)
	if err != nil {
		return err
	}
	opts, err := cfg.RolloutOptions()
	if err != nil {
		return err
	}
	res, err := solve.Rollout(context.Background(), prob, inputs, nil, opts)
	if err != nil {
		return err
	}

	states, err := res.MergedStates(true, true)
	if err != nil {
		return err
	}
	times, err := res.MergedTimes(true, true)
	if err != nil {
		return err
	}

	var labels []string
	for _, e := range prob.Phase(0).States().Entries() {
		for _, n := range e.Reduced.Names() {
			labels = append(labels, n)
		}
	}

	var spans []phaseSpan
	t := 0.0
	for _, ph := range prob.Phases() {
		t += ph.Duration()
		spans = append(spans, phaseSpan{name: ph.Name(), end: t})
	}

	v.preset = name
	v.times = times
	v.states = states
	v.labels = labels
	v.phases = spans
	v.frame = 0
	return nil
}

func (v viewer) View() string {
	switch v.state {
	case stateMenu:
		return v.viewMenu()
	case statePlay:
		return v.viewPlay()
	}
	return ""
}

func (v viewer) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("t r a j o p t") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range v.presets {
		desc := presetInfo(name)
		if i == v.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	if v.errMsg != "" {
		b.WriteString("\n      " + red.Render(v.errMsg) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter roll out   q quit") + "\n")

	return b.String()
}

func presetInfo(name string) string {
	cfg := config.GetPreset(name)
	if cfg == nil || len(cfg.Phases) == 0 {
		return ""
	}
	if len(cfg.Phases) > 1 {
		return fmt.Sprintf("%d phases, %s", len(cfg.Phases), cfg.Phases[0].Kind)
	}
	return cfg.Phases[0].Kind
}

func (v viewer) viewPlay() string {
	cw := v.width - 6
	ch := v.height - 12
	if cw < 50 {
		cw = 50
	}
	if ch < 12 {
		ch = 12
	}

	canvas := newCanvas(cw, ch)
	v.drawArm(canvas, cw, ch)

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("playing")
	if !v.playing {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(v.preset), statusText, dim.Render(v.phaseAt())))

	t := v.times[v.frame]
	total := v.times[len(v.times)-1]
	progress := 0.0
	if total > 0 {
		progress = t / total
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	timeStr := fmt.Sprintf("%.2fs/%.2fs", t, total)
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s  %s\n\n", bar, dim.Render(timeStr), dim.Render(fmt.Sprintf("%.0ffps", v.fps))))

	for _, row := range canvas {
		b.WriteString("   " + string(row) + "\n")
	}

	var readout strings.Builder
	readout.WriteString("   ")
	for i, label := range v.labels {
		if i >= len(v.states) || i >= 4 {
			break
		}
		readout.WriteString(dim.Render(label + "="))
		readout.WriteString(white.Render(fmt.Sprintf("%.2f", v.states[i][v.frame])))
		readout.WriteString("  ")
	}
	b.WriteString(readout.String() + "\n")

	if len(v.states) > 0 && v.frame > 1 {
		spark := sparkline(v.states[0][:v.frame+1], 24)
		label := "x0"
		if len(v.labels) > 0 {
			label = v.labels[0]
		}
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render(label), magenta.Render(spark)))
	}

	b.WriteString("\n" + dim.Render("   space pause  ←→ scrub  ±speed  r restart  q back") + "\n")

	return b.String()
}

func (v viewer) phaseAt() string {
	if len(v.phases) < 2 {
		return ""
	}
	t := v.times[v.frame]
	for _, span := range v.phases {
		if t <= span.end {
			return span.name
		}
	}
	return v.phases[len(v.phases)-1].name
}

// drawArm renders the first two state rows as a two-link arm. Trajectories
// from other layouts fall back to value bars.
func (v viewer) drawArm(canvas [][]rune, w, h int) {
	if len(v.states) < 2 {
		v.drawBars(canvas, w, h)
		return
	}
	t1 := v.states[0][v.frame]
	t2 := v.states[1][v.frame]
	px, py := w/2, 1
	length := float64(h) * 0.38

	b1x := px + int(length*math.Sin(t1))
	b1y := py + int(length*math.Cos(t1))
	b2x := b1x + int(length*math.Sin(t1+t2))
	b2y := b1y + int(length*math.Cos(t1+t2))

	// Tip trail over the frames already played.
	start := v.frame - 60
	if start < 0 {
		start = 0
	}
	for f := start; f < v.frame; f++ {
		a1 := v.states[0][f]
		a2 := v.states[1][f]
		tx := px + int(length*math.Sin(a1)) + int(length*math.Sin(a1+a2))
		ty := py + int(length*math.Cos(a1)) + int(length*math.Cos(a1+a2))
		set(canvas, tx, ty, '·', w, h)
	}

	set(canvas, px, py, '▼', w, h)
	drawLine(canvas, w, h, px, py, b1x, b1y, '│')
	set(canvas, b1x, b1y, '●', w, h)
	drawLine(canvas, w, h, b1x, b1y, b2x, b2y, '│')
	set(canvas, b2x, b2y, '⬤', w, h)
}

func (v viewer) drawBars(canvas [][]rune, w, h int) {
	cy := h / 2
	for x := 2; x < w-2; x++ {
		set(canvas, x, cy, '─', w, h)
	}
	if len(v.states) == 0 {
		return
	}
	maxVal := 1.0
	for _, row := range v.states {
		if math.Abs(row[v.frame]) > maxVal {
			maxVal = math.Abs(row[v.frame])
		}
	}
	bw := (w - 8) / len(v.states)
	if bw < 4 {
		bw = 4
	}
	for i, row := range v.states {
		bx := 4 + i*bw
		bh := int((row[v.frame] / maxVal) * float64(h/3))
		if bh > 0 {
			for y := cy - 1; y >= cy-bh && y >= 1; y-- {
				set(canvas, bx, y, '█', w, h)
			}
		} else {
			for y := cy + 1; y <= cy-bh && y < h-1; y++ {
				set(canvas, bx, y, '█', w, h)
			}
		}
	}
}

// Run opens the viewer in the alternate screen.
func Run() error {
	p := tea.NewProgram(NewViewer(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
