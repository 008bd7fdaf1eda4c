package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-runewidth"
	"github.com/san-kum/probesim/internal/export"
	"github.com/san-kum/probesim/internal/recorder"
	"github.com/san-kum/probesim/internal/scan"
	"github.com/san-kum/probesim/internal/units"
)

const (
	width          = 80
	height         = 20
	readoutHistory = 240
	headroom       = 25.0
	statusWidth    = 42
)

type TickMsg time.Time

// Options configures the live view.
type Options struct {
	FPS    int
	OutDir string // where S writes SVG files
}

// Model drives one engine from Bubble Tea ticks.
type Model struct {
	engine    *scan.Engine
	opts      Options
	canvas    *Canvas
	spring    harmonica.Spring
	tipY      float64
	tipVel    float64
	ceiling   float64
	progress  progress.Model
	paramKeys []string
	selected  int
	readouts  []float64
	status    string
	showHelp  bool
}

// NewModel wraps an initialised engine.
func NewModel(e *scan.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	bar := progress.New(
		progress.WithScaledGradient("#00C86E", "#4D96FF"),
		progress.WithoutPercentage(),
	)
	bar.Width = 40

	snap := e.Snapshot()
	return Model{
		engine:    e,
		opts:      opts,
		canvas:    NewCanvas(width, height),
		spring:    harmonica.NewSpring(harmonica.FPS(opts.FPS), 12.0, 0.8),
		tipY:      snap.Tip.Height,
		ceiling:   maxHeight(e.Profile()) + headroom,
		progress:  bar,
		paramKeys: e.ParamNames(),
		readouts:  make([]float64, 0, readoutHistory),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and advances the engine one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.engine.SetScanning(!m.engine.Scanning())
		case "r":
			m.engine.Reset()
			m.readouts = m.readouts[:0]
			m.status = "scan rewound"
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "s":
			m.save()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.step()
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	snap := m.engine.Tick()
	m.tipY, m.tipVel = m.spring.Update(m.tipY, m.tipVel, snap.Tip.Height)
	m.ceiling = max(m.ceiling, snap.Tip.Height+2)
	if snap.Tip.Record {
		m.readouts = append(m.readouts, snap.Tip.Readout.Value)
		if len(m.readouts) > readoutHistory {
			m.readouts = m.readouts[len(m.readouts)-readoutHistory:]
		}
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// toggles are the 0/1 switches that flip on either key instead of scaling.
var toggles = map[string]bool{"resolution": true, "clamp": true}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	name := m.paramKeys[m.selected]
	next := m.engine.Params()[name] * factor
	if toggles[name] {
		next = 1 - m.engine.Params()[name]
	} else if next == 0 && factor > 1 {
		next = 1e-3
	}
	if err := m.engine.UpdateConfig(name, next); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s = %.4g", name, next)
	m.ceiling = max(m.ceiling, maxHeight(m.engine.Profile())+headroom)
}

func (m *Model) save() {
	if err := os.MkdirAll(m.opts.OutDir, 0755); err != nil {
		m.status = err.Error()
		return
	}
	base := filepath.Join(m.opts.OutDir, fmt.Sprintf("%s_%06d", m.engine.Name(), m.engine.Snapshot().Tick))

	if err := os.WriteFile(base+"_view.svg", []byte(export.CanvasToSVG(m.canvas.Grid, 4)), 0644); err != nil {
		m.status = err.Error()
		return
	}
	records := m.engine.Recorder().Curve()
	if len(records) > 1 {
		svg := export.SeriesToSVG(export.Curves(records, export.AxisFor(records)), 800, 400)
		if err := os.WriteFile(base+"_curve.svg", []byte(svg), 0644); err != nil {
			m.status = err.Error()
			return
		}
	}
	m.status = "saved " + base + "_*.svg"
}

func (m *Model) draw() {
	m.canvas.Clear()
	p := m.engine.Profile()
	h := p.Values(scan.Height)
	f := m.canvas.Frame(0, float64(p.Len()), minHeight(p)-2, m.ceiling)

	pw := m.canvas.PixelWidth()
	ys := make([]float64, pw)
	for i := range ys {
		ys[i] = h[i*len(h)/pw]
	}
	m.canvas.Polyline(f, ys)

	snap := m.engine.Snapshot()
	m.canvas.Stem(f, snap.X, m.tipY, m.ceiling)
	px, py := f.Point(snap.X, m.tipY)
	m.canvas.Set(px-1, py)
	m.canvas.Set(px+1, py)
}

// View renders the canvas next to the readout panel.
func (m Model) View() string {
	snap := m.engine.Snapshot()

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.engine.Name())) + "\n\n")

	status := StatusRunning.Render("SCANNING")
	if !m.engine.Scanning() {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "  " + PhaseBadge(snap.Tip.Phase) + "\n\n")

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("position", fmt.Sprintf("%.1f / %d", snap.X, m.engine.Profile().Len()))
	row("tip", units.Length(snap.Tip.Height))
	row("surface", units.Length(snap.Tip.Surface))
	row(snap.Tip.Readout.Quantity.String(), units.Readout(snap.Tip.Readout.Quantity, snap.Tip.Readout.Value))
	row("contact", fmt.Sprintf("%v", snap.Tip.InContact))
	row("branch", snap.Tip.Branch.String())
	s.WriteString("\n" + m.progress.ViewAs(m.engine.Progress()) + "\n")

	if len(m.readouts) > 1 {
		chart := asciigraph.Plot(m.readouts, asciigraph.Height(6), asciigraph.Width(36), asciigraph.Caption(snap.Tip.Readout.Quantity.String()))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + Separator(40) + "\n")
	params := m.engine.Params()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-14s %.4g", k, params[k])
		if i == m.selected {
			s.WriteString(ActiveParam.Render("> "+line) + "\n")
		} else {
			s.WriteString(Subtle.Render("  "+line) + "\n")
		}
	}
	if m.status != "" {
		s.WriteString("\n" + KeyHint.Render(runewidth.Truncate(m.status, statusWidth, "…")) + "\n")
	}

	canvasView := canvasStyle.Render(m.canvas.String() + "\n" + SparklineChart(branchValues(m.engine.Recorder()), width))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	help := KeyHint.Render("space pause • r reset • tab/↑/↓ params • s save • ? help • q quit")
	if m.showHelp {
		help = KeyHint.Render(strings.Join([]string{
			"space   pause or resume scanning",
			"r       rewind scan, clear recordings",
			"tab     select next parameter",
			"↑ k     increase parameter 5%",
			"↓ j     decrease parameter 5%",
			"s       save view and curve as svg",
			"q       quit",
		}, "\n"))
	}
	return mainView + "\n" + help
}

func branchValues(b *recorder.Buffer) []float64 {
	return recorder.Values(b.Filter(recorder.Forward))
}

func maxHeight(p *scan.Profile) float64 {
	h := p.Values(scan.Height)
	hi := h[0]
	for _, v := range h {
		hi = max(hi, v)
	}
	return hi
}

func minHeight(p *scan.Profile) float64 {
	h := p.Values(scan.Height)
	lo := h[0]
	for _, v := range h {
		lo = min(lo, v)
	}
	return lo
}

// Run starts the live view and blocks until the user quits.
func Run(e *scan.Engine, opts Options) error {
	_, err := tea.NewProgram(NewModel(e, opts), tea.WithAltScreen()).Run()
	return err
}
