package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/probesim/internal/instrument"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.PixelWidth() != 8 || c.PixelHeight() != 8 {
		t.Fatalf("pixel size = %dx%d", c.PixelWidth(), c.PixelHeight())
	}
	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("pixel not set")
	}
	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	if c.IsSet(3, 5) {
		t.Error("pixel survived Clear")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 0)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Fatalf("gap at x=%d", x)
		}
	}
}

func TestFrame_Point(t *testing.T) {
	c := NewCanvas(10, 5)
	f := c.Frame(0, 100, 0, 10)
	x, y := f.Point(0, 10)
	if x != 0 || y != 0 {
		t.Errorf("top-left = (%d,%d)", x, y)
	}
	x, y = f.Point(100, 0)
	if x != c.PixelWidth()-1 || y != c.PixelHeight()-1 {
		t.Errorf("bottom-right = (%d,%d)", x, y)
	}
}

func TestCanvas_Stem(t *testing.T) {
	c := NewCanvas(10, 5)
	f := c.Frame(0, 10, 0, 10)
	c.Stem(f, 0, 0, 10)
	for y := 0; y < c.PixelHeight(); y++ {
		if !c.IsSet(0, y) {
			t.Fatalf("stem gap at y=%d", y)
		}
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	e, err := instrument.NewRegistry().Engine("afm", 3)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(e, Options{FPS: 60, OutDir: t.TempDir()})
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TickAdvancesEngine(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		next, cmd := m.Update(TickMsg(time.Now()))
		if cmd == nil {
			t.Fatal("tick did not reschedule")
		}
		m = next.(Model)
	}
	if got := m.engine.Snapshot().Tick; got != 5 {
		t.Errorf("engine tick = %d, want 5", got)
	}
}

func TestModel_PauseStopsTicks(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(key(" "))
	m = next.(Model)
	if m.engine.Scanning() {
		t.Fatal("space should pause")
	}
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.engine.Snapshot().Tick != 0 {
		t.Error("paused engine advanced")
	}
}

func TestModel_AdjustParam(t *testing.T) {
	m := newTestModel(t)
	name := m.paramKeys[m.selected]
	before := m.engine.Params()[name]

	next, _ := m.Update(key("k"))
	m = next.(Model)
	after := m.engine.Params()[name]
	if before != 0 && after <= before {
		t.Errorf("%s: %g -> %g, want increase", name, before, after)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.selected != 1 {
		t.Errorf("selected = %d after tab", m.selected)
	}
}

func TestModel_TogglesSwitchParams(t *testing.T) {
	tests := []struct {
		inst  string
		param string
	}{
		{"kpfm", "resolution"},
		{"resiscope", "clamp"},
	}

	for _, tt := range tests {
		t.Run(tt.inst, func(t *testing.T) {
			e, err := instrument.NewRegistry().Engine(tt.inst, 3)
			if err != nil {
				t.Fatal(err)
			}
			m := NewModel(e, Options{FPS: 60, OutDir: t.TempDir()})
			for m.paramKeys[m.selected] != tt.param {
				next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
				m = next.(Model)
			}
			start := e.Params()[tt.param]
			for i, k := range []string{"k", "j", "k"} {
				next, _ := m.Update(key(k))
				m = next.(Model)
				want := 1 - start
				if i%2 == 1 {
					want = start
				}
				if got := e.Params()[tt.param]; got != want {
					t.Fatalf("after %q: %s = %v, want %v (status %q)", k, tt.param, got, want, m.status)
				}
			}
		})
	}
}

func TestModel_Reset(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 100; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	next, _ := m.Update(key("r"))
	m = next.(Model)
	if m.engine.Snapshot().Tick != 0 || m.engine.State().X != 0 {
		t.Error("reset did not rewind the scan")
	}
}

func TestModel_Save(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	next, _ = m.Update(key("s"))
	m = next.(Model)

	files, _ := filepath.Glob(filepath.Join(m.opts.OutDir, "afm_*_view.svg"))
	if len(files) != 1 {
		t.Fatalf("expected one view svg, got %v (status %q)", files, m.status)
	}
	data, _ := os.ReadFile(files[0])
	if !strings.Contains(string(data), "<svg") {
		t.Error("view file is not svg")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	out := m.View()
	for _, want := range []string{"AFM", "deformation", "setpoint"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModel_LongStatusTruncated(t *testing.T) {
	m := newTestModel(t)
	m.status = strings.Repeat("x", 200)
	if out := m.View(); strings.Contains(out, strings.Repeat("x", 60)) || !strings.Contains(out, "…") {
		t.Error("status line was not truncated")
	}
}
