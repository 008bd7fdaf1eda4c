package scan

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/probesim/internal/recorder"
)

// DefaultSpeed is the speed multiplier applied when a setup leaves it zero.
const DefaultSpeed = 1.0

// Setup is everything an engine is constructed from.
type Setup struct {
	Name      string
	Length    int
	Seed      int64
	Speed     float64
	Cycle     CycleConfig
	Generator Generator
	Tip       TipModel
	Recorder  recorder.Options
}

// Engine owns one instrument: its profile, scan state and recorder.
type Engine struct {
	setup    Setup
	speed    float64
	profile  *Profile
	state    ScanState
	rec      *recorder.Buffer
	last     Snapshot
	ticks    int
	ready    bool
	disposed bool
}

// New validates a setup. The profile is not generated until Init.
func New(s Setup) (*Engine, error) {
	if s.Generator == nil {
		return nil, ErrNoGenerator
	}
	if s.Tip == nil {
		return nil, ErrNoTipModel
	}
	if s.Length <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEmptyProfile, s.Length)
	}
	if err := s.Cycle.Table.Validate(); err != nil {
		return nil, err
	}
	if err := checkParamNames(s.Generator, s.Tip); err != nil {
		return nil, err
	}
	if s.Cycle.Increment <= 0 {
		return nil, fmt.Errorf("%w: cycle increment must be positive, got %g", ErrParameterBounds, s.Cycle.Increment)
	}
	if s.Speed <= 0 {
		s.Speed = DefaultSpeed
	}
	s.Cycle.Length = float64(s.Length)

	return &Engine{
		setup: s,
		speed: s.Speed,
		rec:   recorder.New(s.Recorder),
	}, nil
}

// Init generates the profile and rewinds the scan to the first position.
func (e *Engine) Init() {
	e.mustLive()
	e.regenerate()
	e.state = ScanState{Scanning: true}
	e.rec.Reset()
	e.ticks = 0
	e.ready = true
	e.refresh(Events{})
}

// Tick advances the state machine one frame and returns the new snapshot.
// While scanning is off the previous snapshot is returned unchanged.
func (e *Engine) Tick() Snapshot {
	e.mustReady()
	if !e.state.Scanning {
		return e.last
	}

	ev := e.state.Advance(e.setup.Cycle, e.speed)
	if ev.CycleWrapped && e.rec.Options().DoubleBuffered {
		e.rec.Commit()
	}
	if ev.LineWrapped {
		e.rec.ResetLive()
	}

	e.ticks++
	snap := e.refresh(ev)
	if snap.Tip.Record {
		e.rec.Append(snap.Record())
	}
	return snap
}

func (e *Engine) refresh(ev Events) Snapshot {
	table := e.setup.Cycle.Table
	state, frac := table.Lookup(e.state.CyclePhase)
	cyc := CycleState{Phase: e.state.CyclePhase, State: state, Fraction: frac}

	tip := e.setup.Tip.Compute(e.profile, e.state.X, cyc)
	e.last = Snapshot{
		Tick:       e.ticks,
		X:          e.state.X,
		Index:      e.profile.IndexOf(e.state.X),
		CyclePhase: e.state.CyclePhase,
		Scanning:   e.state.Scanning,
		Tip:        tip,
		Events:     ev,
	}
	return e.last
}

func (e *Engine) regenerate() {
	rng := rand.New(rand.NewSource(e.setup.Seed))
	p := e.setup.Generator.Generate(e.setup.Length, rng)
	if p == nil || p.Len() != e.setup.Length {
		panic(fmt.Sprintf("scan: generator for %s returned a profile of the wrong length", e.setup.Name))
	}
	e.profile = p
	if prep, ok := e.setup.Tip.(Preparer); ok {
		prep.Prepare(p)
	}
}

// checkParamNames rejects setups where one parameter name would reach two
// owners, or shadow the engine's own speed.
func checkParamNames(gen Generator, tip TipModel) error {
	owner := map[string]string{"speed": "engine"}
	for _, part := range []struct {
		label string
		v     any
	}{{"generator", gen}, {"tip model", tip}} {
		c, ok := part.v.(Configurable)
		if !ok {
			continue
		}
		for name := range c.GetParams() {
			if prev, dup := owner[name]; dup {
				return fmt.Errorf("%w: parameter %q owned by both %s and %s", ErrBadSetup, name, prev, part.label)
			}
			owner[name] = part.label
		}
	}
	return nil
}

// UpdateConfig routes a named parameter to its owner. Generator parameters
// regenerate the whole profile; the change is visible on the next tick.
func (e *Engine) UpdateConfig(name string, value float64) error {
	e.mustLive()
	if name == "speed" {
		if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: speed must be positive and finite, got %g", ErrParameterBounds, value)
		}
		e.speed = value
		return nil
	}

	if c, ok := e.setup.Generator.(Configurable); ok {
		if _, owns := c.GetParams()[name]; owns {
			if err := c.SetParam(name, value); err != nil {
				return err
			}
			if e.ready {
				e.regenerate()
				e.refresh(Events{})
			}
			return nil
		}
	}

	if c, ok := e.setup.Tip.(Configurable); ok {
		if _, owns := c.GetParams()[name]; owns {
			if err := c.SetParam(name, value); err != nil {
				return err
			}
			if e.ready {
				e.refresh(Events{})
			}
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnknownParam, name)
}

// Params merges the engine, generator and tip parameters.
func (e *Engine) Params() map[string]float64 {
	out := map[string]float64{"speed": e.speed}
	for _, part := range []any{e.setup.Generator, e.setup.Tip} {
		if c, ok := part.(Configurable); ok {
			for k, v := range c.GetParams() {
				out[k] = v
			}
		}
	}
	return out
}

// ParamNames returns the parameter names in sorted order.
func (e *Engine) ParamNames() []string {
	params := e.Params()
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) SetScanning(on bool) {
	e.state.Scanning = on
	e.last.Scanning = on
}

func (e *Engine) Scanning() bool { return e.state.Scanning }

// Reset rewinds to the first position and clears every recording,
// keeping the current profile and parameters.
func (e *Engine) Reset() {
	e.mustReady()
	scanning := e.state.Scanning
	e.state = ScanState{Scanning: scanning}
	e.rec.Reset()
	e.ticks = 0
	e.refresh(Events{})
}

// Dispose releases the profile and recordings. The engine is unusable after.
func (e *Engine) Dispose() {
	e.profile = nil
	e.rec = nil
	e.ready = false
	e.disposed = true
}

func (e *Engine) Name() string               { return e.setup.Name }
func (e *Engine) Setup() Setup               { return e.setup }
func (e *Engine) Speed() float64             { return e.speed }
func (e *Engine) Profile() *Profile          { return e.profile }
func (e *Engine) State() ScanState           { return e.state }
func (e *Engine) Snapshot() Snapshot         { return e.last }
func (e *Engine) Recorder() *recorder.Buffer { return e.rec }

// Progress is the fraction of the current scan line already covered.
func (e *Engine) Progress() float64 {
	return e.state.X / float64(e.setup.Length)
}

func (e *Engine) mustLive() {
	if e.disposed {
		panic("scan: engine used after Dispose")
	}
}

func (e *Engine) mustReady() {
	e.mustLive()
	if !e.ready {
		panic("scan: engine used before Init")
	}
}
