package scan

import (
	"context"
	"time"
)

// Runner schedules frames: one Tick followed by one Render. Stopping is
// cancelling the context; nothing inside a tick is cancellable.
type Runner struct {
	engine   *Engine
	renderer Renderer
	interval time.Duration
}

// NewRunner drives e at fps frames per second. A nil renderer only ticks.
func NewRunner(e *Engine, r Renderer, fps int) *Runner {
	if fps <= 0 {
		fps = 60
	}
	return &Runner{engine: e, renderer: r, interval: time.Second / time.Duration(fps)}
}

// Run ticks at the configured frame rate until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.frame(); err != nil {
				return err
			}
		}
	}
}

// RunFrames runs n frames back to back without pacing.
func (r *Runner) RunFrames(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := r.frame(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) frame() error {
	snap := r.engine.Tick()
	if r.renderer == nil {
		return nil
	}
	return r.renderer.Render(snap, r.engine.Profile())
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(s Snapshot, p *Profile) error

func (f RenderFunc) Render(s Snapshot, p *Profile) error { return f(s, p) }
