// Package trace runs scenes headless with a fixed frame delta and records
// every value the property setters receive.
package trace

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tween/internal/anim"
	"github.com/vovakirdan/tui-tween/internal/config"
	"github.com/vovakirdan/tui-tween/internal/core"
	"github.com/vovakirdan/tui-tween/internal/scene"
	"github.com/vovakirdan/tui-tween/internal/storage"
)

// Defaults used when Options leave a field zero.
const (
	DefaultTicks = 300
	DefaultStep  = 10 * time.Millisecond
)

// Options configures a recording.
type Options struct {
	Ticks        int           // Frames to simulate
	Step         time.Duration // Delta per frame
	StopWhenDone bool          // End early once every animation has stopped
	Width        int           // Final frame size; defaults to core.DefaultConfig
	Height       int
	Logger       *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Ticks <= 0 {
		o.Ticks = DefaultTicks
	}
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	d := core.DefaultConfig()
	if o.Width <= 0 {
		o.Width = d.ScreenW
	}
	if o.Height <= 0 {
		o.Height = d.ScreenH
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Recorder collects samples through a scene setter wrapper.
type Recorder struct {
	tick    int
	samples []storage.Sample
}

// Wrap returns a setter that records each value before passing it on.
// It has the scene.SetterWrapper signature.
func (r *Recorder) Wrap(name string, inner anim.Setter) anim.Setter {
	return anim.SetterFunc(func(a *anim.Animation, v int32) {
		r.samples = append(r.samples, storage.Sample{Tick: r.tick, Animation: name, Value: v})
		inner.Apply(a, v)
	})
}

// SetTick sets the frame number stamped on following samples.
func (r *Recorder) SetTick(tick int) { r.tick = tick }

// Samples returns everything recorded so far.
func (r *Recorder) Samples() []storage.Sample { return r.samples }

// Result is a finished recording, ready for storage.
type Result struct {
	Run     storage.Run
	Samples []storage.Sample
}

// Record builds cfg on a fresh scheduler, starts it and advances it opts.Ticks
// times by opts.Step. Frames are numbered from 1.
func Record(cfg config.SceneConfig, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	rec := &Recorder{}
	sched := anim.NewScheduler(anim.WithLogger(opts.Logger))
	sc, err := scene.Build(cfg, sched, scene.WithSetterWrapper(rec.Wrap), scene.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	if len(sc.Bindings()) == 0 {
		return nil, errors.New("trace: scene has no animations")
	}

	sc.Start()
	ticks := 0
	for ticks < opts.Ticks {
		ticks++
		rec.SetTick(ticks)
		sched.Advance(opts.Step)
		if opts.StopWhenDone && sc.Done() {
			break
		}
	}

	screen := core.NewScreen(opts.Width, opts.Height)
	sc.Draw(screen)

	stats := sched.Stats()
	opts.Logger.Info("recorded scene", "scene", cfg.ID, "ticks", ticks, "samples", len(rec.Samples()), "passes", stats.Passes)

	return &Result{
		Run: storage.Run{
			SceneID:  cfg.ID,
			Title:    cfg.Title,
			Ticks:    ticks,
			Step:     opts.Step,
			Passes:   stats.Passes,
			Finished: sc.Done(),
			Frame:    screen.String(),
			Samples:  len(rec.Samples()),
		},
		Samples: rec.Samples(),
	}, nil
}

// Series groups samples by animation name, keeping order.
func Series(samples []storage.Sample) map[string][]storage.Sample {
	out := make(map[string][]storage.Sample)
	for _, s := range samples {
		out[s.Animation] = append(out[s.Animation], s)
	}
	return out
}
