package anim

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Clock provides the current time to the scheduler.
// Tests substitute a controllable implementation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock is the default Clock, backed by the monotonic wall clock.
var SystemClock Clock = systemClock{}

// Stats summarizes scheduler activity.
type Stats struct {
	Ticks    uint64 // Advance calls that ran
	Passes   uint64 // Completed passes across all animations
	Finished uint64 // Animations that ran out of repeats
	Live     int    // Created and not yet destroyed
	Running  int    // Currently registered
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the time source used by Tick.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithCapacity limits the number of live animations. Zero means unlimited.
func WithCapacity(n int) Option {
	return func(s *Scheduler) {
		s.capacity = n
	}
}

// WithTimeScale multiplies real-time deltas measured by Tick and TickAt.
func WithTimeScale(scale float64) Option {
	return func(s *Scheduler) {
		s.SetTimeScale(scale)
	}
}

// Scheduler owns a set of animations and advances the running ones on every
// tick, in the order they were started.
type Scheduler struct {
	clock    Clock
	logger   *log.Logger
	capacity int
	scale    float64

	// list holds registered animations plus, during a pass, ones that were
	// deregistered and are waiting to be compacted out.
	list      []*Animation
	advancing bool
	pass      uint64
	last      time.Time
	live      int
	stats     Stats
}

// NewScheduler creates an empty scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock: SystemClock,
		scale: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// NewAnimation allocates an animation owned by this scheduler.
// It returns ErrNoCapacity when the live animation limit is reached.
func (s *Scheduler) NewAnimation() (*Animation, error) {
	if s.capacity > 0 && s.live >= s.capacity {
		s.logger.Warn("animation capacity exhausted", "capacity", s.capacity)
		return nil, ErrNoCapacity
	}
	s.live++
	return &Animation{
		sched:  s,
		path:   Linear,
		repeat: RepeatNone,
		state:  StateCreated,
	}, nil
}

// Tick advances all running animations by the time elapsed since the
// previous tick, read from the scheduler's clock.
func (s *Scheduler) Tick() {
	s.TickAt(s.clock.Now())
}

// TickAt advances all running animations by the time elapsed between the
// previous tick and now. The first tick after construction or ResetClock
// only records the time.
func (s *Scheduler) TickAt(now time.Time) {
	var delta time.Duration
	if !s.last.IsZero() {
		delta = now.Sub(s.last)
	}
	s.last = now
	if s.scale != 1 {
		delta = time.Duration(float64(delta) * s.scale)
	}
	s.Advance(delta)
}

// ResetClock forgets the previous tick time, so the next Tick advances by zero.
// Call it after the frame loop was suspended.
func (s *Scheduler) ResetClock() {
	s.last = time.Time{}
}

// Advance moves every running animation forward by delta. Negative deltas
// count as zero. Animations started during the pass are first advanced on
// the next call, wherever they sit in the list. Animations stopped or
// destroyed during the pass are not advanced again. Calling Advance from
// inside a callback is ignored.
func (s *Scheduler) Advance(delta time.Duration) {
	if s.advancing {
		s.logger.Warn("nested advance ignored")
		return
	}
	if delta < 0 {
		delta = 0
	}

	s.advancing = true
	s.pass++
	n := len(s.list)
	for i := 0; i < n; i++ {
		a := s.list[i]
		if !a.registered || a.state != StateRunning || a.startedIn == s.pass {
			continue
		}
		a.tick(delta)
	}
	s.advancing = false

	s.compact()
	s.stats.Ticks++
}

// SetTimeScale sets the real-time multiplier used by Tick and TickAt.
// Non-positive values are ignored.
func (s *Scheduler) SetTimeScale(scale float64) {
	if scale > 0 {
		s.scale = scale
	}
}

// TimeScale returns the real-time multiplier.
func (s *Scheduler) TimeScale() float64 {
	return s.scale
}

// Len returns the number of registered animations, paused ones included.
func (s *Scheduler) Len() int {
	n := 0
	for _, a := range s.list {
		if a.registered {
			n++
		}
	}
	return n
}

// Live returns the number of animations created and not yet destroyed.
func (s *Scheduler) Live() int {
	return s.live
}

// Animations returns the registered animations in advance order.
func (s *Scheduler) Animations() []*Animation {
	out := make([]*Animation, 0, len(s.list))
	for _, a := range s.list {
		if a.registered {
			out = append(out, a)
		}
	}
	return out
}

// PauseAll pauses every running animation.
func (s *Scheduler) PauseAll() {
	for _, a := range s.Animations() {
		a.Pause()
	}
}

// ResumeAll resumes every paused animation.
func (s *Scheduler) ResumeAll() {
	for _, a := range s.Animations() {
		a.Resume()
	}
}

// StopAll stops every registered animation.
func (s *Scheduler) StopAll() {
	for _, a := range s.Animations() {
		a.Stop()
	}
}

// Stats returns a snapshot of scheduler counters.
func (s *Scheduler) Stats() Stats {
	st := s.stats
	st.Live = s.live
	st.Running = s.Len()
	return st
}

// currentPass returns the number of the pass in progress, or 0 between passes.
func (s *Scheduler) currentPass() uint64 {
	if !s.advancing {
		return 0
	}
	return s.pass
}

func (s *Scheduler) register(a *Animation) {
	a.registered = true
	if !a.listed {
		a.listed = true
		s.list = append(s.list, a)
	}
	s.logger.Debug("animation started", "running", s.Len())
}

func (s *Scheduler) deregister(a *Animation) {
	if !a.registered {
		return
	}
	a.registered = false
	if !s.advancing {
		s.compact()
	}
}

func (s *Scheduler) release(a *Animation) {
	if !a.destroyed && s.live > 0 {
		s.live--
	}
}

// compact drops deregistered entries, keeping the order of the rest.
func (s *Scheduler) compact() {
	kept := s.list[:0]
	for _, a := range s.list {
		if a.registered {
			kept = append(kept, a)
			continue
		}
		a.listed = false
	}
	for i := len(kept); i < len(s.list); i++ {
		s.list[i] = nil
	}
	s.list = kept
}
