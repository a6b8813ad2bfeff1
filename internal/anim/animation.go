// Package anim is a frame-driven property animation engine.
//
// An Animation interpolates a signed integer between a start and an end value
// over a duration, feeding every computed value to a Setter that applies it to
// an opaque target. Animations are owned by an explicitly constructed
// Scheduler, which the surrounding frame loop advances once per tick.
//
// The engine is single-threaded: a Scheduler and its animations must only be
// touched from the goroutine that drives it.
package anim

import (
	"errors"
	"time"
)

// Repeat policies accepted by SetRepeatCount. Any positive count is a finite
// number of extra passes after the first one.
const (
	RepeatNone = 0
	RepeatLoop = -1
)

var (
	// ErrNoCapacity is returned by NewAnimation when the scheduler has no free slot.
	ErrNoCapacity = errors.New("anim: no capacity for new animation")

	// ErrDestroyed is returned by Start on an animation that was destroyed.
	ErrDestroyed = errors.New("anim: animation destroyed")
)

// State is the lifecycle state of an animation.
type State int

const (
	StateCreated State = iota
	StateRunning
	StatePaused
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Setter applies a computed value to the animation's target.
// It is called at most once per tick and must not block.
type Setter interface {
	Apply(a *Animation, value int32)
}

// SetterFunc adapts an ordinary function to the Setter interface.
type SetterFunc func(a *Animation, value int32)

// Apply calls f(a, value).
func (f SetterFunc) Apply(a *Animation, value int32) {
	f(a, value)
}

// FinishFunc is called once per completed pass, before the repeat policy is
// evaluated. It may rewrite start/end values and the repeat count, and may
// stop, destroy or start any animation, including a.
type FinishFunc func(a *Animation)

// Reverse swaps the start and end values. Used as a finish hook together with
// RepeatLoop it makes the animation bounce back and forth forever.
func Reverse(a *Animation) {
	a.start, a.end = a.end, a.start
}

// Animation is a single property animation. Create it with
// Scheduler.NewAnimation, configure it, then call Start.
type Animation struct {
	sched *Scheduler

	target   any
	userData any

	start    int32
	end      int32
	duration time.Duration
	delay    time.Duration

	path   Path
	setter Setter
	finish FinishFunc

	repeat    int
	remaining int

	state     State
	elapsed   time.Duration
	delayLeft time.Duration
	value     int32
	passes    int
	runs      int

	// completing is true while the finish hook of a pass runs.
	completing bool
	// startedIn is the scheduler pass Start was called in, 0 outside a pass.
	startedIn uint64

	// registered is true while the scheduler should advance this animation.
	// listed is true while it occupies an entry in the scheduler's list,
	// which can lag behind registered until the list is compacted.
	registered bool
	listed     bool
	destroyed  bool
}

// SetTarget sets the object being animated. The animation does not own it.
func (a *Animation) SetTarget(target any) { a.target = target }

// Target returns the object being animated.
func (a *Animation) Target() any { return a.target }

// SetUserData attaches an opaque value for callbacks.
func (a *Animation) SetUserData(data any) { a.userData = data }

// UserData returns the value set by SetUserData.
func (a *Animation) UserData() any { return a.userData }

// SetDuration sets the length of one pass. Negative durations are treated as 0,
// which makes every pass complete on the tick it starts.
func (a *Animation) SetDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	a.duration = d
}

// Duration returns the length of one pass.
func (a *Animation) Duration() time.Duration { return a.duration }

// SetDelay sets how long Start waits before the first pass begins.
func (a *Animation) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	a.delay = d
}

// Delay returns the start delay.
func (a *Animation) Delay() time.Duration { return a.delay }

// SetStartValue sets the value at the beginning of a pass.
func (a *Animation) SetStartValue(v int32) { a.start = v }

// StartValue returns the value at the beginning of a pass.
func (a *Animation) StartValue() int32 { return a.start }

// SetEndValue sets the value at the end of a pass.
func (a *Animation) SetEndValue(v int32) { a.end = v }

// EndValue returns the value at the end of a pass.
func (a *Animation) EndValue() int32 { return a.end }

// SetValues sets both ends of the range.
func (a *Animation) SetValues(start, end int32) {
	a.start = start
	a.end = end
}

// SetPath sets the interpolation function. A nil path restores Linear.
func (a *Animation) SetPath(p Path) {
	if p == nil {
		p = Linear
	}
	a.path = p
}

// SetSetter sets the function that applies values to the target.
func (a *Animation) SetSetter(s Setter) { a.setter = s }

// SetFinishCallback sets the hook run after each completed pass.
func (a *Animation) SetFinishCallback(fn FinishFunc) { a.finish = fn }

// SetRepeatCount sets the repeat policy: RepeatNone, a positive number of
// extra passes, or RepeatLoop. Any negative count means loop forever.
// Changing it while running also resets the passes remaining.
func (a *Animation) SetRepeatCount(n int) {
	if n < 0 {
		n = RepeatLoop
	}
	a.repeat = n
	a.remaining = n
}

// RepeatCount returns the configured repeat policy.
func (a *Animation) RepeatCount() int { return a.repeat }

// Remaining returns how many repeats are left in the current run.
// It is RepeatLoop for looping animations.
func (a *Animation) Remaining() int { return a.remaining }

// State returns the lifecycle state.
func (a *Animation) State() State { return a.state }

// Elapsed returns the time spent in the current pass.
func (a *Animation) Elapsed() time.Duration { return a.elapsed }

// Value returns the last value handed to the setter.
func (a *Animation) Value() int32 { return a.value }

// Passes returns the number of passes completed since the last Start.
func (a *Animation) Passes() int { return a.passes }

// IsRunning reports whether the animation is registered and advancing.
func (a *Animation) IsRunning() bool { return a.state == StateRunning }

// Destroyed reports whether Destroy has been called.
func (a *Animation) Destroyed() bool { return a.destroyed }

// Start resets the clock and registers the animation with its scheduler.
// Starting a running animation is a no-op, except from its own finish hook,
// where it begins a fresh run.
func (a *Animation) Start() error {
	if a.destroyed {
		return ErrDestroyed
	}
	if a.state == StateRunning && !a.completing {
		return nil
	}

	a.elapsed = 0
	a.delayLeft = a.delay
	a.remaining = a.repeat
	a.passes = 0
	a.runs++
	a.state = StateRunning
	a.startedIn = a.sched.currentPass()
	a.sched.register(a)
	return nil
}

// Stop deregisters the animation without running the finish hook.
// Stopping an animation that is not running is a no-op.
func (a *Animation) Stop() {
	if a.state != StateRunning && a.state != StatePaused {
		return
	}
	a.state = StateFinished
	a.sched.deregister(a)
}

// Pause freezes a running animation. It stays registered.
func (a *Animation) Pause() {
	if a.state == StateRunning {
		a.state = StatePaused
	}
}

// Resume continues a paused animation from where it stopped.
func (a *Animation) Resume() {
	if a.state == StatePaused {
		a.state = StateRunning
	}
}

// Destroy deregisters the animation, frees its scheduler slot and drops the
// references it holds. The animation must not be used afterwards.
func (a *Animation) Destroy() {
	if a.destroyed {
		return
	}
	if a.state == StateRunning || a.state == StatePaused {
		a.state = StateFinished
	}
	a.sched.deregister(a)
	a.sched.release(a)
	a.destroyed = true

	a.target = nil
	a.userData = nil
	a.setter = nil
	a.finish = nil
}

// tick advances the animation by delta. Only the scheduler calls it.
func (a *Animation) tick(delta time.Duration) {
	if a.delayLeft > 0 {
		if delta < a.delayLeft {
			a.delayLeft -= delta
			return
		}
		delta -= a.delayLeft
		a.delayLeft = 0
	}

	a.elapsed += delta
	if a.elapsed < a.duration {
		a.apply(a.path(a.start, a.end, a.elapsed, a.duration))
		return
	}

	// Anything past the end of the pass is dropped: at most one completion per tick.
	a.elapsed = a.duration
	a.complete()
}

// complete runs the pass-boundary protocol: exact end value, finish hook,
// then the repeat decision.
func (a *Animation) complete() {
	a.apply(a.end)
	a.passes++
	a.sched.stats.Passes++

	run := a.runs
	if a.finish != nil {
		a.completing = true
		a.finish(a)
		a.completing = false
	}

	// A hook that stopped, destroyed or restarted the animation has the last word.
	if a.destroyed || !a.registered || a.state == StateFinished || a.runs != run {
		return
	}

	switch {
	case a.repeat < 0:
		a.elapsed = 0
	case a.remaining > 0:
		a.remaining--
		a.elapsed = 0
	default:
		a.state = StateFinished
		a.sched.stats.Finished++
		a.sched.deregister(a)
		a.sched.logger.Debug("animation finished", "passes", a.passes)
	}
}

func (a *Animation) apply(v int32) {
	a.value = v
	if a.setter != nil {
		a.setter.Apply(a, v)
	}
}
