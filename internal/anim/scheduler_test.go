package anim

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTickUsesClockDelta(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(WithClock(clock))
	a, rec := newTestAnim(t, s, 0, 100, time.Second)
	if n := len(s.Animations()); n != 0 {
		t.Fatalf("Animations() = %d entries before Start, expected 0", n)
	}
	a.Start()

	// First tick only records the time.
	s.Tick()
	clock.Advance(250 * time.Millisecond)
	s.Tick()
	clock.Advance(250 * time.Millisecond)
	s.Tick()

	expected := []int32{0, 25, 50}
	if !equalValues(rec.values, expected) {
		t.Errorf("setter values = %v, expected %v", rec.values, expected)
	}
}

func TestTickAtWithTimeScale(t *testing.T) {
	s := NewScheduler(WithTimeScale(2))
	a, rec := newTestAnim(t, s, 0, 100, time.Second)
	a.Start()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.TickAt(base)
	s.TickAt(base.Add(100 * time.Millisecond))

	if rec.last() != 20 {
		t.Errorf("value at 2x speed = %d, expected 20", rec.last())
	}

	s.SetTimeScale(0)
	if s.TimeScale() != 2 {
		t.Errorf("TimeScale() = %v after invalid set, expected 2", s.TimeScale())
	}
	s.SetTimeScale(0.5)
	s.TickAt(base.Add(300 * time.Millisecond))
	if rec.last() != 30 {
		t.Errorf("value at 0.5x speed = %d, expected 30", rec.last())
	}
}

func TestResetClockSkipsGap(t *testing.T) {
	clock := newFakeClock()
	s := NewScheduler(WithClock(clock))
	a, rec := newTestAnim(t, s, 0, 100, time.Second)
	a.Start()

	s.Tick()
	clock.Advance(100 * time.Millisecond)
	s.Tick()

	s.ResetClock()
	clock.Advance(time.Hour)
	s.Tick()
	clock.Advance(100 * time.Millisecond)
	s.Tick()

	if rec.last() != 20 {
		t.Errorf("value after reset = %d, expected 20", rec.last())
	}
}

func TestBackwardsClockCountsAsZero(t *testing.T) {
	s := NewScheduler()
	a, rec := newTestAnim(t, s, 0, 100, time.Second)
	a.Start()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.TickAt(base)
	s.TickAt(base.Add(-time.Minute))

	if rec.last() != 0 {
		t.Errorf("value after backwards tick = %d, expected 0", rec.last())
	}
	if a.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected 0", a.Elapsed())
	}
}

func TestAdvanceOrderFollowsStartOrder(t *testing.T) {
	s := NewScheduler()
	var order []string

	mk := func(name string) *Animation {
		a, err := s.NewAnimation()
		if err != nil {
			t.Fatalf("NewAnimation() failed: %v", err)
		}
		a.SetDuration(time.Second)
		a.SetValues(0, 10)
		a.SetSetter(SetterFunc(func(*Animation, int32) {
			order = append(order, name)
		}))
		return a
	}

	c := mk("c")
	b := mk("b")
	a := mk("a")
	b.Start()
	a.Start()
	c.Start()

	s.Advance(10 * time.Millisecond)

	expected := []string{"b", "a", "c"}
	if len(order) != len(expected) {
		t.Fatalf("order = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", order, expected)
		}
	}
}

func TestDestroyOtherFromFinishHook(t *testing.T) {
	s := NewScheduler()
	first, firstRec := newTestAnim(t, s, 0, 10, 100*time.Millisecond)
	second, secondRec := newTestAnim(t, s, 0, 10, time.Second)

	first.SetFinishCallback(func(*Animation) {
		second.Destroy()
	})
	first.Start()
	second.Start()

	s.Advance(100 * time.Millisecond)

	if len(secondRec.values) != 0 {
		t.Errorf("destroyed animation was advanced in the same tick: %v", secondRec.values)
	}
	if !second.Destroyed() {
		t.Error("second should be destroyed")
	}
	if firstRec.last() != 10 {
		t.Errorf("first value = %d, expected 10", firstRec.last())
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
	if s.Live() != 1 {
		t.Errorf("Live() = %d, expected 1", s.Live())
	}

	s.Advance(time.Second)
	if len(secondRec.values) != 0 {
		t.Errorf("destroyed animation advanced later: %v", secondRec.values)
	}
}

func TestDestroyEarlierFromLaterHook(t *testing.T) {
	s := NewScheduler()
	early, earlyRec := newTestAnim(t, s, 0, 100, time.Second)
	late, _ := newTestAnim(t, s, 0, 1, 10*time.Millisecond)
	late.SetRepeatCount(RepeatLoop)
	late.SetFinishCallback(func(*Animation) {
		early.Destroy()
	})
	early.Start()
	late.Start()

	s.Advance(10 * time.Millisecond)
	s.Advance(10 * time.Millisecond)

	if len(earlyRec.values) != 1 {
		t.Errorf("early values = %v, expected exactly one", earlyRec.values)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}

func TestSelfDestroyInFinishHook(t *testing.T) {
	s := NewScheduler()
	a, rec := newTestAnim(t, s, 0, 5, 10*time.Millisecond)
	a.SetRepeatCount(RepeatLoop)
	a.SetFinishCallback(func(a *Animation) {
		a.Destroy()
	})
	a.Start()

	s.Advance(10 * time.Millisecond)
	s.Advance(10 * time.Millisecond)

	if len(rec.values) != 1 {
		t.Errorf("values = %v, expected a single completion", rec.values)
	}
	if s.Len() != 0 || s.Live() != 0 {
		t.Errorf("Len() = %d, Live() = %d, expected 0 and 0", s.Len(), s.Live())
	}
}

func TestRestartInFinishHook(t *testing.T) {
	s := NewScheduler()
	a, rec := newTestAnim(t, s, 0, 10, 100*time.Millisecond)

	restarts := 0
	a.SetFinishCallback(func(a *Animation) {
		if restarts < 2 {
			restarts++
			a.Stop()
			a.SetValues(a.EndValue(), a.EndValue()+10)
			a.Start()
		}
	})
	a.Start()

	for i := 0; i < 5; i++ {
		s.Advance(100 * time.Millisecond)
	}

	expected := []int32{10, 20, 30}
	if !equalValues(rec.values, expected) {
		t.Errorf("setter values = %v, expected %v", rec.values, expected)
	}
	if a.State() != StateFinished {
		t.Errorf("State() = %v, expected Finished", a.State())
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestSelfStartInFinishHook(t *testing.T) {
	s := NewScheduler()
	a, rec := newTestAnim(t, s, 0, 10, 100*time.Millisecond)

	restarts := 0
	a.SetFinishCallback(func(a *Animation) {
		if restarts < 2 {
			restarts++
			a.SetValues(a.EndValue(), a.EndValue()+10)
			if err := a.Start(); err != nil {
				t.Errorf("Start() from finish hook failed: %v", err)
			}
		}
	})
	a.Start()

	for i := 0; i < 5; i++ {
		s.Advance(100 * time.Millisecond)
	}

	expected := []int32{10, 20, 30}
	if !equalValues(rec.values, expected) {
		t.Errorf("setter values = %v, expected %v", rec.values, expected)
	}
	if got := s.Stats().Passes; got != 3 {
		t.Errorf("Stats().Passes = %d, expected 3", got)
	}
	if a.State() != StateFinished {
		t.Errorf("State() = %v, expected Finished", a.State())
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestSelfStartInFinishHookResetsRepeats(t *testing.T) {
	s := NewScheduler()
	a, rec := newTestAnim(t, s, 0, 10, 100*time.Millisecond)
	a.SetRepeatCount(1)

	restarted := false
	a.SetFinishCallback(func(a *Animation) {
		if !restarted && a.Remaining() == 0 {
			restarted = true
			a.Start()
		}
	})
	a.Start()

	for i := 0; i < 6; i++ {
		s.Advance(100 * time.Millisecond)
	}

	// Two passes, then a fresh run of two more.
	if len(rec.values) != 4 {
		t.Errorf("setter values = %v, expected 4 completions", rec.values)
	}
	if a.State() != StateFinished {
		t.Errorf("State() = %v, expected Finished", a.State())
	}
}

func TestStartFromHookRunsNextTick(t *testing.T) {
	s := NewScheduler()
	trigger, _ := newTestAnim(t, s, 0, 1, 10*time.Millisecond)
	follow, followRec := newTestAnim(t, s, 0, 100, time.Second)

	trigger.SetFinishCallback(func(*Animation) {
		follow.Start()
	})
	trigger.Start()

	s.Advance(10 * time.Millisecond)
	if len(followRec.values) != 0 {
		t.Fatalf("animation started mid-tick was advanced in the same tick: %v", followRec.values)
	}
	if !follow.IsRunning() {
		t.Fatal("follow-up animation should be running")
	}

	s.Advance(500 * time.Millisecond)
	if followRec.last() != 50 {
		t.Errorf("follow-up value = %d, expected 50", followRec.last())
	}
}

func TestStartPausedFromHookRunsNextTick(t *testing.T) {
	s := NewScheduler()
	trigger, _ := newTestAnim(t, s, 0, 1, 10*time.Millisecond)
	follow, followRec := newTestAnim(t, s, 0, 100, time.Second)

	trigger.SetFinishCallback(func(*Animation) {
		follow.Start()
	})
	trigger.Start()
	// Paused entries keep their place in the list, after trigger.
	follow.Start()
	follow.Pause()

	s.Advance(10 * time.Millisecond)
	if len(followRec.values) != 0 {
		t.Fatalf("paused animation restarted mid-tick was advanced in the same tick: %v", followRec.values)
	}
	if !follow.IsRunning() {
		t.Fatal("follow-up animation should be running")
	}

	s.Advance(500 * time.Millisecond)
	if followRec.last() != 50 {
		t.Errorf("follow-up value = %d, expected 50", followRec.last())
	}
}

func TestStopStartLaterEntryFromHookRunsNextTick(t *testing.T) {
	s := NewScheduler()
	trigger, _ := newTestAnim(t, s, 0, 1, 10*time.Millisecond)
	follow, followRec := newTestAnim(t, s, 0, 100, time.Second)

	trigger.SetFinishCallback(func(*Animation) {
		follow.Stop()
		follow.Start()
	})
	trigger.Start()
	follow.Start()

	s.Advance(10 * time.Millisecond)
	if len(followRec.values) != 0 {
		t.Fatalf("restarted animation was advanced in the same tick: %v", followRec.values)
	}

	s.Advance(250 * time.Millisecond)
	if followRec.last() != 25 {
		t.Errorf("follow-up value = %d, expected 25", followRec.last())
	}
}

func TestNestedAdvanceIgnored(t *testing.T) {
	s := NewScheduler()
	a, rec := newTestAnim(t, s, 0, 100, time.Second)
	a.SetSetter(SetterFunc(func(a *Animation, v int32) {
		rec.Apply(a, v)
		s.Advance(500 * time.Millisecond)
	}))
	a.Start()

	s.Advance(100 * time.Millisecond)

	if !equalValues(rec.values, []int32{10}) {
		t.Errorf("setter values = %v, expected [10]", rec.values)
	}
	if got := s.Stats().Ticks; got != 1 {
		t.Errorf("Stats().Ticks = %d, expected 1", got)
	}
}

func TestPauseAllResumeAllStopAll(t *testing.T) {
	s := NewScheduler()
	a, aRec := newTestAnim(t, s, 0, 100, time.Second)
	b, bRec := newTestAnim(t, s, 100, 0, time.Second)
	a.Start()
	b.Start()

	s.Advance(100 * time.Millisecond)
	s.PauseAll()
	s.Advance(time.Second)

	if aRec.last() != 10 || bRec.last() != 90 {
		t.Errorf("values while paused = %d, %d, expected 10, 90", aRec.last(), bRec.last())
	}

	s.ResumeAll()
	s.Advance(100 * time.Millisecond)
	if aRec.last() != 20 || bRec.last() != 80 {
		t.Errorf("values after resume = %d, %d, expected 20, 80", aRec.last(), bRec.last())
	}

	s.StopAll()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after StopAll, expected 0", s.Len())
	}
	if a.State() != StateFinished || b.State() != StateFinished {
		t.Errorf("states after StopAll = %v, %v, expected Finished", a.State(), b.State())
	}
}

func TestStats(t *testing.T) {
	s := NewScheduler()
	once, _ := newTestAnim(t, s, 0, 1, 10*time.Millisecond)
	loop, _ := newTestAnim(t, s, 0, 1, 10*time.Millisecond)
	loop.SetRepeatCount(RepeatLoop)
	newTestAnim(t, s, 0, 1, 10*time.Millisecond)

	once.Start()
	loop.Start()
	for i := 0; i < 3; i++ {
		s.Advance(10 * time.Millisecond)
	}

	st := s.Stats()
	if st.Ticks != 3 {
		t.Errorf("Ticks = %d, expected 3", st.Ticks)
	}
	if st.Passes != 4 {
		t.Errorf("Passes = %d, expected 4", st.Passes)
	}
	if st.Finished != 1 {
		t.Errorf("Finished = %d, expected 1", st.Finished)
	}
	if st.Live != 3 {
		t.Errorf("Live = %d, expected 3", st.Live)
	}
	if st.Running != 1 {
		t.Errorf("Running = %d, expected 1", st.Running)
	}
}

func TestUnlimitedCapacityByDefault(t *testing.T) {
	s := NewScheduler()
	for i := 0; i < 1000; i++ {
		if _, err := s.NewAnimation(); err != nil {
			t.Fatalf("NewAnimation() #%d failed: %v", i, err)
		}
	}
	if s.Live() != 1000 {
		t.Errorf("Live() = %d, expected 1000", s.Live())
	}
}
