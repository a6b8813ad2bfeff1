package core

// RuntimeConfig is what the platform layer hands to a scene at start-up.
type RuntimeConfig struct {
	ScreenW   int     // Screen width in characters
	ScreenH   int     // Screen height in characters
	TickRate  int     // Frames per second driving the scheduler (default 100)
	TimeScale float64 // Playback speed multiplier (default 1)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// 100 fps matches a 10ms frame interval.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  100,
		TimeScale: 1,
	}
}

// Normalize replaces invalid fields with their defaults.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	d := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	if c.TimeScale <= 0 {
		c.TimeScale = d.TimeScale
	}
	return c
}
