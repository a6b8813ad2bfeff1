package anim

import (
	"math"
	"sort"
	"time"

	"github.com/tanema/gween/ease"
)

// Path maps the elapsed time of a pass onto a value in [start, end].
// Implementations must be pure and must return exactly start at elapsed 0
// and exactly end once elapsed reaches duration.
type Path func(start, end int32, elapsed, duration time.Duration) int32

// Built-in paths. The eased variants use the cubic family.
var (
	Linear    Path = linear
	EaseIn    Path = Curve(ease.InCubic)
	EaseOut   Path = Curve(ease.OutCubic)
	EaseInOut Path = Curve(ease.InOutCubic)
)

// progress returns elapsed/duration, reporting done=true at or past either end.
func progress(elapsed, duration time.Duration) (p float64, atStart, atEnd bool) {
	if duration <= 0 || elapsed >= duration {
		return 1, false, true
	}
	if elapsed <= 0 {
		return 0, true, false
	}
	return float64(elapsed) / float64(duration), false, false
}

// lerp scales a normalized factor onto the integer range.
// Rounds half away from zero and works in float64 so int32 extremes don't overflow.
func lerp(start, end int32, f float64) int32 {
	v := float64(start) + (float64(end)-float64(start))*f
	v = math.Round(v)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

func linear(start, end int32, elapsed, duration time.Duration) int32 {
	p, atStart, atEnd := progress(elapsed, duration)
	switch {
	case atEnd:
		return end
	case atStart:
		return start
	}
	return lerp(start, end, p)
}

// Curve lifts a gween easing function into a Path. The easing function is
// evaluated on normalized progress; the endpoints are pinned exactly.
func Curve(fn ease.TweenFunc) Path {
	return func(start, end int32, elapsed, duration time.Duration) int32 {
		p, atStart, atEnd := progress(elapsed, duration)
		switch {
		case atEnd:
			return end
		case atStart:
			return start
		}
		f := float64(fn(float32(p), 0, 1, 1))
		return lerp(start, end, f)
	}
}

// paths is the catalogue used by scene files.
var paths = map[string]Path{
	"linear":      Linear,
	"ease_in":     EaseIn,
	"ease_out":    EaseOut,
	"ease_in_out": EaseInOut,

	"in_quad":        Curve(ease.InQuad),
	"out_quad":       Curve(ease.OutQuad),
	"in_out_quad":    Curve(ease.InOutQuad),
	"in_cubic":       EaseIn,
	"out_cubic":      EaseOut,
	"in_out_cubic":   EaseInOut,
	"in_quart":       Curve(ease.InQuart),
	"out_quart":      Curve(ease.OutQuart),
	"in_out_quart":   Curve(ease.InOutQuart),
	"in_quint":       Curve(ease.InQuint),
	"out_quint":      Curve(ease.OutQuint),
	"in_out_quint":   Curve(ease.InOutQuint),
	"in_sine":        Curve(ease.InSine),
	"out_sine":       Curve(ease.OutSine),
	"in_out_sine":    Curve(ease.InOutSine),
	"in_expo":        Curve(ease.InExpo),
	"out_expo":       Curve(ease.OutExpo),
	"in_out_expo":    Curve(ease.InOutExpo),
	"in_circ":        Curve(ease.InCirc),
	"out_circ":       Curve(ease.OutCirc),
	"in_out_circ":    Curve(ease.InOutCirc),
	"in_back":        Curve(ease.InBack),
	"out_back":       Curve(ease.OutBack),
	"in_out_back":    Curve(ease.InOutBack),
	"in_elastic":     Curve(ease.InElastic),
	"out_elastic":    Curve(ease.OutElastic),
	"in_out_elastic": Curve(ease.InOutElastic),
	"in_bounce":      Curve(ease.InBounce),
	"out_bounce":     Curve(ease.OutBounce),
	"in_out_bounce":  Curve(ease.InOutBounce),
}

// PathByName looks up a path by its scene-file name.
func PathByName(name string) (Path, bool) {
	p, ok := paths[name]
	return p, ok
}

// PathNames returns all known path names, sorted.
func PathNames() []string {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
