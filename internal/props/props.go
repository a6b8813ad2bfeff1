// Package props implements the animatable widget properties and registers
// them with the property registry.
//
// Each property reaches its target through a small capability interface.
// Targets that lack the capability are left alone.
package props

import (
	"github.com/vovakirdan/tui-tween/internal/anim"
	"github.com/vovakirdan/tui-tween/internal/core"
	"github.com/vovakirdan/tui-tween/internal/registry"
	"github.com/vovakirdan/tui-tween/internal/widget"
)

// Mover is a target with a top-left position.
type Mover interface {
	Position() (x, y int)
	SetPosition(x, y int)
}

// Sizer is a target with a width and height.
type Sizer interface {
	Size() (w, h int)
	SetSize(w, h int)
}

// Fader is a target with opacity.
type Fader interface {
	SetAlpha(alpha uint8)
}

// Tinter is a target with a main color.
type Tinter interface {
	SetColor(c core.Color)
}

// Bordered is a target with an outline weight.
type Bordered interface {
	SetBorderWidth(w int)
}

// Rounded is a target with a corner radius.
type Rounded interface {
	SetRadius(r int)
}

// Resizable can both move and resize.
type Resizable interface {
	Mover
	Sizer
}

// property is a registry.Property backed by a plain function.
type property struct {
	kind  string
	title string
	set   func(target any, v int)
}

func (p *property) Kind() string  { return p.kind }
func (p *property) Title() string { return p.title }

func (p *property) Apply(a *anim.Animation, v int32) {
	if t := a.Target(); t != nil {
		p.set(t, int(v))
	}
}

// HueStep is the number of degrees per animated unit, so 0..120 sweeps the
// full color wheel.
const HueStep = 3

var all = []*property{
	{"x", "horizontal position", setX},
	{"y", "vertical position", setY},
	{"size", "width and height, anchored top-left", setSize},
	{"width", "width", setWidth},
	{"height", "height", setHeight},
	{"alpha", "opacity 0-255", setAlpha},
	{"hue", "color hue, 3 degrees per unit", setHue},
	{"border", "border weight", setBorder},
	{"radius", "corner radius", setRadius},
	{"center_expand", "square size, anchored at the center", setCenterExpand},
}

func init() {
	for _, p := range all {
		registry.Register(p.kind, func() registry.Property {
			return &property{kind: p.kind, title: p.title, set: p.set}
		})
	}
}

func setX(t any, v int) {
	if m, ok := t.(Mover); ok {
		_, y := m.Position()
		m.SetPosition(v, y)
	}
}

func setY(t any, v int) {
	if m, ok := t.(Mover); ok {
		x, _ := m.Position()
		m.SetPosition(x, v)
	}
}

func setSize(t any, v int) {
	if s, ok := t.(Sizer); ok {
		s.SetSize(v, v)
	}
}

func setWidth(t any, v int) {
	if s, ok := t.(Sizer); ok {
		_, h := s.Size()
		s.SetSize(v, h)
	}
}

func setHeight(t any, v int) {
	if s, ok := t.(Sizer); ok {
		w, _ := s.Size()
		s.SetSize(w, v)
	}
}

func setAlpha(t any, v int) {
	if f, ok := t.(Fader); ok {
		f.SetAlpha(uint8(core.Clamp(v, 0, widget.Opaque)))
	}
}

func setHue(t any, v int) {
	if c, ok := t.(Tinter); ok {
		c.SetColor(widget.Hue(float64(v * HueStep)))
	}
}

func setBorder(t any, v int) {
	if b, ok := t.(Bordered); ok {
		b.SetBorderWidth(max(v, 0))
	}
}

func setRadius(t any, v int) {
	if r, ok := t.(Rounded); ok {
		r.SetRadius(max(v, 0))
	}
}

// setCenterExpand resizes to a v×v square around the current center.
func setCenterExpand(t any, v int) {
	r, ok := t.(Resizable)
	if !ok {
		return
	}
	x, y := r.Position()
	w, h := r.Size()
	cx, cy := core.NewRect(x, y, w, h).Center()

	v = max(v, 0)
	next := core.RectAround(cx, cy, v, v)
	r.SetPosition(next.X, next.Y)
	r.SetSize(next.W, next.H)
}
