// Package widget holds the drawable objects that scenes animate.
//
// Widgets draw into a core.Screen. Every animatable attribute has a getter and
// a setter so property setters can reach it through small interfaces.
package widget

import (
	"github.com/vovakirdan/tui-tween/internal/core"
)

// Widget is anything a Page can draw. bg is the color behind the widget,
// used to blend translucent fills.
type Widget interface {
	Draw(s *core.Screen, bg core.Color)
}

// Button is a filled rectangle with optional border, rounded corners and a
// centered caption.
type Button struct {
	Name string
	Text string

	rect        core.Rect
	color       core.Color
	textColor   core.Color
	borderColor core.Color
	alpha       uint8
	border      int
	radius      int
}

// NewButton creates an opaque borderless button.
func NewButton(name string, rect core.Rect) *Button {
	return &Button{
		Name:        name,
		rect:        rect,
		color:       core.ColorBlue,
		textColor:   core.ColorWhite,
		borderColor: core.ColorWhite,
		alpha:       Opaque,
	}
}

func (b *Button) Bounds() core.Rect { return b.rect }

func (b *Button) Position() (int, int) { return b.rect.X, b.rect.Y }

func (b *Button) SetPosition(x, y int) {
	b.rect.X = x
	b.rect.Y = y
}

func (b *Button) Size() (int, int) { return b.rect.W, b.rect.H }

// SetSize resizes the button keeping its top-left corner. Negative sizes
// become zero.
func (b *Button) SetSize(w, h int) {
	b.rect.W = max(w, 0)
	b.rect.H = max(h, 0)
}

func (b *Button) Color() core.Color { return b.color }
func (b *Button) SetColor(c core.Color) { b.color = c }
func (b *Button) TextColor() core.Color { return b.textColor }
func (b *Button) SetTextColor(c core.Color) { b.textColor = c }

func (b *Button) BorderColor() core.Color { return b.borderColor }
func (b *Button) SetBorderColor(c core.Color) { b.borderColor = c }

func (b *Button) Alpha() uint8 { return b.alpha }
func (b *Button) SetAlpha(alpha uint8) { b.alpha = alpha }

func (b *Button) BorderWidth() int { return b.border }

// SetBorderWidth sets the outline weight: 0 none, 1 light, 2 heavy,
// 3 or more double.
func (b *Button) SetBorderWidth(w int) { b.border = max(w, 0) }

func (b *Button) Radius() int { return b.radius }

// SetRadius sets the corner radius. Every 4 units trim one more cell off
// each corner.
func (b *Button) SetRadius(r int) { b.radius = max(r, 0) }

// cornerCut returns how many diagonal cells are trimmed at each corner.
func (b *Button) cornerCut() int {
	return min(b.radius/4, min(b.rect.W, b.rect.H)/2)
}

func (b *Button) cut(x, y, n int) bool {
	if n == 0 {
		return false
	}
	dx := min(x-b.rect.X, b.rect.Right()-1-x)
	dy := min(y-b.rect.Y, b.rect.Bottom()-1-y)
	return dx+dy < n
}

func (b *Button) boxStyle(rounded bool) core.BoxStyle {
	switch {
	case b.border >= 3:
		return core.BoxDouble
	case b.border == 2:
		return core.BoxHeavy
	case rounded:
		return core.BoxRounded
	default:
		return core.BoxLight
	}
}

// Draw paints the button over bg.
func (b *Button) Draw(s *core.Screen, bg core.Color) {
	if b.rect.Empty() || b.alpha == 0 {
		return
	}

	fill := Blend(bg, b.color, b.alpha)
	fg := Blend(fill, b.textColor, b.alpha)
	n := b.cornerCut()

	area := b.rect.Intersect(s.Bounds())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if b.cut(x, y, n) {
				continue
			}
			s.SetCell(x, y, core.Cell{Rune: ' ', FG: fg, BG: fill})
		}
	}

	if b.border > 0 {
		s.DrawBoxStyle(b.rect, b.boxStyle(n > 0), Blend(fill, b.borderColor, b.alpha))
	}

	inner := b.rect
	if b.border > 0 {
		inner = inner.Inset(1)
	}
	if b.Text == "" || inner.Empty() {
		return
	}
	text := []rune(b.Text)
	if len(text) > inner.W {
		text = text[:inner.W]
	}
	x := inner.X + (inner.W-len(text))/2
	_, y := inner.Center()
	s.DrawTextColor(x, y, string(text), fg)
}
