package widget

import "github.com/vovakirdan/tui-tween/internal/core"

// Page is the root of a scene: a background color and children drawn in
// insertion order.
type Page struct {
	Title      string
	Background core.Color
	Foreground core.Color

	children []Widget
}

// NewPage creates an empty page.
func NewPage(title string, bg core.Color) *Page {
	return &Page{Title: title, Background: bg, Foreground: core.ColorWhite}
}

// Add appends a child. Later children draw on top.
func (p *Page) Add(w Widget) {
	p.children = append(p.children, w)
}

// Children returns the children in draw order.
func (p *Page) Children() []Widget {
	return p.children
}

// Draw clears s to the page colors and draws every child.
func (p *Page) Draw(s *core.Screen) {
	s.SetDefaultColors(p.Foreground, p.Background)
	s.Clear()
	for _, w := range p.children {
		w.Draw(s, p.Background)
	}
}
