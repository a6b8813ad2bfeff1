package widget

import "github.com/vovakirdan/tui-tween/internal/core"

// Label is a single line of text drawn over whatever is behind it.
type Label struct {
	Name string
	Text string

	x, y  int
	color core.Color
	alpha uint8
}

// NewLabel creates an opaque white label at (x, y).
func NewLabel(name string, x, y int, text string) *Label {
	return &Label{Name: name, Text: text, x: x, y: y, color: core.ColorWhite, alpha: Opaque}
}

func (l *Label) Position() (int, int) { return l.x, l.y }

func (l *Label) SetPosition(x, y int) {
	l.x = x
	l.y = y
}

func (l *Label) Color() core.Color { return l.color }

func (l *Label) SetColor(c core.Color) { l.color = c }

func (l *Label) Alpha() uint8 { return l.alpha }

func (l *Label) SetAlpha(alpha uint8) { l.alpha = alpha }

// Draw writes the text, blending its color toward the background of each
// cell it covers.
func (l *Label) Draw(s *core.Screen, _ core.Color) {
	if l.alpha == 0 {
		return
	}
	col := l.x
	for _, r := range l.Text {
		cell := s.GetCell(col, l.y)
		cell.Rune = r
		cell.FG = Blend(cell.BG, l.color, l.alpha)
		s.SetCell(col, l.y, cell)
		col++
	}
}
