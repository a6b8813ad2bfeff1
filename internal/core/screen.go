package core

import (
	"strings"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

// BoxStyle holds the runes used to outline a rectangle.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

// Box outlines, from thinnest to thickest, plus rounded corners.
var (
	BoxLight   = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}
	BoxHeavy   = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃'}
	BoxDouble  = BoxStyle{'╔', '╗', '╚', '╝', '═', '║'}
	BoxRounded = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
)

// Screen is a 2D cell buffer that widgets draw into.
// The platform layer turns it into styled terminal output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
	fg     Color
	bg     Color
}

// NewScreen creates a screen buffer with the given dimensions,
// white on black.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		fg:     ColorWhite,
		bg:     ColorBlack,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the screen area as a Rect at the origin.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// SetDefaultColors changes the colors Clear resets cells to.
func (s *Screen) SetDefaultColors(fg, bg Color) {
	s.fg = fg
	s.bg = bg
}

// Background returns the color Clear fills with.
func (s *Screen) Background() Color {
	return s.bg
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := 0; y < min(oldH, height); y++ {
		copy(s.cells[y][:min(oldW, width)], oldCells[y])
	}
}

// Clear resets every cell to a space in the default colors.
func (s *Screen) Clear() {
	blank := Cell{Rune: ' ', FG: s.fg, BG: s.bg}
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// Fill sets the rune of every cell, keeping colors.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x].Rune = r
		}
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a rune at the given position, keeping the cell colors.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if s.inside(x, y) {
		s.cells[y][x].Rune = r
	}
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if !s.inside(x, y) {
		return ' '
	}
	return s.cells[y][x].Rune
}

// SetCell replaces the cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if s.inside(x, y) {
		s.cells[y][x] = c
	}
}

// GetCell returns the cell at the given position.
// Out-of-bounds positions read as a blank default cell.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return Cell{Rune: ' ', FG: s.fg, BG: s.bg}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	col := x
	for _, r := range text {
		s.Set(col, y, r)
		col++
	}
}

// DrawTextColor writes text in the given foreground color,
// keeping each cell's background.
func (s *Screen) DrawTextColor(x, y int, text string, fg Color) {
	col := x
	for _, r := range text {
		if s.inside(col, y) {
			s.cells[y][col].Rune = r
			s.cells[y][col].FG = fg
		}
		col++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text)
}

// DrawRect fills a rectangular area with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill)
		}
	}
}

// FillRect paints a rectangle with blank cells of the given background.
func (s *Screen) FillRect(r Rect, bg Color) {
	r = r.Intersect(s.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.cells[y][x] = Cell{Rune: ' ', FG: s.cells[y][x].FG, BG: bg}
		}
	}
}

// DrawBox draws a light box outline, keeping cell colors.
func (s *Screen) DrawBox(r Rect) {
	if r.W < 2 || r.H < 2 {
		return
	}
	b := BoxLight

	s.Set(r.X, r.Y, b.TopLeft)
	s.Set(r.Right()-1, r.Y, b.TopRight)
	s.Set(r.X, r.Bottom()-1, b.BottomLeft)
	s.Set(r.Right()-1, r.Bottom()-1, b.BottomRight)

	s.DrawHLine(r.X+1, r.Y, r.W-2, b.Horizontal)
	s.DrawHLine(r.X+1, r.Bottom()-1, r.W-2, b.Horizontal)
	s.DrawVLine(r.X, r.Y+1, r.H-2, b.Vertical)
	s.DrawVLine(r.Right()-1, r.Y+1, r.H-2, b.Vertical)
}

// DrawBoxStyle outlines r with the given runes and foreground color.
// Boxes smaller than 2×2 are not drawn.
func (s *Screen) DrawBoxStyle(r Rect, b BoxStyle, fg Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	put := func(x, y int, ch rune) {
		if s.inside(x, y) {
			s.cells[y][x].Rune = ch
			s.cells[y][x].FG = fg
		}
	}

	put(r.X, r.Y, b.TopLeft)
	put(r.Right()-1, r.Y, b.TopRight)
	put(r.X, r.Bottom()-1, b.BottomLeft)
	put(r.Right()-1, r.Bottom()-1, b.BottomRight)

	for x := r.X + 1; x < r.Right()-1; x++ {
		put(x, r.Y, b.Horizontal)
		put(x, r.Bottom()-1, b.Horizontal)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		put(r.X, y, b.Vertical)
		put(r.Right()-1, y, b.Vertical)
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, r)
	}
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (s *Screen) DrawVLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x, y+i, r)
	}
}

// String returns the runes of the buffer without colors, rows joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
