package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes s starting at (x, y), returns the column after the last rune
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += max(1, runewidth.RuneWidth(r))
	}
	return x
}

// fillRect paints a rectangle with spaces
func fillRect(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// drawBox draws a single-line frame around the rectangle and fills its inside
func drawBox(s tcell.Screen, x, y, w, h int, border, fill tcell.Style) {
	fillRect(s, x+1, y+1, w-2, h-2, fill)
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, '─', nil, border)
		s.SetContent(col, y+h-1, '─', nil, border)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, '│', nil, border)
		s.SetContent(x+w-1, row, '│', nil, border)
	}
	s.SetContent(x, y, '┌', nil, border)
	s.SetContent(x+w-1, y, '┐', nil, border)
	s.SetContent(x, y+h-1, '└', nil, border)
	s.SetContent(x+w-1, y+h-1, '┘', nil, border)
}

// centered returns the x at which text is centered within [x, x+w)
func centered(x, w int, text string) int {
	return x + (w-runewidth.StringWidth(text))/2
}
