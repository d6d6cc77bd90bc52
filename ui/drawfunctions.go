package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr will render each character of a string at `x` and `y`. A '\n' moves
// to the next row, starting again at `x`. Returns the number of columns drawn
// on the last row.
func DrawStr(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	col := 0
	for _, r := range str {
		if r == '\n' {
			y++
			col = 0
			continue
		}
		s.SetContent(x+col, y, r, nil, style)
		col += Max(runewidth.RuneWidth(r), 1)
	}
	return col
}

// DrawQuickCharStr renders a string very much like DrawStr, but with the rune at
// `quickCharIdx` underlined. Returns the number of columns drawn.
func DrawQuickCharStr(s tcell.Screen, x, y int, str string, quickCharIdx int, style tcell.Style) int {
	col := 0
	for i, r := range []rune(str) {
		sty := style
		if i == quickCharIdx {
			sty = style.Underline(true)
		}
		s.SetContent(x+col, y, r, nil, sty)
		col += Max(runewidth.RuneWidth(r), 1)
	}
	return col
}

// DrawRectOutline draws only the outline of a rectangle, using `ul`, `ur`, `bl`, and `br`
// for the corner runes, and `hor` and `vert` for the horizontal and vertical runes, respectively.
func DrawRectOutline(s tcell.Screen, x, y, _width, _height int, ul, ur, bl, br, hor, vert rune, style tcell.Style) {
	width := x + _width - 1   // Length across
	height := y + _height - 1 // Length top-to-bottom

	// Horizontals and verticals
	for col := x + 1; col < width; col++ {
		s.SetContent(col, y, hor, nil, style)      // Top line
		s.SetContent(col, height, hor, nil, style) // Bottom line
	}
	for row := y + 1; row < height; row++ {
		s.SetContent(x, row, vert, nil, style)     // Left line
		s.SetContent(width, row, vert, nil, style) // Right line
	}
	// Corners
	s.SetContent(x, y, ul, nil, style)
	s.SetContent(width, y, ur, nil, style)
	s.SetContent(x, height, bl, nil, style)
	s.SetContent(width, height, br, nil, style)
}

// DrawRectOutlineDefault calls DrawRectOutline with the default edge runes.
func DrawRectOutlineDefault(s tcell.Screen, x, y, width, height int, style tcell.Style) {
	DrawRectOutline(s, x, y, width, height, '┌', '┐', '└', '┘', '─', '│', style)
}

// DrawWindow draws a window: a filled box with an outline and a header row
// holding the centered `title`.
func DrawWindow(s tcell.Screen, x, y, width, height int, title string, theme *Theme) {
	windowStyle := theme.GetOrDefault("Window")

	DrawRect(s, x, y, width, height, ' ', windowStyle)
	DrawRectOutlineDefault(s, x, y, width, height, windowStyle)

	headerStyle := theme.GetOrDefault("WindowHeader")
	DrawRect(s, x+1, y, width-2, 1, ' ', headerStyle) // Header background
	titleX := x + width/2 - runewidth.StringWidth(title)/2
	DrawStr(s, Max(titleX, x+1), y, title, headerStyle)
}
