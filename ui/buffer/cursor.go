package buffer

import "math"

// So why is the code for moving the cursor in the buffer package, and not in the
// TextEdit component? The cursor needs to have a reference to the buffer to know
// where lines end and how it can move. The buffer is the city, and the Cursor is
// the car.

type position struct {
	line int
	col  int
}

// A Cursor's functions emulate common cursor actions. Cursors are values: every
// movement returns a new Cursor and leaves the receiver unchanged. A Cursor does
// not follow edits made to its Buffer; reposition it with SetLineCol.
type Cursor struct {
	buffer *Buffer
	position
}

func NewCursor(in *Buffer) Cursor {
	return Cursor{
		buffer: in,
	}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = (*c.buffer).RunesInLine(c.line)
	} else {
		c.col = Max(c.col-1, 0)
	}
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line,
	// and not at the last line...
	if c.col >= (*c.buffer).RunesInLine(c.line) && c.line < (*c.buffer).Lines()-1 {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, 0) // Go to beginning of line below
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, c.col+1)
	}
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 { // If the cursor is at the first line...
		c.line, c.col = 0, 0 // Go to beginning
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line-1, c.col)
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == (*c.buffer).Lines()-1 { // If the cursor is at the last line...
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, math.MaxInt32) // Go to end of current line
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, c.col)
	}
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol sets the line and col of the Cursor to those provided. `line` is
// clamped within the range (0, lines in buffer). `col` is then clamped within
// the range (0, line length in runes).
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = (*c.buffer).ClampLineCol(line, col)
	return c
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}

// Less reports whether c comes before other in the buffer.
func (c Cursor) Less(other Cursor) bool {
	return c.line < other.line || (c.line == other.line && c.col < other.col)
}

// A Region is the text between two Cursors. Start always comes at or before End.
// The Start is inclusive and the End is exclusive, so a Region whose cursors are
// equal is empty.
type Region struct {
	Start Cursor
	End   Cursor
}

// NewRegion orders a and b into a Region.
func NewRegion(a, b Cursor) Region {
	if b.Less(a) {
		a, b = b, a
	}
	return Region{a, b}
}

func (r Region) Empty() bool {
	return r.Start.Eq(r.End)
}

// Contains reports whether the rune at line, col is inside the Region.
func (r Region) Contains(line, col int) bool {
	p := Cursor{position: position{line, col}}
	return !p.Less(r.Start) && p.Less(r.End)
}
