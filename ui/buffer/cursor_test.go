package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorMovement(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("ab\n\ncde"))
	c := NewCursor(&buf)

	c = c.Right().Right()
	line, col := c.GetLineCol()
	assert.Equal(t, [2]int{0, 2}, [2]int{line, col})

	c = c.Right() // Wraps to the next line
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{1, 0}, [2]int{line, col})

	c = c.Left() // Back to the end of the first line
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{0, 2}, [2]int{line, col})

	c = c.Down().Down() // Column is clamped by the empty line
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{2, 0}, [2]int{line, col})

	c = c.Down() // Last line: go to its end
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{2, 3}, [2]int{line, col})

	c = c.Up().Up().Up() // First line: go to its beginning
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{0, 0}, [2]int{line, col})

	c = c.Left() // Nothing before the beginning
	line, col = c.GetLineCol()
	assert.Equal(t, [2]int{0, 0}, [2]int{line, col})
}

func TestCursorSetLineColClamps(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("abc\nd"))
	c := NewCursor(&buf).SetLineCol(7, 7)

	line, col := c.GetLineCol()
	assert.Equal(t, [2]int{1, 1}, [2]int{line, col})
}

func TestRegion(t *testing.T) {
	var buf Buffer = NewRopeBuffer([]byte("abc\ndef"))
	a := NewCursor(&buf).SetLineCol(1, 1)
	b := NewCursor(&buf).SetLineCol(0, 2)

	r := NewRegion(a, b)
	assert.True(t, r.Start.Eq(b), "regions are ordered")
	assert.True(t, r.End.Eq(a))
	assert.False(t, r.Empty())

	assert.False(t, r.Contains(0, 1))
	assert.True(t, r.Contains(0, 2))
	assert.True(t, r.Contains(0, 3), "the delimiter is selected")
	assert.True(t, r.Contains(1, 0))
	assert.False(t, r.Contains(1, 1), "end is exclusive")

	assert.True(t, NewRegion(a, a).Empty())
}
