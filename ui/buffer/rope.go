package buffer

import (
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

type RopeBuffer rope.Node

func NewRopeBuffer(contents []byte) *RopeBuffer {
	return (*RopeBuffer)(rope.New(contents))
}

func (b *RopeBuffer) node() *rope.Node {
	return (*rope.Node)(b)
}

// slice returns a copy of the bytes [start, end), or an empty slice when the
// range is empty.
func (b *RopeBuffer) slice(start, end int) []byte {
	if start >= end {
		return []byte{}
	}
	return b.node().Slice(start, end)
}

// getLineStartPos returns the first byte index of the given line (starting from zero).
// The returned index can be equal to the length of the buffer, not pointing to any byte,
// which means the byte is on the last, and empty, line of the buffer. A line past the
// end of the buffer is treated as the last line.
func (b *RopeBuffer) getLineStartPos(line int) int {
	if line <= 0 {
		return 0
	}

	_rope := b.node()
	var pos int
	_rope.IndexAllFunc(0, _rope.Len(), []byte{'\n'}, func(idx int) bool {
		line--
		pos = idx + 1    // idx+1 = start of line after delimiter
		return line <= 0 // Stop indexing once we reach the line
	})
	return pos
}

// lineBounds returns the byte index where the line starts, where its contents
// end (the start of the delimiter), and where the line ends including the delimiter.
func (b *RopeBuffer) lineBounds(line int) (start, contentEnd, end int) {
	start = b.getLineStartPos(line)
	if line+1 < b.Lines() {
		end = b.getLineStartPos(line + 1)
		contentEnd = end - 1 // The '\n'
		if contentEnd > start && b.node().Slice(contentEnd-1, contentEnd)[0] == '\r' {
			contentEnd-- // CRLF
		}
	} else { // The last line has no delimiter
		end = b.node().Len()
		contentEnd = end
	}
	return start, contentEnd, end
}

// runeEndPos returns the index of the byte following the rune at pos.
func (b *RopeBuffer) runeEndPos(pos int) int {
	length := b.node().Len()
	if pos >= length {
		return length
	}
	_, size := utf8.DecodeRune(b.slice(pos, Min(pos+utf8.UTFMax, length)))
	return pos + size
}

// LineColToPos returns the index of the byte at line, col. The line is clamped
// to the lines in the buffer. If col is greater than the length of the line,
// the position of the line delimiter is returned, instead.
func (b *RopeBuffer) LineColToPos(line, col int) int {
	line = Clamp(line, 0, b.Lines()-1)
	start, contentEnd, _ := b.lineBounds(line)
	if col <= 0 {
		return start
	}

	data := b.slice(start, contentEnd)
	var i int
	for col > 0 && i < len(data) {
		// Respect Utf-8 codepoint boundaries
		_, size := utf8.DecodeRune(data[i:])
		i += size
		col--
	}
	return start + i
}

// Line returns a slice of the data at the given line, including the ending line-
// delimiter. line starts from zero. Data returned may or may not be a copy: do not
// write it.
func (b *RopeBuffer) Line(line int) []byte {
	start, _, end := b.lineBounds(line)
	return b.slice(start, end)
}

// Returns a slice of the buffer from startLine, startCol, to endLine, endCol,
// inclusive bounds. The returned value may or may not be a copy of the data,
// so do not write to it.
func (b *RopeBuffer) Slice(startLine, startCol, endLine, endCol int) []byte {
	start := b.LineColToPos(startLine, startCol)
	end := b.runeEndPos(b.LineColToPos(endLine, endCol))
	return b.slice(start, end)
}

// Bytes returns all of the bytes in the buffer. This function is very likely
// to copy all of the data in the buffer.
func (b *RopeBuffer) Bytes() []byte {
	return b.node().Value()
}

// Insert copies a byte slice (inserting it) into the position at line, col.
func (b *RopeBuffer) Insert(line, col int, value []byte) {
	if len(value) == 0 {
		return
	}
	b.node().Insert(b.LineColToPos(line, col), value)
}

// Remove deletes any characters between startLine, startCol, and endLine,
// endCol, inclusive bounds.
func (b *RopeBuffer) Remove(startLine, startCol, endLine, endCol int) {
	start := b.LineColToPos(startLine, startCol)
	end := b.runeEndPos(b.LineColToPos(endLine, endCol))
	if start < end {
		b.node().Remove(start, end)
	}
}

// Returns the number of occurrences of 'sequence' in the buffer, within the range
// of start line and col, to end line and col. End is exclusive.
func (b *RopeBuffer) Count(startLine, startCol, endLine, endCol int, sequence []byte) int {
	startPos := b.LineColToPos(startLine, startCol)
	endPos := b.LineColToPos(endLine, endCol)
	if startPos >= endPos {
		return 0
	}
	return b.node().Count(startPos, endPos, sequence)
}

// Len returns the number of bytes in the buffer.
func (b *RopeBuffer) Len() int {
	return b.node().Len()
}

// Lines returns the number of lines in the buffer. If the buffer is empty,
// 1 is returned, because there is always at least one line. This function
// basically counts the number of newline ('\n') characters in a buffer.
func (b *RopeBuffer) Lines() int {
	_rope := b.node()
	if _rope.Len() == 0 {
		return 1
	}
	return _rope.Count(0, _rope.Len(), []byte{'\n'}) + 1
}

// RunesInLineWithDelim returns the number of runes in the given line. That is, the
// number of Utf-8 codepoints in the line, not bytes. Includes the line delimiter
// in the count. If that line delimiter is CRLF ('\r\n'), then it adds two.
func (b *RopeBuffer) RunesInLineWithDelim(line int) int {
	return utf8.RuneCount(b.Line(line))
}

// RunesInLine returns the number of runes in the given line. That is, the
// number of Utf-8 codepoints in the line, not bytes. Excludes line delimiters.
func (b *RopeBuffer) RunesInLine(line int) int {
	start, contentEnd, _ := b.lineBounds(line)
	return utf8.RuneCount(b.slice(start, contentEnd))
}

// ClampLineCol is a utility function to clamp any provided line and col to
// only possible values within the buffer, pointing to runes. It first clamps
// the line, then clamps the column. The column is clamped between zero and
// the last rune before the line delimiter.
func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	line = Clamp(line, 0, b.Lines()-1)
	col = Clamp(col, 0, b.RunesInLine(line))
	return line, col
}

// PosToLineCol converts a byte offset (position) of the buffer's bytes, into
// a line and column. Unless you are working with the Bytes() function, this
// is unlikely to be useful to you. Position will be clamped.
func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	pos = Clamp(pos, 0, b.Len())
	if pos == 0 {
		return 0, 0
	}

	line := b.node().Count(0, pos, []byte{'\n'})
	col := utf8.RuneCount(b.slice(b.getLineStartPos(line), pos))
	return line, col
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.node().WriteTo(w)
}
