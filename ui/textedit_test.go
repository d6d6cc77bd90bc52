package ui

import (
	"testing"

	"github.com/fivemoreminix/codewriter/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func shiftKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModShift)
}

func TestTextEditLineEndings(t *testing.T) {
	te := NewTextEdit(nil, []byte("a\r\nb\r\n"), nil, nil)

	assert.True(t, te.IsCRLF)
	assert.Equal(t, "a\nb\n", te.Text(), "text is stored with LF")
	assert.Equal(t, "a\r\nb\r\n", te.String(), "CRLF is restored")
	assert.Equal(t, "\r\n", te.GetLineDelimiter())

	te.SetContents([]byte("a\nb"))
	assert.False(t, te.IsCRLF)
	assert.Equal(t, "a\nb", te.String())
}

func TestTextEditSurface(t *testing.T) {
	te := NewTextEdit(nil, []byte("def f(): # x"), nil, buffer.NewHighlighter(buffer.Python, nil))
	te.Highlight()

	assert.Equal(t, []buffer.Syntax{buffer.Comment, buffer.Keyword, buffer.Function}, te.Tags())
	assert.Equal(t, buffer.Keyword, te.styleAt(0))
	assert.Equal(t, buffer.Function, te.styleAt(4))
	assert.Equal(t, buffer.Default, te.styleAt(6))
	assert.Equal(t, buffer.Comment, te.styleAt(10))
	assert.Equal(t, buffer.Default, te.styleAt(100), "out of range")

	te.ClearStyle(buffer.Keyword)
	assert.Equal(t, []buffer.Syntax{buffer.Comment, buffer.Function}, te.Tags())
	assert.Equal(t, buffer.Default, te.styleAt(0))

	te.Highlight()
	assert.Equal(t, buffer.Keyword, te.styleAt(0), "refresh replaces the applied styles")
	assert.Len(t, te.spans, 3)
}

func TestTextEditLastAppliedStyleWins(t *testing.T) {
	te := NewTextEdit(nil, []byte(`print("# if 1")`), nil, buffer.NewHighlighter(buffer.Python, nil))
	te.Highlight()

	assert.Equal(t, buffer.Builtin, te.styleAt(0))
	assert.Equal(t, buffer.String, te.styleAt(6), "opening quote")
	assert.Equal(t, buffer.String, te.styleAt(7), "string is applied after comment")
	assert.Equal(t, buffer.Keyword, te.styleAt(9), "keyword is applied after string")
	assert.Equal(t, buffer.Number, te.styleAt(12))
	assert.Equal(t, buffer.Comment, te.styleAt(14), "only the comment covers the closing paren")
}

func TestTextEditInsertDelete(t *testing.T) {
	te := NewTextEdit(nil, nil, nil, nil)
	require.False(t, te.Dirty)

	te.Insert("x = 1\r\ny")
	assert.Equal(t, "x = 1\ny", te.Text(), "carriage returns are dropped")
	line, col := te.GetLineCol()
	assert.Equal(t, [2]int{1, 1}, [2]int{line, col})
	assert.True(t, te.Dirty)

	te.Delete(false)
	te.Delete(false)
	assert.Equal(t, "x = 1", te.Text())
	line, col = te.GetLineCol()
	assert.Equal(t, [2]int{0, 5}, [2]int{line, col})

	te.Delete(true) // Nothing after the cursor
	assert.Equal(t, "x = 1", te.Text())

	te.SetLineCol(0, 0)
	te.Delete(true)
	assert.Equal(t, " = 1", te.Text())

	te.Delete(false) // Nothing before the cursor
	assert.Equal(t, " = 1", te.Text())
}

func TestTextEditSoftTabs(t *testing.T) {
	te := NewTextEdit(nil, nil, nil, nil)
	te.UseHardTabs = false
	te.TabSize = 2

	te.HandleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	te.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.Equal(t, "  x", te.Text())
}

func TestTextEditSelection(t *testing.T) {
	te := NewTextEdit(nil, []byte("hello world"), nil, nil)

	for i := 0; i < 5; i++ {
		require.True(t, te.HandleEvent(shiftKey(tcell.KeyRight)))
	}
	assert.Equal(t, "hello", te.GetSelectedString())

	te.Insert("bye")
	assert.Equal(t, "bye world", te.Text(), "insert overwrites the selection")
	assert.Empty(t, te.GetSelectedString())

	te.HandleEvent(shiftKey(tcell.KeyLeft))
	te.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Empty(t, te.GetSelectedString(), "moving without shift ends the selection")
}

func TestTextEditSelectionAcrossLines(t *testing.T) {
	te := NewTextEdit(nil, []byte("ab\ncd"), nil, nil)
	te.SetLineCol(0, 1)

	te.HandleEvent(shiftKey(tcell.KeyRight))
	te.HandleEvent(shiftKey(tcell.KeyRight))
	assert.Equal(t, "b\n", te.GetSelectedString())

	te.Delete(false)
	assert.Equal(t, "acd", te.Text())
	line, col := te.GetLineCol()
	assert.Equal(t, [2]int{0, 1}, [2]int{line, col})
}

func TestTextEditSelectAll(t *testing.T) {
	te := NewTextEdit(nil, []byte("ab\ncd"), nil, nil)
	te.SelectAll()
	assert.Equal(t, "ab\ncd", te.GetSelectedString())

	te.Delete(true)
	assert.Equal(t, "", te.Text())

	te.SelectAll()
	assert.Empty(t, te.GetSelectedString(), "nothing to select")
}

func TestTextEditScrollToCursor(t *testing.T) {
	te := NewTextEdit(nil, []byte("0\n1\n2\n3\n4"), nil, nil)
	te.SetSize(10, 2)

	te.SetLineCol(4, 0)
	assert.Equal(t, 3, te.scrolly)

	te.SetLineCol(0, 0)
	assert.Equal(t, 0, te.scrolly)
}

func TestTextEditDraw(t *testing.T) {
	s := newSimScreen(t, 12, 3)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)
	scheme := buffer.Colorscheme{buffer.Keyword: red}

	te := NewTextEdit(s, []byte("if x:\n\tpass"), nil, buffer.NewHighlighter(buffer.Python, &scheme))
	te.SetPos(0, 0)
	te.SetSize(12, 3)
	te.Highlight()
	te.Draw(s)
	s.Show()

	cells, width, _ := s.GetContents()
	cell := func(x, y int) tcell.SimCell {
		return cells[y*width+x]
	}

	// Gutter
	assert.Equal(t, []rune{'1'}, cell(1, 0).Runes)
	assert.Equal(t, []rune{'│'}, cell(2, 0).Runes)
	assert.Equal(t, []rune{'2'}, cell(1, 1).Runes)

	// "if" is a keyword
	assert.Equal(t, []rune{'i'}, cell(3, 0).Runes)
	assert.Equal(t, red, cell(3, 0).Style)
	assert.Equal(t, red, cell(4, 0).Style)
	assert.Equal(t, []rune{'x'}, cell(6, 0).Runes)
	assert.Equal(t, tcell.StyleDefault, cell(6, 0).Style)

	// The tab takes four cells
	assert.Equal(t, []rune{' '}, cell(3, 1).Runes)
	assert.Equal(t, []rune{'p'}, cell(7, 1).Runes)
	assert.Equal(t, red, cell(7, 1).Style)
}

func TestTextEditDrawSelection(t *testing.T) {
	s := newSimScreen(t, 10, 1)
	te := NewTextEdit(s, []byte("abc"), nil, nil)
	te.LineNumbers = false
	te.SetSize(10, 1)

	te.HandleEvent(shiftKey(tcell.KeyRight))
	te.Draw(s)
	s.Show()

	cells, _, _ := s.GetContents()
	selected := DefaultTheme.GetOrDefault("TextEditSelected")
	assert.Equal(t, selected, cells[0].Style)
	assert.NotEqual(t, selected, cells[1].Style)
}
