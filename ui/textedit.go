package ui

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fivemoreminix/codewriter/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TextEdit is a field for line-based editing. It features syntax highlighting:
// it is a buffer.Surface, so a buffer.Highlighter can clear and apply styles
// to its text. Styles are kept in the order they were applied, and a rune is
// drawn with the style applied to it last.
type TextEdit struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	LineNumbers bool // Whether to render line numbers (and therefore the column)
	Dirty       bool // Whether the buffer has been edited
	UseHardTabs bool // When true, tabs are '\t'
	TabSize     int  // How many spaces to indent by
	IsCRLF      bool // Whether the file's line endings are CRLF (\r\n) or LF (\n)

	screen           tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll

	anchor     buffer.Cursor // Where the selection started, while selectMode
	selectMode bool          // Whether the user is actively selecting text

	spans      []buffer.Span   // Applied styles, in the order they were applied
	styles     []buffer.Syntax // Syntax of every rune; rebuilt from spans when nil
	text       string          // Snapshot of the buffer, valid while textValid
	textValid  bool
	lineStarts []int // Rune offset of the start of each line in text

	baseComponent
}

// NewTextEdit will initialize the buffer using the given 'contents'. The highlighter
// may be nil, in which case no syntax is highlighted.
func NewTextEdit(screen tcell.Screen, contents []byte, theme *Theme, highlighter *buffer.Highlighter) *TextEdit {
	te := &TextEdit{
		Buffer:      nil, // Set in SetContents
		Highlighter: highlighter,
		LineNumbers: true,
		UseHardTabs: true,
		TabSize:     4,

		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	te.SetContents(contents)
	return te
}

// SetContents replaces the text of the TextEdit. The contents are determined to be
// either CRLF or LF based on the first line ending; CRLF line endings are stored as
// LF and restored by String(). Applied styles are cleared and the cursor is moved
// to the beginning.
func (t *TextEdit) SetContents(contents []byte) {
	t.IsCRLF = false
	if i := bytes.IndexByte(contents, '\n'); i > 0 && contents[i-1] == '\r' {
		t.IsCRLF = true
	}
	contents = bytes.ReplaceAll(contents, []byte("\r\n"), []byte("\n"))

	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(&t.Buffer)
	t.anchor = t.cursor
	t.selectMode = false
	t.scrollx, t.scrolly = 0, 0
	t.spans = nil
	t.Dirty = false
	t.invalidate()
}

// String returns the contents of the TextEdit with its original line delimiters.
func (t *TextEdit) String() string {
	if t.IsCRLF {
		return strings.ReplaceAll(t.Text(), "\n", "\r\n")
	}
	return t.Text()
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextEdit) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	}
	return "\n"
}

// invalidate must be called after every change to the Buffer.
func (t *TextEdit) invalidate() {
	t.textValid = false
	t.styles = nil
}

func (t *TextEdit) snapshot() {
	if t.textValid {
		return
	}
	t.text = string(t.Buffer.Bytes())
	t.lineStarts = append(t.lineStarts[:0], 0)
	var runeIdx int
	for _, r := range t.text {
		runeIdx++
		if r == '\n' {
			t.lineStarts = append(t.lineStarts, runeIdx)
		}
	}
	t.textValid = true
}

// Text returns the contents of the TextEdit with LF line delimiters. It is the
// text that style offsets refer to.
func (t *TextEdit) Text() string {
	t.snapshot()
	return t.text
}

// Tags returns each Syntax currently applied, in the order first applied.
func (t *TextEdit) Tags() []buffer.Syntax {
	var seen [256]bool
	var tags []buffer.Syntax
	for _, span := range t.spans {
		if !seen[span.Syntax] {
			seen[span.Syntax] = true
			tags = append(tags, span.Syntax)
		}
	}
	return tags
}

// ClearStyle removes every span of the given Syntax.
func (t *TextEdit) ClearStyle(tag buffer.Syntax) {
	kept := t.spans[:0]
	for _, span := range t.spans {
		if span.Syntax != tag {
			kept = append(kept, span)
		}
	}
	t.spans = kept
	t.styles = nil
}

// ApplyStyle styles the runes [start, end) of Text() as tag.
func (t *TextEdit) ApplyStyle(tag buffer.Syntax, start, end int) {
	t.spans = append(t.spans, buffer.Span{Syntax: tag, Start: start, End: end})
	t.styles = nil
}

// Highlight recomputes all syntax highlighting of the TextEdit.
func (t *TextEdit) Highlight() {
	if t.Highlighter != nil {
		t.Highlighter.Refresh(t)
	}
}

// styleAt returns the Syntax that the rune at offset is drawn with.
func (t *TextEdit) styleAt(offset int) buffer.Syntax {
	if t.styles == nil {
		t.styles = make([]buffer.Syntax, utf8.RuneCountInString(t.Text()))
		for _, span := range t.spans {
			end := Min(span.End, len(t.styles))
			for i := Max(span.Start, 0); i < end; i++ {
				t.styles[i] = span.Syntax // Later spans win
			}
		}
	}
	if offset < 0 || offset >= len(t.styles) {
		return buffer.Default
	}
	return t.styles[offset]
}

func (t *TextEdit) colorscheme() *buffer.Colorscheme {
	if t.Highlighter != nil {
		return t.Highlighter.Colorscheme
	}
	return nil
}

// Selection returns the selected Region and whether anything is selected.
func (t *TextEdit) Selection() (buffer.Region, bool) {
	if !t.selectMode {
		return buffer.Region{}, false
	}
	region := buffer.NewRegion(t.anchor, t.cursor)
	return region, !region.Empty()
}

// deleteSelection removes the selected text, if any, and ends selection.
// Returns whether any text was removed.
func (t *TextEdit) deleteSelection() bool {
	region, ok := t.Selection()
	t.selectMode = false
	if !ok {
		return false
	}

	startLine, startCol := region.Start.GetLineCol()
	endLine, endCol := region.End.Left().GetLineCol() // End is exclusive
	t.Buffer.Remove(startLine, startCol, endLine, endCol)
	t.cursor = t.cursor.SetLineCol(startLine, startCol)
	return true
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after (or on) the cursor.
// If text is selected, only the selection is deleted.
func (t *TextEdit) Delete(forwards bool) {
	deleted := t.deleteSelection()

	if !deleted {
		cursLine, cursCol := t.cursor.GetLineCol()
		if forwards { // Delete the character after the cursor
			// If the cursor is not at the end of the last line...
			if cursLine < t.Buffer.Lines()-1 || cursCol < t.Buffer.RunesInLine(cursLine) {
				t.Buffer.Remove(cursLine, cursCol, cursLine, cursCol) // Remove character at cursor
				deleted = true
			}
		} else if cursLine > 0 || cursCol > 0 { // Delete the character before the cursor
			t.cursor = t.cursor.Left() // Back up to that character
			line, col := t.cursor.GetLineCol()
			t.Buffer.Remove(line, col, line, col)
			deleted = true
		}
	}

	if deleted {
		t.Dirty = true
		t.invalidate()
	}
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// Insert writes `contents` at the cursor position and moves the cursor past it.
// Carriage returns are dropped, and tabs become spaces when hard tabs are off.
// Overwrites any active selection.
func (t *TextEdit) Insert(contents string) {
	if t.deleteSelection() {
		t.Dirty = true
		t.invalidate()
	}

	var sb strings.Builder
	for _, r := range contents {
		switch r {
		case '\r':
			continue
		case '\t':
			if !t.UseHardTabs { // If this file does not use hard tabs...
				sb.WriteString(strings.Repeat(" ", t.TabSize))
				continue
			}
		}
		sb.WriteRune(r)
	}
	inserted := sb.String()
	if inserted == "" {
		return
	}

	line, col := t.cursor.GetLineCol()
	t.Buffer.Insert(line, col, []byte(inserted))
	if i := strings.LastIndexByte(inserted, '\n'); i >= 0 {
		line += strings.Count(inserted, "\n")
		col = utf8.RuneCountInString(inserted[i+1:])
	} else {
		col += utf8.RuneCountInString(inserted)
	}

	t.Dirty = true
	t.invalidate()
	t.cursor = t.cursor.SetLineCol(line, col)
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// GetSelectedString returns the text that is currently selected. If the returned
// string is empty, then nothing was selected.
func (t *TextEdit) GetSelectedString() string {
	region, ok := t.Selection()
	if !ok {
		return ""
	}
	startLine, startCol := region.Start.GetLineCol()
	endLine, endCol := region.End.Left().GetLineCol()
	return string(t.Buffer.Slice(startLine, startCol, endLine, endCol))
}

// SelectAll selects the whole buffer and moves the cursor to its end.
func (t *TextEdit) SelectAll() {
	t.anchor = t.cursor.SetLineCol(0, 0)
	t.cursor = t.cursor.SetLineCol(math.MaxInt32, math.MaxInt32)
	t.selectMode = true
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

func (t *TextEdit) GetLineCol() (int, int) {
	return t.cursor.GetLineCol()
}

// SetLineCol moves the cursor to line, col (both clamped) and ends selection.
func (t *TextEdit) SetLineCol(line, col int) {
	t.selectMode = false
	t.cursor = t.cursor.SetLineCol(line, col)
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// moveCursor moves the cursor to `to`. When selecting, the selection is
// started or extended; otherwise it ends.
func (t *TextEdit) moveCursor(to buffer.Cursor, selecting bool) {
	if selecting {
		if !t.selectMode {
			t.anchor = t.cursor
			t.selectMode = true
		}
	} else {
		t.selectMode = false
	}
	t.cursor = to
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// runeWidth returns the number of cells r occupies. Tabs are TabSize cells.
func (t *TextEdit) runeWidth(r rune) int {
	if r == '\t' {
		return t.TabSize
	}
	return Max(runewidth.RuneWidth(r), 1)
}

// visualCol returns the cell offset of the rune at line, col from the start
// of the line.
func (t *TextEdit) visualCol(line, col int) int {
	var cells int
	for _, r := range string(t.Buffer.Line(line)) {
		if col <= 0 || r == '\n' {
			break
		}
		cells += t.runeWidth(r)
		col--
	}
	return cells
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	var columnWidth int
	if t.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = Max(3, 1+len(strconv.Itoa(t.Buffer.Lines()))) // Column has minimum width of 2
	}
	return columnWidth
}

// ScrollToCursor scrolls the view if the cursor is out of view.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()

	// Scroll the screen when going to lines out of view
	if line >= t.scrolly+t.height { // If the new line is below view...
		t.scrolly = line - t.height + 1 // Scroll just enough to view that line
	} else if line < t.scrolly { // If the new line is above view
		t.scrolly = line
	}

	textWidth := t.width - t.getColumnWidth()
	vcol := t.visualCol(line, col)

	// Scroll the screen horizontally when going to columns out of view
	if vcol >= t.scrollx+textWidth { // If the new column is right of view
		t.scrollx = vcol - textWidth + 1 // Scroll just enough to view that column
	} else if vcol < t.scrollx { // If the new column is left of view
		t.scrollx = vcol
	}
	t.scrollx, t.scrolly = Max(t.scrollx, 0), Max(t.scrolly, 0)
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit, if the TextEdit is focused.
func (t *TextEdit) updateCursorVisibility() {
	if t.focused && t.screen != nil {
		line, col := t.cursor.GetLineCol()
		vcol := t.visualCol(line, col)
		t.screen.ShowCursor(t.x+t.getColumnWidth()+vcol-t.scrollx, t.y+line-t.scrolly)
	}
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	t.snapshot()

	columnWidth := t.getColumnWidth()
	textWidth := t.width - columnWidth
	bufferLines := t.Buffer.Lines()

	scheme := t.colorscheme()
	selectedStyle := t.theme.GetOrDefault("TextEditSelected")
	columnStyle := scheme.GetStyle(buffer.Column)
	defaultStyle := scheme.GetStyle(buffer.Default)

	selection, hasSelection := t.Selection()

	// drawCell draws r at the visual column vcol of the row, if it is in view.
	drawCell := func(lineY, vcol int, r rune, style tcell.Style) {
		if vcol >= t.scrollx && vcol-t.scrollx < textWidth {
			s.SetContent(t.x+columnWidth+vcol-t.scrollx, lineY, r, nil, style)
		}
	}

	for lineY := t.y; lineY < t.y+t.height; lineY++ { // For each line we can draw...
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		DrawRect(s, t.x+columnWidth, lineY, textWidth, 1, ' ', defaultStyle) // Background

		lineNumStr := "" // Line number as a string

		if line < bufferLines { // Only index buffer if we are within it...
			lineNumStr = strconv.Itoa(line + 1)

			offset := t.lineStarts[line] // Rune offset of the line in Text()
			var col, vcol int
			for _, r := range string(t.Buffer.Line(line)) {
				if r == '\n' {
					break
				}

				style := scheme.GetStyle(t.styleAt(offset + col))
				if hasSelection && selection.Contains(line, col) {
					style = selectedStyle
				}

				width := t.runeWidth(r)
				if r == '\t' {
					for i := 0; i < width; i++ {
						drawCell(lineY, vcol+i, ' ', style)
					}
				} else {
					drawCell(lineY, vcol, r, style)
				}

				vcol += width
				col++
				if vcol-t.scrollx >= textWidth {
					break // The rest of the line is out of view
				}
			}

			// A selected line delimiter is shown as one selected cell
			if hasSelection && line < bufferLines-1 && selection.Contains(line, col) {
				drawCell(lineY, vcol, ' ', selectedStyle)
			}
		}

		if columnWidth > 0 {
			columnStr := fmt.Sprintf("%*s│", columnWidth-1, lineNumStr) // Right align line number
			DrawStr(s, t.x, lineY, columnStr, columnStyle)              // Draw column
		}
	}

	t.updateCursorVisibility()
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else if t.screen != nil {
		t.screen.HideCursor()
	}
}

// SetSize sets the size of the TextEdit and keeps the cursor in view.
func (t *TextEdit) SetSize(width, height int) {
	t.width, t.height = width, height
	t.ScrollToCursor()
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		selecting := ev.Modifiers()&tcell.ModShift != 0

		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			t.moveCursor(t.cursor.Up(), selecting)
		case tcell.KeyDown:
			t.moveCursor(t.cursor.Down(), selecting)
		case tcell.KeyLeft:
			t.moveCursor(t.cursor.Left(), selecting)
		case tcell.KeyRight:
			t.moveCursor(t.cursor.Right(), selecting)
		case tcell.KeyHome:
			cursLine, _ := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine, 0), selecting)
		case tcell.KeyEnd:
			cursLine, _ := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine, math.MaxInt32), selecting) // Max column
		case tcell.KeyPgUp:
			cursLine, cursCol := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine-t.height, cursCol), selecting) // Go a page up
		case tcell.KeyPgDn:
			cursLine, cursCol := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine+t.height, cursCol), selecting) // Go a page down

		// Deleting
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			t.Insert("\t") // (can translate to spaces)
		case tcell.KeyEnter:
			t.Insert("\n")

		// Inserting
		case tcell.KeyRune:
			t.Insert(string(ev.Rune())) // Insert rune
		default:
			return false
		}
		return true
	}
	return false
}
