package ui

import (
	"github.com/gdamore/tcell/v2"
)

// An InputField is a single-line input box.
type InputField struct {
	Text string

	cursorPos int // Rune index of the cursor in Text
	scrollPos int
	screen    tcell.Screen

	baseComponent
}

func NewInputField(screen tcell.Screen, placeholder string, theme *Theme) *InputField {
	f := &InputField{
		Text:          placeholder,
		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	f.cursorPos = len([]rune(placeholder))
	return f
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
// The InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	offset = Clamp(offset, 0, len([]rune(f.Text)))

	// Scrolling
	if offset >= f.scrollPos+f.width-2 { // If cursor position is out of view to the right...
		f.scrollPos = offset - f.width + 3 // Scroll just enough to view that column
	} else if offset < f.scrollPos { // If cursor position is out of view to the left...
		f.scrollPos = offset
	}
	f.scrollPos = Max(f.scrollPos, 0)

	f.cursorPos = offset
	if f.focused && f.screen != nil {
		f.screen.ShowCursor(f.x+offset-f.scrollPos+1, f.y)
	}
}

// Insert writes `contents` at the cursor and moves the cursor past it.
func (f *InputField) Insert(contents string) {
	runes := []rune(f.Text)
	inserted := []rune(contents)
	f.Text = string(runes[:f.cursorPos]) + contents + string(runes[f.cursorPos:])
	f.SetCursorPos(f.cursorPos + len(inserted))
}

// Delete removes the rune after the cursor if `forward`, or the rune before it.
func (f *InputField) Delete(forward bool) {
	runes := []rune(f.Text)
	if forward {
		if f.cursorPos < len(runes) {
			f.Text = string(runes[:f.cursorPos]) + string(runes[f.cursorPos+1:])
		}
	} else if f.cursorPos > 0 {
		f.Text = string(runes[:f.cursorPos-1]) + string(runes[f.cursorPos:])
		f.SetCursorPos(f.cursorPos - 1)
	}
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, f.height, ' ', style) // Draw background
	s.SetContent(f.x, f.y, '[', nil, style)
	s.SetContent(f.x+f.width-1, f.y, ']', nil, style)

	if runes := []rune(f.Text); len(runes) > f.scrollPos {
		endPos := f.scrollPos + Min(len(runes)-f.scrollPos, f.width-2)
		DrawStr(s, f.x+1, f.y, string(runes[f.scrollPos:endPos]), style) // Draw text
	}

	// Update cursor
	f.SetCursorPos(f.cursorPos)
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if v {
		f.SetCursorPos(f.cursorPos)
	} else if f.screen != nil {
		f.screen.HideCursor()
	}
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome:
			f.SetCursorPos(0)
		case tcell.KeyEnd:
			f.SetCursorPos(len([]rune(f.Text)))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyRune:
			f.Insert(string(ev.Rune()))
		default:
			return false
		}
		return true
	}
	return false
}
