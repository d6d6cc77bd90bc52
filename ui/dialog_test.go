package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeString(c Component, str string) {
	for _, r := range str {
		c.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestInputFieldEditing(t *testing.T) {
	f := NewInputField(nil, "héllo", nil)
	f.SetSize(20, 1)
	assert.Equal(t, 5, f.GetCursorPos(), "cursor starts after the placeholder")

	f.HandleEvent(key(tcell.KeyBackspace2))
	assert.Equal(t, "héll", f.Text)

	f.HandleEvent(key(tcell.KeyHome))
	f.HandleEvent(key(tcell.KeyRight))
	f.HandleEvent(key(tcell.KeyDelete))
	assert.Equal(t, "hll", f.Text, "multibyte runes are deleted whole")

	typeString(f, "e")
	assert.Equal(t, "hell", f.Text)
	assert.Equal(t, 2, f.GetCursorPos())

	assert.False(t, f.HandleEvent(key(tcell.KeyF1)))
}

func TestInputFieldScrolls(t *testing.T) {
	f := NewInputField(nil, "", nil)
	f.SetSize(6, 1) // Four cells of text
	typeString(f, "abcdef")
	assert.Equal(t, 3, f.scrollPos)

	f.HandleEvent(key(tcell.KeyHome))
	assert.Equal(t, 0, f.scrollPos)
}

func TestMessageDialogOptions(t *testing.T) {
	var chosen string
	d := NewMessageDialog("", "Reload the file?", MessageKindWarning, []string{"Reload", "Ignore"}, nil, func(option string) {
		chosen = option
	})
	d.SetFocused(true)

	assert.Equal(t, "Warning!", d.Title)
	assert.Equal(t, []string{"Reload", "Ignore"}, d.Options())

	d.HandleEvent(key(tcell.KeyTab))
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, "Ignore", chosen)

	d.HandleEvent(key(tcell.KeyTab)) // Wraps around
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, "Reload", chosen)
}

func TestMessageDialogDraw(t *testing.T) {
	s := newSimScreen(t, 40, 10)
	d := NewMessageDialog("About", "codewriter", MessageKindNormal, nil, nil, nil)
	d.SetPos(0, 0)
	d.Draw(s)
	s.Show()

	width, height := d.GetSize()
	assert.Equal(t, 30, width)
	assert.Equal(t, 6, height)

	cells, screenWidth, _ := s.GetContents()
	row := func(y int) string {
		var str []rune
		for x := 0; x < width; x++ {
			str = append(str, cells[y*screenWidth+x].Runes...)
		}
		return string(str)
	}
	assert.Contains(t, row(0), "About")
	assert.Contains(t, row(2), "codewriter")
	assert.Contains(t, row(height-2), "OK")
}

func TestFileSelectorDialog(t *testing.T) {
	var chosen []string
	var canceled int
	d := NewFileSelectorDialog(nil, "Open file", "", nil, func(path string) {
		chosen = append(chosen, path)
	}, func() {
		canceled++
	})
	d.SetSize(0, 0)
	d.SetFocused(true)

	d.HandleEvent(key(tcell.KeyEnter))
	assert.Empty(t, chosen, "empty paths are not chosen")

	typeString(d, " main.py ")
	assert.Equal(t, " main.py ", d.GetPath())
	d.HandleEvent(key(tcell.KeyEnter))
	require.Equal(t, []string{"main.py"}, chosen)

	d.HandleEvent(key(tcell.KeyEsc))
	assert.Equal(t, 1, canceled)

	// Tab to the cancel button
	d.HandleEvent(key(tcell.KeyTab))
	d.HandleEvent(key(tcell.KeyEnter))
	assert.Equal(t, 2, canceled)
}
