package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A FileSelectorDialog is a window with an input and buttons for selecting a file.
// It can be used to open an existing file, or name a file to save to.
type FileSelectorDialog struct {
	Title              string
	FileChosenCallback func(string) // Receives the trimmed path. Not called for an empty path.
	CancelCallback     func()       // Called when the dialog has been canceled by the user

	tabOrder    []Component
	tabOrderIdx int

	inputField    *InputField
	confirmButton *Button
	cancelButton  *Button

	baseComponent
}

func NewFileSelectorDialog(screen tcell.Screen, title, path string, theme *Theme, fileChosenCallback func(string), cancelCallback func()) *FileSelectorDialog {
	dialog := &FileSelectorDialog{
		Title:              title,
		FileChosenCallback: fileChosenCallback,
		CancelCallback:     cancelCallback,
		baseComponent:      baseComponent{theme: theme},
	}

	dialog.inputField = NewInputField(screen, path, theme)
	dialog.confirmButton = NewButton("Confirm", theme, dialog.onConfirm)
	dialog.cancelButton = NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder = []Component{dialog.inputField, dialog.cancelButton, dialog.confirmButton}

	return dialog
}

// onConfirm is a callback called by the confirm button.
func (d *FileSelectorDialog) onConfirm() {
	path := strings.TrimSpace(d.inputField.Text)
	if d.FileChosenCallback != nil && path != "" {
		d.FileChosenCallback(path)
	}
}

func (d *FileSelectorDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

// GetPath returns the path currently typed in the dialog.
func (d *FileSelectorDialog) GetPath() string {
	return d.inputField.Text
}

func (d *FileSelectorDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, d.Title, d.theme)

	// Update positions of child components (dependent on size information that may not be available at SetPos() )
	btnWidth, _ := d.confirmButton.GetSize()
	d.confirmButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Place "Confirm" button on right, bottom

	d.inputField.Draw(s)
	d.confirmButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *FileSelectorDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *FileSelectorDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for _, c := range d.tabOrder {
		c.SetTheme(theme)
	}
}

func (d *FileSelectorDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)   // Center input field
	d.cancelButton.SetPos(d.x+1, d.y+4) // Place "Cancel" button on left, bottom
}

func (d *FileSelectorDialog) GetMinSize() (int, int) {
	return Max(runewidth.StringWidth(d.Title)+2, 40), 6
}

func (d *FileSelectorDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = Max(width, minX), Max(height, minY)

	d.inputField.SetSize(d.width-2, 1)
	d.cancelButton.SetSize(d.cancelButton.GetMinSize())
	d.confirmButton.SetSize(d.confirmButton.GetMinSize())
}

func (d *FileSelectorDialog) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyTab:
			d.tabOrder[d.tabOrderIdx].SetFocused(false)

			d.tabOrderIdx++
			if d.tabOrderIdx >= len(d.tabOrder) {
				d.tabOrderIdx = 0
			}

			d.tabOrder[d.tabOrderIdx].SetFocused(true)

			return true
		case tcell.KeyEsc:
			d.onCancel()
			return true
		case tcell.KeyEnter:
			if d.tabOrder[d.tabOrderIdx] == d.inputField {
				d.onConfirm()
				return true
			}
		}
	}
	return d.tabOrder[d.tabOrderIdx].HandleEvent(event)
}
