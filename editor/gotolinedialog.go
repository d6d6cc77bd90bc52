package editor

import (
	"strconv"
	"strings"

	"github.com/fivemoreminix/codewriter/ui"
	"github.com/gdamore/tcell/v2"
)

// A GotoLineDialog asks for a line number. The LineChosenCallback receives
// the number as typed, starting from one.
type GotoLineDialog struct {
	LineChosenCallback func(int)
	CancelCallback     func()

	x, y          int
	width, height int
	focused       bool
	theme         *ui.Theme

	tabOrder    []ui.Component
	tabOrderIdx int

	inputField   *ui.InputField
	acceptButton *ui.Button
	cancelButton *ui.Button
}

func NewGotoLineDialog(s tcell.Screen, theme *ui.Theme, lineChosenCallback func(int), cancelCallback func()) *GotoLineDialog {
	dialog := &GotoLineDialog{
		LineChosenCallback: lineChosenCallback,
		CancelCallback:     cancelCallback,
		theme:              theme,
	}

	dialog.inputField = ui.NewInputField(s, "", theme)
	dialog.acceptButton = ui.NewButton("Go", theme, dialog.onConfirm)
	dialog.cancelButton = ui.NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder = []ui.Component{dialog.inputField, dialog.cancelButton, dialog.acceptButton}

	return dialog
}

// onConfirm reports the typed line number. Anything that is not a number is ignored.
func (d *GotoLineDialog) onConfirm() {
	num, err := strconv.Atoi(strings.TrimSpace(d.inputField.Text))
	if err == nil && d.LineChosenCallback != nil {
		d.LineChosenCallback(num)
	}
}

func (d *GotoLineDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

func (d *GotoLineDialog) Draw(s tcell.Screen) {
	ui.DrawWindow(s, d.x, d.y, d.width, d.height, "Go to line", d.theme)

	btnWidth, _ := d.acceptButton.GetSize()
	d.acceptButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Place "Go" button on right, bottom

	d.inputField.Draw(s)
	d.acceptButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *GotoLineDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *GotoLineDialog) SetTheme(theme *ui.Theme) {
	d.theme = theme
	for _, c := range d.tabOrder {
		c.SetTheme(theme)
	}
}

func (d *GotoLineDialog) GetPos() (int, int) {
	return d.x, d.y
}

func (d *GotoLineDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)   // Center input field
	d.cancelButton.SetPos(d.x+1, d.y+4) // Place "Cancel" button on left, bottom
}

func (d *GotoLineDialog) GetMinSize() (int, int) {
	return 24, 6
}

func (d *GotoLineDialog) GetSize() (int, int) {
	return d.width, d.height
}

func (d *GotoLineDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = ui.Max(width, minX), ui.Max(height, minY)

	d.inputField.SetSize(d.width-2, 1)
	d.cancelButton.SetSize(d.cancelButton.GetMinSize())
	d.acceptButton.SetSize(d.acceptButton.GetMinSize())
}

func (d *GotoLineDialog) HandleEvent(event tcell.Event) bool {
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
		case tcell.KeyRune:
			if d.tabOrder[d.tabOrderIdx] == d.inputField && (ev.Rune() < '0' || ev.Rune() > '9') {
				return true // Only digits are typed
			}
		}
	}
	return d.tabOrder[d.tabOrderIdx].HandleEvent(event)
}
