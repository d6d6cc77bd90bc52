package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// Item is an interface implemented by ItemEntry and ItemMenu to be listed in Menus.
type Item interface {
	GetName() string
	// Returns a character/rune index of the name of the item.
	GetQuickCharIdx() int
	// A Shortcut is a string of the modifiers+key name of the action that must be pressed
	// to trigger the shortcut. For example: "Ctrl+Alt+X". The order of the modifiers is
	// very important. Letters are case-sensitive. See the KeyEvent.Name() function of tcell
	// for information. An empty string implies no shortcut.
	GetShortcut() string
}

// An ItemSeparator is like a blank Item that cannot actually be selected. It is useful
// for separating items in a Menu.
type ItemSeparator struct{}

// GetName returns an empty string.
func (i *ItemSeparator) GetName() string {
	return ""
}

func (i *ItemSeparator) GetQuickCharIdx() int {
	return -1
}

func (i *ItemSeparator) GetShortcut() string {
	return ""
}

// ItemEntry is a listing in a Menu with a name and callback.
type ItemEntry struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Shortcut  string
	Callback  func()
}

// GetName returns the name of the ItemEntry.
func (i *ItemEntry) GetName() string {
	return i.Name
}

func (i *ItemEntry) GetQuickCharIdx() int {
	return i.QuickChar
}

func (i *ItemEntry) GetShortcut() string {
	return i.Shortcut
}

// A MenuBar is a horizontal list of menus.
type MenuBar struct {
	// ItemActivatedCallback is called whenever an item of any menu is activated,
	// before the item's own callback.
	ItemActivatedCallback func()

	menus        []*Menu
	selected     int  // Index of selection in MenuBar
	menusVisible bool // Whether to draw the selected menu

	baseComponent
}

func NewMenuBar(theme *Theme) *MenuBar {
	return &MenuBar{
		menus:         make([]*Menu, 0, 6),
		baseComponent: baseComponent{theme: theme},
	}
}

func (b *MenuBar) AddMenu(menu *Menu) {
	menu.itemSelectedCallback = func() {
		b.menusVisible = false
		menu.SetFocused(false)
		if b.ItemActivatedCallback != nil {
			b.ItemActivatedCallback()
		}
	}
	b.menus = append(b.menus, menu)
}

// GetMenuXPos returns the X position of the name of Menu at `idx` visually.
func (b *MenuBar) GetMenuXPos(idx int) int {
	x := b.x + 1
	for i := 0; i < idx; i++ {
		x += runewidth.StringWidth(b.menus[i].Name) + 2 // two for padding
	}
	return x
}

// MenusVisible returns whether the selected Menu is open.
func (b *MenuBar) MenusVisible() bool {
	return b.menusVisible
}

func (b *MenuBar) ActivateMenuUnderCursor() {
	if len(b.menus) == 0 {
		return
	}
	b.menusVisible = true // Show menus
	menu := b.menus[b.selected]
	menu.SetPos(b.GetMenuXPos(b.selected), b.y+1)
	menu.SetFocused(true)
}

func (b *MenuBar) CursorLeft() {
	if b.menusVisible {
		b.menus[b.selected].SetFocused(false) // Unfocus current menu
	}

	if b.selected <= 0 {
		b.selected = len(b.menus) - 1 // Wrap to end
	} else {
		b.selected--
	}

	if b.menusVisible {
		b.ActivateMenuUnderCursor()
	}
}

func (b *MenuBar) CursorRight() {
	if b.menusVisible {
		b.menus[b.selected].SetFocused(false)
	}

	if b.selected >= len(b.menus)-1 {
		b.selected = 0 // Wrap to beginning
	} else {
		b.selected++
	}

	if b.menusVisible {
		b.ActivateMenuUnderCursor()
	}
}

// Draw renders the MenuBar and its sub-menus.
func (b *MenuBar) Draw(s tcell.Screen) {
	normalStyle := b.theme.GetOrDefault("MenuBar")

	// Draw menus based on whether b.focused and which is selected
	DrawRect(s, b.x, b.y, b.width, 1, ' ', normalStyle)
	col := b.x + 1
	for i, item := range b.menus {
		sty := normalStyle
		if b.focused && b.selected == i {
			sty = b.theme.GetOrDefault("MenuBarSelected") // Use special style for selected item
		}

		str := fmt.Sprintf(" %s ", item.Name)
		cols := DrawQuickCharStr(s, col, b.y, str, item.QuickChar+1, sty)

		col += cols
	}

	if b.menusVisible {
		menu := b.menus[b.selected]
		menu.Draw(s) // Draw menu when it is expanded / visible
	}
}

// SetFocused highlights the MenuBar. Unfocusing closes any open menu.
func (b *MenuBar) SetFocused(v bool) {
	b.focused = v
	if !v {
		if len(b.menus) > 0 {
			b.menus[b.selected].SetFocused(false)
		}
		b.selected = 0 // Reset cursor position every time component is unfocused
		b.menusVisible = false
	}
}

func (b *MenuBar) SetTheme(theme *Theme) {
	b.theme = theme
	for _, m := range b.menus {
		m.Theme = theme
	}
}

func (b *MenuBar) GetMinSize() (int, int) {
	return 0, 1
}

// HandleShortcut activates the item whose shortcut matches the key event, searching
// every menu. Returns whether an item was activated.
func (b *MenuBar) HandleShortcut(ev *tcell.EventKey) bool {
	if ev.Modifiers() == 0 {
		return false
	}
	keyName := ev.Name()
	for i := range b.menus {
		if b.menus[i].handleShortcut(keyName) {
			return true
		}
	}
	return false
}

// HandleEvent will propogate events to sub-menus and returns true if
// any of them handled the event.
func (b *MenuBar) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		// Shortcuts (Ctrl-s or Ctrl-A, for example)
		if ev.Modifiers() != 0 {
			return b.HandleShortcut(ev)
		}
		if len(b.menus) == 0 {
			return false
		}

		switch ev.Key() {
		case tcell.KeyEnter:
			if !b.menusVisible { // If menus are not visible...
				b.ActivateMenuUnderCursor()
			} else { // The selected Menu is visible, send the event to it
				return b.menus[b.selected].HandleEvent(event)
			}
		case tcell.KeyDown:
			if !b.menusVisible {
				b.ActivateMenuUnderCursor()
			} else {
				return b.menus[b.selected].HandleEvent(event)
			}
		case tcell.KeyLeft:
			b.CursorLeft()
		case tcell.KeyRight:
			b.CursorRight()
		case tcell.KeyTab:
			if b.menusVisible {
				return b.menus[b.selected].HandleEvent(event)
			} else {
				b.CursorRight()
			}

		// Quick char
		case tcell.KeyRune: // Search for the matching quick char in menu names
			if !b.menusVisible { // If the selected Menu is not open/visible
				for i, m := range b.menus {
					r := QuickCharInString(m.Name, m.QuickChar)
					if r != 0 && unicode.ToLower(r) == unicode.ToLower(ev.Rune()) {
						b.selected = i              // Select menu at i
						b.ActivateMenuUnderCursor() // Show menu
						break
					}
				}
			} else {
				return b.menus[b.selected].HandleEvent(event) // Have menu handle quick char event
			}

		default:
			if b.menusVisible {
				return b.menus[b.selected].HandleEvent(event)
			} else {
				return false // Nobody to propogate our event to
			}
		}
		return true
	}
	return false
}

// A Menu contains one or more ItemEntry or ItemSeparators.
type Menu struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Items     []Item

	x, y                 int
	width, height        int    // Size may not be settable
	selected             int    // Index of selected Item
	itemSelectedCallback func() // Used internally to hide menus on selection

	Theme *Theme
}

// NewMenu creates a new Menu with no items.
func NewMenu(name string, quickChar int, theme *Theme) *Menu {
	return &Menu{
		Name:      name,
		QuickChar: quickChar,
		Items:     make([]Item, 0, 6),
		Theme:     theme,
	}
}

// GetName returns the name of the Menu.
func (m *Menu) GetName() string {
	return m.Name
}

func (m *Menu) GetQuickCharIdx() int {
	return m.QuickChar
}

func (m *Menu) GetShortcut() string {
	return ""
}

func (m *Menu) AddItem(item Item) {
	m.Items = append(m.Items, item)
}

func (m *Menu) AddItems(items []Item) {
	for _, item := range items {
		m.AddItem(item)
	}
}

func (m *Menu) ActivateItemUnderCursor() {
	if m.selected >= len(m.Items) {
		return
	}
	if item, ok := m.Items[m.selected].(*ItemEntry); ok {
		if m.itemSelectedCallback != nil {
			m.itemSelectedCallback()
		}
		if item.Callback != nil {
			item.Callback()
		}
	}
}

// moveCursor moves the selection by `step`, skipping separators.
func (m *Menu) moveCursor(step int) {
	for range m.Items {
		m.selected = (m.selected + step + len(m.Items)) % len(m.Items)
		if _, ok := m.Items[m.selected].(*ItemSeparator); !ok {
			return
		}
	}
}

func (m *Menu) CursorUp() {
	m.moveCursor(-1)
}

func (m *Menu) CursorDown() {
	m.moveCursor(1)
}

// Draw renders the Menu at its position.
func (m *Menu) Draw(s tcell.Screen) {
	defaultStyle := m.Theme.GetOrDefault("Menu")

	m.GetSize()                                                          // Call this to update internal width and height
	DrawRect(s, m.x, m.y, m.width, m.height, ' ', defaultStyle)          // Fill background
	DrawRectOutlineDefault(s, m.x, m.y, m.width, m.height, defaultStyle) // Draw outline

	// Draw items based on which is selected
	for i, item := range m.Items {
		switch item.(type) {
		case *ItemSeparator:
			str := fmt.Sprintf("%s%s%s", "├", strings.Repeat("─", m.width-2), "┤")
			DrawStr(s, m.x, m.y+1+i, str, defaultStyle)
		default:
			var sty tcell.Style
			if m.selected == i {
				sty = m.Theme.GetOrDefault("MenuSelected")
			} else {
				sty = defaultStyle
			}

			nameCols := DrawQuickCharStr(s, m.x+1, m.y+1+i, item.GetName(), item.GetQuickCharIdx(), sty)

			str := strings.Repeat(" ", m.width-2-nameCols) // Fill space after menu names to border
			DrawStr(s, m.x+1+nameCols, m.y+1+i, str, sty)

			if shortcut := item.GetShortcut(); len(shortcut) > 0 { // If the item has a shortcut...
				str := " " + shortcut + " "
				DrawStr(s, m.x+m.width-1-runewidth.StringWidth(str), m.y+1+i, str, sty)
			}
		}
	}
}

// SetFocused resets the selection of the Menu when it loses focus.
func (m *Menu) SetFocused(v bool) {
	if !v {
		m.selected = 0
	}
}

// GetPos returns the position of the Menu.
func (m *Menu) GetPos() (int, int) {
	return m.x, m.y
}

// SetPos sets the position of the Menu.
func (m *Menu) SetPos(x, y int) {
	m.x, m.y = x, y
}

// GetSize returns the size of the Menu, computed from its items.
func (m *Menu) GetSize() (int, int) {
	maxNameLen := 0
	var widestShortcut int = 0 // Will contribute to the width
	for i := range m.Items {
		if nameLen := runewidth.StringWidth(m.Items[i].GetName()); nameLen > maxNameLen {
			maxNameLen = nameLen
		}

		if key := m.Items[i].GetShortcut(); runewidth.StringWidth(key) > widestShortcut {
			widestShortcut = runewidth.StringWidth(key) // For the sake of good unicode
		}
	}

	shortcutsWidth := 0
	if widestShortcut > 0 {
		shortcutsWidth = 1 + widestShortcut + 1 // " Ctrl+X "  (with one cell padding surrounding)
	}

	m.width = 1 + maxNameLen + shortcutsWidth + 1 // Add two for padding
	m.height = 1 + len(m.Items) + 1               // And another two for the same reason ...
	return m.width, m.height
}

func (m *Menu) handleShortcut(key string) bool {
	for i := range m.Items {
		if entry, ok := m.Items[i].(*ItemEntry); ok && entry.Shortcut == key {
			m.selected = i
			m.ActivateItemUnderCursor() // Activate it
			return true
		}
	}
	return false
}

// HandleEvent will handle events for a Menu. Returns true if the event was handled.
func (m *Menu) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEnter:
			m.ActivateItemUnderCursor()
		case tcell.KeyUp:
			m.CursorUp()
		case tcell.KeyTab, tcell.KeyDown:
			m.CursorDown()

		case tcell.KeyRune:
			for i, item := range m.Items {
				r := QuickCharInString(item.GetName(), item.GetQuickCharIdx())
				if r != 0 && unicode.ToLower(r) == unicode.ToLower(ev.Rune()) {
					m.selected = i
					m.ActivateItemUnderCursor()
					break
				}
			}

		default:
			return false
		}
		return true
	}
	return false
}
