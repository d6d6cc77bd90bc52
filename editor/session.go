// Package editor runs an editing session: one TextEdit, its file, and the
// menus, dialogs, clipboard, and file watcher around it.
package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fivemoreminix/codewriter/internal/config"
	"github.com/fivemoreminix/codewriter/ui"
	"github.com/fivemoreminix/codewriter/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	appName      = "codewriter"
	aboutMessage = "codewriter, a code editor for Python. Made with love."

	watchDebounce = 100 * time.Millisecond
)

// A Session is the state of the editor. Events are handled one at a time by
// the goroutine that calls Run.
type Session struct {
	Config config.Config
	Logger *slog.Logger

	screen      tcell.Screen
	theme       *ui.Theme
	highlighter *buffer.Highlighter
	textEdit    *ui.TextEdit
	menuBar     *ui.MenuBar
	dialog      ui.Component // Drawn over everything and focused while not nil
	focused     ui.Component // Receives key events when no dialog is shown
	barFocused  bool

	filename  string // Empty for a new file
	clipboard *Clipboard
	watcher   *Watcher // Nil when files are not watched
	quit      bool
}

// NewSession creates a Session drawing to screen, which must be initialized.
func NewSession(screen tcell.Screen, cfg config.Config, logger *slog.Logger) *Session {
	s := &Session{
		Config: cfg,
		Logger: logger,
		screen: screen,
		theme:  &ui.Theme{},
	}

	scheme := cfg.Colorscheme()
	s.highlighter = buffer.NewHighlighter(buffer.Python, &scheme)
	s.highlighter.Logger = logger

	s.textEdit = ui.NewTextEdit(screen, nil, s.theme, s.highlighter)
	s.textEdit.TabSize = cfg.TabSize
	s.textEdit.UseHardTabs = cfg.HardTabs
	s.textEdit.LineNumbers = cfg.LineNumbers

	method, err := ParseClipMethod(cfg.Clipboard)
	if err != nil {
		logger.Warn("unknown clipboard method", "error", err)
	}
	if s.clipboard, err = NewClipboard(method); err != nil {
		logger.Warn("using internal clipboard", "error", err)
	}

	if cfg.WatchFiles {
		if s.watcher, err = NewWatcher(screen, watchDebounce, logger); err != nil {
			logger.Warn("file watching disabled", "error", err)
		}
	}

	s.buildMenuBar()
	s.Resize()
	s.changeFocus(s.textEdit)
	return s
}

func (s *Session) buildMenuBar() {
	s.menuBar = ui.NewMenuBar(s.theme)
	s.menuBar.ItemActivatedCallback = func() {
		s.changeFocus(s.textEdit)
	}

	fileMenu := ui.NewMenu("File", 0, s.theme)
	fileMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "New", Shortcut: "Ctrl+N", Callback: s.NewFile},
		&ui.ItemEntry{Name: "Open...", Shortcut: "Ctrl+O", Callback: s.Open},
		&ui.ItemEntry{Name: "Save", Shortcut: "Ctrl+S", Callback: s.Save},
		&ui.ItemEntry{Name: "Save As...", QuickChar: 5, Callback: s.SaveAs},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Exit", QuickChar: 1, Shortcut: "Ctrl+Q", Callback: s.Exit},
	})

	editMenu := ui.NewMenu("Edit", 0, s.theme)
	editMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "Cut", QuickChar: 2, Shortcut: "Ctrl+X", Callback: s.Cut},
		&ui.ItemEntry{Name: "Copy", Shortcut: "Ctrl+C", Callback: s.Copy},
		&ui.ItemEntry{Name: "Paste", Shortcut: "Ctrl+V", Callback: s.Paste},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Select All", QuickChar: 7, Shortcut: "Ctrl+A", Callback: s.SelectAll},
		&ui.ItemEntry{Name: "Go to line...", Shortcut: "Ctrl+G", Callback: s.GoToLine},
	})

	helpMenu := ui.NewMenu("Help", 0, s.theme)
	helpMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "About", Callback: s.ShowAbout},
	})

	s.menuBar.AddMenu(fileMenu)
	s.menuBar.AddMenu(editMenu)
	s.menuBar.AddMenu(helpMenu)
}

func (s *Session) changeFocus(to ui.Component) {
	if s.focused != nil {
		s.focused.SetFocused(false)
	}
	s.focused = to
	to.SetFocused(true)
	s.barFocused = to == s.menuBar
}

func (s *Session) showDialog(dialog ui.Component) {
	s.dialog = dialog
	s.layoutDialog()
	s.changeFocus(dialog)
}

func (s *Session) closeDialog() {
	s.dialog = nil
	s.changeFocus(s.textEdit)
}

// layoutDialog sizes the dialog to its minimum and centers it.
func (s *Session) layoutDialog() {
	width, height := s.screen.Size()
	dialogWidth, dialogHeight := s.dialog.GetMinSize()
	s.dialog.SetSize(dialogWidth, dialogHeight)
	s.dialog.SetPos(width/2-dialogWidth/2, height/2-dialogHeight/2)
}

func (s *Session) showInfo(title, message string) {
	s.showDialog(ui.NewMessageDialog(title, message, ui.MessageKindNormal, nil, s.theme, func(string) {
		s.closeDialog()
	}))
}

// showError reports err in a dialog. The session keeps running.
func (s *Session) showError(err error) {
	s.Logger.Error("operation failed", "error", err)
	s.showDialog(ui.NewMessageDialog("", err.Error(), ui.MessageKindError, nil, s.theme, func(string) {
		s.closeDialog()
	}))
}

// watch watches the current file, if files are watched.
func (s *Session) watch() {
	if s.watcher == nil {
		return
	}
	if s.filename == "" {
		s.watcher.Unwatch()
		return
	}
	if err := s.watcher.Watch(s.filename); err != nil {
		s.Logger.Warn("cannot watch file", "path", s.filename, "error", err)
	}
}

// Filename returns the path of the open file, or an empty string for a new file.
func (s *Session) Filename() string {
	return s.filename
}

// Title returns the title of the editor, naming the open file. A '*' marks
// unsaved changes.
func (s *Session) Title() string {
	name := "New File"
	if s.filename != "" {
		name = filepath.Base(s.filename)
	}
	title := appName + " - " + name
	if s.textEdit.Dirty {
		title += " *"
	}
	return title
}

// NewFile clears the text and forgets the file name.
func (s *Session) NewFile() {
	s.textEdit.SetContents(nil)
	s.filename = ""
	s.watch()
	s.textEdit.Highlight()
	s.Logger.Info("new file")
}

// OpenFile replaces the text with the contents of the file at path.
func (s *Session) OpenFile(path string) error {
	text, err := ReadFile(path)
	if err != nil {
		return err
	}

	s.textEdit.SetContents([]byte(text))
	s.filename = path
	s.watch()
	s.textEdit.Highlight()
	s.Logger.Info("opened file", "path", path, "lines", s.textEdit.Buffer.Lines())
	return nil
}

// SaveFile writes the text to the file at path, which becomes the open file.
func (s *Session) SaveFile(path string) error {
	if err := WriteFile(path, s.textEdit.String()); err != nil {
		return err
	}

	s.filename = path
	s.textEdit.Dirty = false
	s.watch()
	s.Logger.Info("saved file", "path", path)
	return nil
}

// OpenPath opens the file at path, as named on the command line. A file that
// does not exist yet is created by the first save.
func (s *Session) OpenPath(path string) {
	err := s.OpenFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.NewFile()
		s.filename = path
		s.watch()
		return
	}
	if err != nil {
		s.showError(err)
	}
}

// Open asks for a path and opens that file.
func (s *Session) Open() {
	s.showDialog(ui.NewFileSelectorDialog(s.screen, "Open file", "", s.theme, func(path string) {
		s.closeDialog()
		if err := s.OpenFile(path); err != nil {
			s.showError(err)
		}
	}, s.closeDialog))
}

// Save writes to the open file. A new file is saved with SaveAs, instead.
func (s *Session) Save() {
	if s.filename == "" {
		s.SaveAs()
		return
	}
	if err := s.SaveFile(s.filename); err != nil {
		s.showError(err)
		return
	}
	s.showInfo("Saved", "File saved.")
}

// SaveAs asks for a path and saves to that file.
func (s *Session) SaveAs() {
	s.showDialog(ui.NewFileSelectorDialog(s.screen, "Save as", s.filename, s.theme, func(path string) {
		s.closeDialog()
		if err := s.SaveFile(path); err != nil {
			s.showError(err)
			return
		}
		s.showInfo("Saved", "File saved.")
	}, s.closeDialog))
}

// Exit ends Run.
func (s *Session) Exit() {
	s.quit = true
}

// Cut moves the selected text to the clipboard.
func (s *Session) Cut() {
	selected := s.textEdit.GetSelectedString()
	if selected == "" {
		return
	}
	if err := s.clipboard.Write(selected); err != nil {
		s.showError(err)
		return
	}
	s.textEdit.Delete(false) // Delete the selection
}

// Copy puts the selected text on the clipboard.
func (s *Session) Copy() {
	if selected := s.textEdit.GetSelectedString(); selected != "" {
		if err := s.clipboard.Write(selected); err != nil {
			s.showError(err)
		}
	}
}

// Paste inserts the clipboard contents at the cursor.
func (s *Session) Paste() {
	contents, err := s.clipboard.Read()
	if err != nil {
		s.showError(err)
		return
	}
	s.textEdit.Insert(contents)
}

func (s *Session) SelectAll() {
	s.textEdit.SelectAll()
}

// GoToLine asks for a line number and moves the cursor to the start of that line.
func (s *Session) GoToLine() {
	s.showDialog(NewGotoLineDialog(s.screen, s.theme, func(line int) {
		s.closeDialog()
		s.textEdit.SetLineCol(line-1, 0)
	}, s.closeDialog))
}

func (s *Session) ShowAbout() {
	s.showInfo("About", aboutMessage)
}

// Resize lays out the components to fill the screen.
func (s *Session) Resize() {
	width, height := s.screen.Size()
	s.menuBar.SetPos(0, 0)
	s.menuBar.SetSize(width, 1)
	s.textEdit.SetPos(0, 1)
	s.textEdit.SetSize(width, ui.Max(height-2, 0)) // Between the menu bar and the status bar
}

// Draw renders the whole editor and shows it.
func (s *Session) Draw() {
	s.screen.Clear()

	s.textEdit.Draw(s.screen)
	s.drawStatusBar()
	s.menuBar.Draw(s.screen) // Open menus cover the text

	if s.dialog != nil {
		s.layoutDialog()
		s.dialog.Draw(s.screen)
	}

	s.screen.Show()
}

func (s *Session) drawStatusBar() {
	width, height := s.screen.Size()
	style := s.theme.GetOrDefault("StatusBar")

	ui.DrawRect(s.screen, 0, height-1, width, 1, ' ', style)
	ui.DrawStr(s.screen, 1, height-1, s.Title(), style)

	line, col := s.textEdit.GetLineCol()
	position := fmt.Sprintf("%d:%d", line+1, col+1)
	ui.DrawStr(s.screen, width-1-runewidth.StringWidth(position), height-1, position, style)
}

// HandleEvent handles one event. Every key event ends by refreshing the
// syntax highlighting.
func (s *Session) HandleEvent(event tcell.Event) {
	switch ev := event.(type) {
	case nil: // The screen was finalized
		s.quit = true
	case *tcell.EventResize:
		s.Resize()
		s.screen.Sync()
	case *EventFileChanged:
		s.onFileChanged(ev.Path)
	case *tcell.EventKey:
		s.handleKey(ev)
		s.textEdit.Highlight()
	}
}

func (s *Session) handleKey(ev *tcell.EventKey) {
	if s.dialog != nil {
		s.dialog.HandleEvent(ev)
		return
	}

	// On Escape, we change focus between editor and the MenuBar.
	if ev.Key() == tcell.KeyEscape {
		if s.barFocused {
			s.changeFocus(s.textEdit)
		} else {
			s.changeFocus(s.menuBar)
		}
		return
	}

	if s.menuBar.HandleShortcut(ev) {
		return
	}
	s.focused.HandleEvent(ev)
}

// onFileChanged offers to reload the open file when it differs from the text.
func (s *Session) onFileChanged(path string) {
	if s.filename == "" {
		return
	}
	if abs, err := filepath.Abs(s.filename); err != nil || abs != path {
		return
	}
	if s.dialog != nil {
		s.Logger.Debug("ignoring file change while a dialog is open", "path", path)
		return
	}

	text, err := ReadFile(s.filename)
	if err != nil {
		s.Logger.Warn("cannot read changed file", "error", err)
		return
	}
	if text == s.textEdit.String() {
		return
	}

	message := fmt.Sprintf("%s was changed outside of the editor. Reload it?", filepath.Base(s.filename))
	s.showDialog(ui.NewMessageDialog("File changed", message, ui.MessageKindWarning, []string{"Reload", "Ignore"}, s.theme, func(option string) {
		s.closeDialog()
		if option == "Reload" {
			if err := s.reload(); err != nil {
				s.showError(err)
			}
		}
	}))
}

// reload reads the open file again, keeping the cursor where it was.
func (s *Session) reload() error {
	line, col := s.textEdit.GetLineCol()
	if err := s.OpenFile(s.filename); err != nil {
		return err
	}
	s.textEdit.SetLineCol(line, col)
	return nil
}

// Run draws the editor and handles events until Exit is called or the
// screen is finalized.
func (s *Session) Run() {
	for !s.quit {
		s.Draw()
		s.HandleEvent(s.screen.PollEvent())
	}
}

// Close releases the resources of the Session. The screen is not finalized.
func (s *Session) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
