package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fivemoreminix/codewriter/internal/config"
	"github.com/fivemoreminix/codewriter/internal/log"
	"github.com/fivemoreminix/codewriter/ui"
	"github.com/fivemoreminix/codewriter/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	cfg := config.Defaults()
	cfg.Clipboard = config.ClipboardInternal
	cfg.WatchFiles = false

	s := NewSession(screen, cfg, log.Discard())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func press(s *Session, k tcell.Key) {
	s.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func ctrl(s *Session, k tcell.Key) {
	s.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModCtrl))
}

func typeText(s *Session, text string) {
	for _, r := range text {
		s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestSessionTitle(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "codewriter - New File", s.Title())

	path := writeTestFile(t, "main.py", "print(1)\n")
	require.NoError(t, s.OpenFile(path))
	assert.Equal(t, "codewriter - main.py", s.Title())

	typeText(s, "x")
	assert.Equal(t, "codewriter - main.py *", s.Title())

	s.NewFile()
	assert.Equal(t, "codewriter - New File", s.Title())
	assert.Empty(t, s.textEdit.Text())
}

func TestSessionOpenHighlights(t *testing.T) {
	s := newTestSession(t)
	path := writeTestFile(t, "main.py", "def main():\n    pass  # todo\n")

	require.NoError(t, s.OpenFile(path))
	assert.Equal(t, path, s.Filename())
	assert.ElementsMatch(t, []buffer.Syntax{buffer.Comment, buffer.Keyword, buffer.Function}, s.textEdit.Tags())
}

func TestSessionKeysRefreshHighlighting(t *testing.T) {
	s := newTestSession(t)
	assert.Empty(t, s.textEdit.Tags())

	typeText(s, "if 1")
	assert.ElementsMatch(t, []buffer.Syntax{buffer.Keyword, buffer.Number}, s.textEdit.Tags())

	press(s, tcell.KeyBackspace2)
	assert.Equal(t, []buffer.Syntax{buffer.Keyword}, s.textEdit.Tags(), "stale spans are cleared")
}

func TestSessionOpenErrors(t *testing.T) {
	s := newTestSession(t)

	err := s.OpenFile(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = s.OpenFile(writeTestFile(t, "binary.py", "\xff\xfe"))
	require.ErrorIs(t, err, ErrNotUTF8)
	assert.Equal(t, "", s.Filename(), "failed opens keep the session as it was")
}

func TestSessionOpenDialog(t *testing.T) {
	s := newTestSession(t)
	path := writeTestFile(t, "main.py", "x = 1\n")

	ctrl(s, tcell.KeyCtrlO)
	require.NotNil(t, s.dialog)
	typeText(s, path)
	press(s, tcell.KeyEnter)

	assert.Nil(t, s.dialog)
	assert.Equal(t, "x = 1\n", s.textEdit.Text())

	ctrl(s, tcell.KeyCtrlO)
	typeText(s, path+".nope")
	press(s, tcell.KeyEnter)

	dialog, ok := s.dialog.(*ui.MessageDialog)
	require.True(t, ok, "errors are shown in a dialog")
	assert.Equal(t, ui.MessageKindError, dialog.Kind)

	press(s, tcell.KeyEnter)
	assert.Nil(t, s.dialog)
	assert.Equal(t, "x = 1\n", s.textEdit.Text())
}

func TestSessionSave(t *testing.T) {
	s := newTestSession(t)
	path := writeTestFile(t, "main.py", "a = 1\r\nb = 2\r\n")
	require.NoError(t, s.OpenFile(path))

	typeText(s, "# ")
	ctrl(s, tcell.KeyCtrlS)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# a = 1\r\nb = 2\r\n", string(data), "line endings are kept")
	assert.False(t, s.textEdit.Dirty)

	dialog, ok := s.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, "Saved", dialog.Title)
	press(s, tcell.KeyEnter)
	assert.Nil(t, s.dialog)
}

func TestSessionSaveNewFileAsks(t *testing.T) {
	s := newTestSession(t)
	path := filepath.Join(t.TempDir(), "new.py")

	typeText(s, "pass")
	ctrl(s, tcell.KeyCtrlS)
	_, ok := s.dialog.(*ui.FileSelectorDialog)
	require.True(t, ok, "unnamed files are saved with Save As")

	typeText(s, path)
	press(s, tcell.KeyEnter)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pass", string(data))
	assert.Equal(t, path, s.Filename())
	assert.Equal(t, "codewriter - new.py", s.Title())
}

func TestSessionSaveError(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.OpenFile(writeTestFile(t, "main.py", "")))
	s.filename = filepath.Join(t.TempDir(), "missing", "main.py")

	s.Save()
	dialog, ok := s.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, ui.MessageKindError, dialog.Kind)
}

func TestSessionClipboard(t *testing.T) {
	s := newTestSession(t)
	typeText(s, "abc")

	ctrl(s, tcell.KeyCtrlA)
	ctrl(s, tcell.KeyCtrlC)
	press(s, tcell.KeyEnd)
	ctrl(s, tcell.KeyCtrlV)
	assert.Equal(t, "abcabc", s.textEdit.Text())

	ctrl(s, tcell.KeyCtrlA)
	ctrl(s, tcell.KeyCtrlX)
	assert.Equal(t, "", s.textEdit.Text())

	ctrl(s, tcell.KeyCtrlV)
	ctrl(s, tcell.KeyCtrlV)
	assert.Equal(t, "abcabcabcabc", s.textEdit.Text())
}

func TestSessionGoToLine(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.OpenFile(writeTestFile(t, "main.py", "a\nb\nc\nd\n")))

	ctrl(s, tcell.KeyCtrlG)
	typeText(s, "x3")
	press(s, tcell.KeyEnter)

	assert.Nil(t, s.dialog)
	line, col := s.textEdit.GetLineCol()
	assert.Equal(t, [2]int{2, 0}, [2]int{line, col})
}

func TestSessionMenuFocus(t *testing.T) {
	s := newTestSession(t)

	press(s, tcell.KeyEscape)
	require.True(t, s.barFocused)

	typeText(s, "h") // Help menu
	press(s, tcell.KeyEnter)
	dialog, ok := s.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, "About", dialog.Title)
	assert.Equal(t, aboutMessage, dialog.GetMessage())

	press(s, tcell.KeyEnter)
	assert.Nil(t, s.dialog)
	assert.False(t, s.barFocused, "the editor is focused after using a menu")

	typeText(s, "x")
	assert.Equal(t, "x", s.textEdit.Text())
}

func TestSessionExit(t *testing.T) {
	s := newTestSession(t)
	ctrl(s, tcell.KeyCtrlQ)
	assert.True(t, s.quit)

	s = newTestSession(t)
	s.HandleEvent(nil)
	assert.True(t, s.quit)
}

func TestSessionFileChanged(t *testing.T) {
	s := newTestSession(t)
	path := writeTestFile(t, "main.py", "x = 1\n")
	require.NoError(t, s.OpenFile(path))
	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	s.HandleEvent(NewEventFileChanged(abs))
	assert.Nil(t, s.dialog, "unchanged contents are not reported")

	require.NoError(t, os.WriteFile(path, []byte("x = 2\n"), 0o644))
	s.HandleEvent(NewEventFileChanged(filepath.Join(filepath.Dir(abs), "other.py")))
	assert.Nil(t, s.dialog, "other files are ignored")

	s.HandleEvent(NewEventFileChanged(abs))
	dialog, ok := s.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, []string{"Reload", "Ignore"}, dialog.Options())

	press(s, tcell.KeyEnter)
	assert.Equal(t, "x = 2\n", s.textEdit.Text())
	assert.False(t, s.textEdit.Dirty)
}

func TestSessionDraw(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.OpenFile(writeTestFile(t, "main.py", "pass\n")))
	s.Draw()

	screen := s.screen.(tcell.SimulationScreen)
	cells, width, height := screen.GetContents()
	row := func(y int) string {
		var str []rune
		for x := 0; x < width; x++ {
			str = append(str, cells[y*width+x].Runes...)
		}
		return string(str)
	}

	assert.Contains(t, row(0), "File")
	assert.Contains(t, row(1), "pass")
	assert.Contains(t, row(height-1), "codewriter - main.py")
	assert.Contains(t, row(height-1), "1:1")
}

func TestSessionOpenPath(t *testing.T) {
	s := newTestSession(t)
	path := filepath.Join(t.TempDir(), "new.py")

	s.OpenPath(path)
	assert.Nil(t, s.dialog)
	assert.Equal(t, path, s.Filename())
	assert.Equal(t, "codewriter - new.py", s.Title())

	typeText(s, "x")
	ctrl(s, tcell.KeyCtrlS)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	s = newTestSession(t)
	s.OpenPath(writeTestFile(t, "bad.py", "\xff"))
	dialog, ok := s.dialog.(*ui.MessageDialog)
	require.True(t, ok)
	assert.Equal(t, ui.MessageKindError, dialog.Kind)
	assert.Equal(t, "", s.Filename())
}
