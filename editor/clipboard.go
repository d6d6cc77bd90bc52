package editor

import (
	"fmt"

	"github.com/zyedidia/clipboard"
)

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota // The system clipboard
	ClipInternal                   // A string private to the process
)

func (m ClipMethod) String() string {
	if m == ClipExternal {
		return "external"
	}
	return "internal"
}

// ParseClipMethod returns the ClipMethod named "external" or "internal".
func ParseClipMethod(name string) (ClipMethod, error) {
	switch name {
	case "external":
		return ClipExternal, nil
	case "internal":
		return ClipInternal, nil
	}
	return ClipInternal, fmt.Errorf("unknown clipboard method %q", name)
}

// A Clipboard reads and writes text using its Method.
type Clipboard struct {
	Method ClipMethod

	internal string
}

// NewClipboard will initialize the clipboard for the given method first,
// and if that fails, an internal method will be chosen, instead. The error
// is not fatal because an internal method is used.
func NewClipboard(m ClipMethod) (*Clipboard, error) {
	c := &Clipboard{Method: m}
	if m == ClipExternal {
		if err := clipboard.Initialize(); err != nil {
			c.Method = ClipInternal
			return c, fmt.Errorf("initializing system clipboard: %w", err)
		}
	}
	return c, nil
}

// Read receives the clipboard contents.
func (c *Clipboard) Read() (string, error) {
	if c.Method == ClipExternal {
		text, err := clipboard.ReadAll("clipboard")
		if err != nil {
			return "", fmt.Errorf("reading clipboard: %w", err)
		}
		return text, nil
	}
	return c.internal, nil
}

// Write sets the clipboard contents.
func (c *Clipboard) Write(text string) error {
	if c.Method == ClipExternal {
		if err := clipboard.WriteAll(text, "clipboard"); err != nil {
			return fmt.Errorf("writing clipboard: %w", err)
		}
		return nil
	}
	c.internal = text
	return nil
}
