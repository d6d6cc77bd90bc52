package editor

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrNotUTF8 is returned when reading a file that is not valid UTF-8 text.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// ReadFile returns the contents of the file at path as text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading %s: %w", path, ErrNotUTF8)
	}
	return string(data), nil
}

// WriteFile writes text to the file at path, creating or truncating it.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
