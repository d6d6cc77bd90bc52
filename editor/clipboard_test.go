package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClipMethod(t *testing.T) {
	for _, m := range []ClipMethod{ClipExternal, ClipInternal} {
		parsed, err := ParseClipMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	m, err := ParseClipMethod("primary")
	require.Error(t, err)
	assert.Equal(t, ClipInternal, m, "unknown methods fall back to internal")
}

func TestInternalClipboard(t *testing.T) {
	c, err := NewClipboard(ClipInternal)
	require.NoError(t, err)

	text, err := c.Read()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, c.Write("def f():\n\tpass"))
	text, err = c.Read()
	require.NoError(t, err)
	assert.Equal(t, "def f():\n\tpass", text)
}
