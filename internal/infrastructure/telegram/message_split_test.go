package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage_ShortMessageUntouched(t *testing.T) {
	chunks := splitMessage("hello", 4096)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestSplitMessage_PrefersParagraphBoundary(t *testing.T) {
	text := strings.Repeat("a", 50) + "\n\n" + strings.Repeat("b", 50)
	chunks := splitMessage(text, 80)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasSuffix(chunks[0], "\n\n"))
	assert.Equal(t, strings.Repeat("b", 50), chunks[1])
}

func TestSplitMessage_FallsBackToLineBoundary(t *testing.T) {
	text := strings.Repeat("a", 50) + "\n" + strings.Repeat("b", 50)
	chunks := splitMessage(text, 80)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasSuffix(chunks[0], "\n"))
}

func TestSplitMessage_HardCutWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("x", 100)
	chunks := splitMessage(text, 40)

	require.Len(t, chunks, 3)
	assert.Equal(t, 40, len(chunks[0]))
	assert.Equal(t, 40, len(chunks[1]))
	assert.Equal(t, 20, len(chunks[2]))
}

func TestSplitMessage_CutsAtRuneBoundary(t *testing.T) {
	text := strings.Repeat("你", 50)
	chunks := splitMessage(text, 30)

	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk))
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 30)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitMessage_ReassemblesLossless(t *testing.T) {
	text := strings.Repeat("paragraph one\n\nparagraph two\n\n", 300)
	chunks := splitMessage(text, maxMessageLength)

	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), maxMessageLength)
	}
}
