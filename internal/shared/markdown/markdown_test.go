package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, input string) string {
	t.Helper()
	out, err := NewRenderer().ToTelegramHTML(input)
	require.NoError(t, err)
	return out
}

func TestToTelegramHTML_BasicFormatting(t *testing.T) {
	out := render(t, "**bold** and *italic* and `code`")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>italic</em>")
	assert.Contains(t, out, "<code>code</code>")
}

func TestToTelegramHTML_CodeBlock(t *testing.T) {
	out := render(t, "```\nfmt.Println(\"hi\")\n```")
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "fmt.Println")
}

func TestToTelegramHTML_StripsUnsupportedTags(t *testing.T) {
	out := render(t, "# Heading\n\nparagraph")
	assert.NotContains(t, out, "<h1>")
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "paragraph")
}

func TestToTelegramHTML_KeepsLinks(t *testing.T) {
	out := render(t, "[docs](https://example.com/docs)")
	assert.Contains(t, out, `href="https://example.com/docs"`)
	assert.Contains(t, out, ">docs</a>")
}

func TestToTelegramHTML_StripsRawScript(t *testing.T) {
	out := render(t, `hello <script>alert(1)</script>`)
	assert.NotContains(t, out, "<script>")
}

func TestToTelegramHTML_Strikethrough(t *testing.T) {
	out := render(t, "~~gone~~")
	assert.Contains(t, out, "<del>gone</del>")
}
