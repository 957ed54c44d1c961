package ansi_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/blocks"
	"github.com/fwojciec/blocks/ansi"
	"github.com/fwojciec/blocks/mock"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Force ANSI color output so styled elements produce visible escape
	// codes that we can assert against.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func render(t *testing.T, width int, doc ...blocks.Block) string {
	t.Helper()
	reg, err := ansi.NewRegistry(blocks.DefaultPrefix)
	require.NoError(t, err)
	out, err := ansi.Render(blocks.RenderBlocks(reg, doc), width, blocks.DefaultTheme())
	require.NoError(t, err)
	return out
}

func text(s string) blocks.DefaultInline { return blocks.TextInline{Text: s} }

func item(s string) blocks.ListItemInline {
	return blocks.ListItemInline{Children: []blocks.DefaultInline{text(s)}}
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", render(t, 80))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		got := render(t, 80, blocks.ParagraphBlock{Children: []blocks.DefaultInline{text("hello world")}})
		assert.Contains(t, stripANSI(got), "hello world")
	})

	t.Run("heading shows level marker and rule", func(t *testing.T) {
		t.Parallel()
		got := render(t, 80, blocks.HeadingBlock{Level: 1, Children: []blocks.DefaultInline{text("Title")}})
		plain := stripANSI(got)
		assert.Contains(t, plain, "# Title")
		assert.Contains(t, plain, "═══════")
	})

	t.Run("heading level three has no rule", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 80, blocks.HeadingBlock{Level: 3, Children: []blocks.DefaultInline{text("Sub")}}))
		assert.Contains(t, got, "### Sub")
		assert.NotContains(t, got, "─")
	})

	t.Run("bold is styled differently from plain", func(t *testing.T) {
		t.Parallel()
		bold := render(t, 80, blocks.ParagraphBlock{Children: []blocks.DefaultInline{blocks.TextInline{Text: "Bold", Bold: true}}})
		plain := render(t, 80, blocks.ParagraphBlock{Children: []blocks.DefaultInline{text("Bold")}})
		assert.NotEqual(t, bold, plain)
		assert.Equal(t, strings.TrimSpace(stripANSI(plain)), strings.TrimSpace(stripANSI(bold)))
	})

	t.Run("link shows text and URL", func(t *testing.T) {
		t.Parallel()
		got := render(t, 80, blocks.ParagraphBlock{Children: []blocks.DefaultInline{
			blocks.LinkInline{URL: "https://example.com", Children: []blocks.TextInline{{Text: "click"}}},
		}})
		assert.Contains(t, stripANSI(got), "click (https://example.com)")
	})

	t.Run("bare link shows URL once", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 80, blocks.ParagraphBlock{Children: []blocks.DefaultInline{
			blocks.LinkInline{URL: "https://example.com", Children: []blocks.TextInline{{Text: "https://example.com"}}},
		}}))
		assert.Equal(t, 1, strings.Count(got, "https://example.com"))
	})

	t.Run("unordered list", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 80, blocks.ListBlock{Format: blocks.ListUnordered, Children: []blocks.ListChild{
			item("one"), item("two"),
		}}))
		assert.Contains(t, got, "- one")
		assert.Contains(t, got, "- two")
	})

	t.Run("ordered list numbers items and skips nested lists", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 80, blocks.ListBlock{Format: blocks.ListOrdered, Children: []blocks.ListChild{
			item("first"),
			blocks.ListBlock{Format: blocks.ListUnordered, Children: []blocks.ListChild{item("inner")}},
			item("second"),
		}}))
		assert.Contains(t, got, "1. first")
		assert.Contains(t, got, "  - inner")
		assert.Contains(t, got, "2. second")
		assert.Less(t, strings.Index(got, "first"), strings.Index(got, "inner"))
		assert.Less(t, strings.Index(got, "inner"), strings.Index(got, "second"))
	})

	t.Run("code block keeps lines with gutter", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 20, blocks.CodeBlock{Children: []blocks.TextInline{
			{Text: "fmt.Println(\"hello world\")\nreturn"},
		}}))
		assert.Contains(t, got, `│ fmt.Println("hello world")`)
		assert.Contains(t, got, "│ return")
	})

	t.Run("quote has a bar", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 80, blocks.QuoteBlock{Children: []blocks.DefaultInline{text("Quote")}}))
		assert.Contains(t, got, "│ Quote")
	})

	t.Run("image shows alt text and URL", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 80, blocks.ImageBlock{Image: blocks.Image{URL: "a.jpg", AlternativeText: "A cat"}}))
		assert.Equal(t, "[image: A cat] (a.jpg)", got)
	})

	t.Run("image line is truncated to width", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 12, blocks.ImageBlock{Image: blocks.Image{URL: "a-very-long-file-name.jpg"}}))
		assert.True(t, strings.HasSuffix(got, "…"))
		assert.LessOrEqual(t, len([]rune(got)), 12)
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := "word1 word2 word3 word4 word5 word6 word7 word8 word9 word10 word11 word12"
		got := render(t, 30, blocks.ParagraphBlock{Children: []blocks.DefaultInline{text(long)}})
		assert.Contains(t, stripANSI(got), "word1")
		assert.Contains(t, stripANSI(got), "word12")
		assert.Greater(t, len(strings.Split(got, "\n")), 1)
	})

	t.Run("blocks are separated by a blank line", func(t *testing.T) {
		t.Parallel()
		got := stripANSI(render(t, 10,
			blocks.ParagraphBlock{Children: []blocks.DefaultInline{text("a")}},
			blocks.UnknownBlock{Kind: "table"},
			blocks.ParagraphBlock{Children: []blocks.DefaultInline{text("b")}},
		))
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "a", strings.TrimSpace(lines[0]))
		assert.Equal(t, "", strings.TrimSpace(lines[1]))
		assert.Equal(t, "b", strings.TrimSpace(lines[2]))
	})

	t.Run("zero width falls back to default", func(t *testing.T) {
		t.Parallel()
		got := render(t, 0, blocks.ParagraphBlock{Children: []blocks.DefaultInline{text("x")}})
		assert.Contains(t, got, "x")
	})
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	t.Run("foreign component", func(t *testing.T) {
		t.Parallel()
		outputs := blocks.RenderBlocks(mock.PrefixResolver(""), []blocks.Block{
			blocks.ParagraphBlock{Children: []blocks.DefaultInline{text("x")}},
		})
		_, err := ansi.Render(outputs, 80, blocks.DefaultTheme())
		assert.ErrorIs(t, err, blocks.ErrForeignComponent)
	})

	t.Run("unresolved heading", func(t *testing.T) {
		t.Parallel()
		reg, err := ansi.NewRegistry("")
		require.NoError(t, err)
		outputs := blocks.RenderBlocks(reg, []blocks.Block{blocks.HeadingBlock{Level: 8}})
		_, err = ansi.Render(outputs, 80, blocks.DefaultTheme())
		assert.ErrorIs(t, err, blocks.ErrComponentNotFound)
	})
}
