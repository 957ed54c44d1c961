package blocks_test

import (
	"testing"

	"github.com/fwojciec/blocks"
	"github.com/fwojciec/blocks/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "Test"

func newRenderer() *blocks.Renderer {
	return blocks.NewRenderer(mock.PrefixResolver(prefix))
}

func component(kind blocks.Kind) mock.Component {
	return mock.Component(kind.ComponentName(prefix))
}

func wrap(kind blocks.Kind, text string) blocks.Element {
	return blocks.Element{
		Component: component(kind),
		Children:  []blocks.Output{blocks.Text(text)},
	}
}

func TestRenderer_TextInline(t *testing.T) {
	t.Parallel()

	r := newRenderer()

	t.Run("plain text is returned unwrapped", func(t *testing.T) {
		t.Parallel()
		got := r.TextInline(blocks.TextInline{Text: "plain"})
		assert.Equal(t, blocks.Text("plain"), got)
	})

	single := []struct {
		name string
		node blocks.TextInline
		want blocks.Kind
	}{
		{"bold", blocks.TextInline{Text: "x", Bold: true}, blocks.KindBoldInline},
		{"italic", blocks.TextInline{Text: "x", Italic: true}, blocks.KindItalicInline},
		{"underline", blocks.TextInline{Text: "x", Underline: true}, blocks.KindUnderlineInline},
		{"strikethrough", blocks.TextInline{Text: "x", Strikethrough: true}, blocks.KindStrikethroughInline},
		{"code", blocks.TextInline{Text: "x", Code: true}, blocks.KindCodeInline},
	}
	for _, tt := range single {
		t.Run("single flag "+tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.TextInline(tt.node)
			assert.Equal(t, wrap(tt.want, "x"), got)
		})
	}

	combined := []struct {
		name string
		node blocks.TextInline
		want blocks.Kind
	}{
		{"all flags pick bold", blocks.TextInline{Text: "x", Bold: true, Italic: true, Underline: true, Strikethrough: true, Code: true}, blocks.KindBoldInline},
		{"italic beats underline", blocks.TextInline{Text: "x", Italic: true, Underline: true}, blocks.KindItalicInline},
		{"underline beats code", blocks.TextInline{Text: "x", Underline: true, Code: true}, blocks.KindUnderlineInline},
		{"strikethrough beats code", blocks.TextInline{Text: "x", Strikethrough: true, Code: true}, blocks.KindStrikethroughInline},
	}
	for _, tt := range combined {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.TextInline(tt.node)
			el, ok := got.(blocks.Element)
			require.True(t, ok)
			assert.Equal(t, component(tt.want), el.Component)
			// A single wrapper holding the raw text, never nested elements.
			assert.Equal(t, []blocks.Output{blocks.Text("x")}, el.Children)
		})
	}
}

func TestRenderer_LinkInline(t *testing.T) {
	t.Parallel()

	r := newRenderer()
	link := blocks.LinkInline{
		URL:      "https://example.com/",
		Children: []blocks.TextInline{{Text: "Link"}},
	}

	got := r.LinkInline(link)

	assert.Equal(t, component(blocks.KindLinkInline), got.Component)
	assert.Equal(t, "https://example.com/", got.Props.URL)
	assert.Nil(t, got.Props.Image)
	require.Len(t, got.Children, 1)
	assert.Equal(t, r.TextInline(blocks.TextInline{Text: "Link"}), got.Children[0])
}

func TestRenderer_DefaultInline(t *testing.T) {
	t.Parallel()

	r := newRenderer()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		got := r.DefaultInline(blocks.TextInline{Text: "a", Italic: true})
		assert.Equal(t, wrap(blocks.KindItalicInline, "a"), got)
	})

	t.Run("link", func(t *testing.T) {
		t.Parallel()
		got := r.DefaultInline(blocks.LinkInline{URL: "/x"})
		el, ok := got.(blocks.Element)
		require.True(t, ok)
		assert.Equal(t, "/x", el.Props.URL)
	})

	t.Run("unknown kind is ignored", func(t *testing.T) {
		t.Parallel()
		got := r.DefaultInline(blocks.UnknownInline{Kind: "mention"})
		assert.Equal(t, blocks.Ignored{}, got)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, blocks.Ignored{}, r.DefaultInline(nil))
	})
}

func TestRenderer_ListItemInline(t *testing.T) {
	t.Parallel()

	r := newRenderer()
	got := r.ListItemInline(blocks.ListItemInline{Children: []blocks.DefaultInline{
		blocks.TextInline{Text: "one "},
		blocks.LinkInline{URL: "/two", Children: []blocks.TextInline{{Text: "two"}}},
		blocks.UnknownInline{Kind: "emoji"},
	}})

	assert.Equal(t, component(blocks.KindListItemInline), got.Component)
	require.Len(t, got.Children, 3)
	assert.Equal(t, blocks.Text("one "), got.Children[0])
	assert.IsType(t, blocks.Element{}, got.Children[1])
	assert.Equal(t, blocks.Ignored{}, got.Children[2])
}

func TestRenderer_HeadingBlock(t *testing.T) {
	t.Parallel()

	r := newRenderer()

	for level := 1; level <= 6; level++ {
		got := r.HeadingBlock(blocks.HeadingBlock{Level: level})
		assert.Equal(t, component(blocks.HeadingKind(level)), got.Component)
	}

	t.Run("out of range level passes through", func(t *testing.T) {
		t.Parallel()
		got := r.HeadingBlock(blocks.HeadingBlock{Level: 9})
		assert.Equal(t, "TestHeading9Node", got.Component.Name())
	})

	t.Run("children are default inlines", func(t *testing.T) {
		t.Parallel()
		got := r.HeadingBlock(blocks.HeadingBlock{
			Level:    1,
			Children: []blocks.DefaultInline{blocks.TextInline{Text: "Heading 1"}},
		})
		assert.Equal(t, []blocks.Output{blocks.Text("Heading 1")}, got.Children)
	})
}

func TestRenderer_ParagraphQuoteCode(t *testing.T) {
	t.Parallel()

	r := newRenderer()
	inlines := []blocks.DefaultInline{
		blocks.TextInline{Text: "a"},
		blocks.TextInline{Text: "b", Bold: true},
	}
	want := []blocks.Output{blocks.Text("a"), wrap(blocks.KindBoldInline, "b")}

	t.Run("paragraph", func(t *testing.T) {
		t.Parallel()
		got := r.ParagraphBlock(blocks.ParagraphBlock{Children: inlines})
		assert.Equal(t, component(blocks.KindParagraph), got.Component)
		assert.Equal(t, want, got.Children)
	})

	t.Run("quote", func(t *testing.T) {
		t.Parallel()
		got := r.QuoteBlock(blocks.QuoteBlock{Children: inlines})
		assert.Equal(t, component(blocks.KindQuote), got.Component)
		assert.Equal(t, want, got.Children)
	})

	t.Run("code maps text children through the text renderer", func(t *testing.T) {
		t.Parallel()
		got := r.CodeBlock(blocks.CodeBlock{Children: []blocks.TextInline{
			{Text: "fmt.Println()"},
			{Text: "x", Code: true},
		}})
		assert.Equal(t, component(blocks.KindCode), got.Component)
		assert.Equal(t, []blocks.Output{
			blocks.Text("fmt.Println()"),
			wrap(blocks.KindCodeInline, "x"),
		}, got.Children)
	})
}

func TestRenderer_ListBlock(t *testing.T) {
	t.Parallel()

	r := newRenderer()
	item := func(text string) blocks.ListItemInline {
		return blocks.ListItemInline{Children: []blocks.DefaultInline{blocks.TextInline{Text: text}}}
	}

	formats := []struct {
		format blocks.ListFormat
		want   blocks.Kind
	}{
		{blocks.ListOrdered, blocks.KindOrderedList},
		{blocks.ListUnordered, blocks.KindUnorderedList},
		{"", blocks.KindUnorderedList},
		{"Ordered", blocks.KindUnorderedList},
		{"numbered", blocks.KindUnorderedList},
	}
	for _, tt := range formats {
		t.Run("format "+string(tt.format), func(t *testing.T) {
			t.Parallel()
			got := r.ListBlock(blocks.ListBlock{Format: tt.format})
			assert.Equal(t, component(tt.want), got.Component)
		})
	}

	t.Run("nested lists recurse and keep order", func(t *testing.T) {
		t.Parallel()
		list := blocks.ListBlock{
			Format: blocks.ListOrdered,
			Children: []blocks.ListChild{
				item("1"),
				blocks.ListBlock{
					Format: blocks.ListUnordered,
					Children: []blocks.ListChild{
						item("1.a"),
						blocks.ListBlock{
							Format:   blocks.ListOrdered,
							Children: []blocks.ListChild{item("1.a.i")},
						},
						item("1.b"),
					},
				},
				item("2"),
			},
		}

		got := r.ListBlock(list)

		require.Len(t, got.Children, 3)
		assert.Equal(t, "1", blocks.TextContent(got.Children[0]))
		assert.Equal(t, "2", blocks.TextContent(got.Children[2]))

		inner, ok := got.Children[1].(blocks.Element)
		require.True(t, ok)
		assert.Equal(t, component(blocks.KindUnorderedList), inner.Component)
		require.Len(t, inner.Children, 3)
		assert.Equal(t, "1.a", blocks.TextContent(inner.Children[0]))
		assert.Equal(t, "1.b", blocks.TextContent(inner.Children[2]))

		deepest, ok := inner.Children[1].(blocks.Element)
		require.True(t, ok)
		assert.Equal(t, component(blocks.KindOrderedList), deepest.Component)
		require.Len(t, deepest.Children, 1)
		li, ok := deepest.Children[0].(blocks.Element)
		require.True(t, ok)
		assert.Equal(t, component(blocks.KindListItemInline), li.Component)
		assert.Equal(t, "1.a.i", blocks.TextContent(li))
	})

	t.Run("unknown child keeps its position", func(t *testing.T) {
		t.Parallel()
		got := r.ListBlock(blocks.ListBlock{Children: []blocks.ListChild{
			item("a"),
			blocks.UnknownInline{Kind: "paragraph"},
			item("b"),
		}})
		require.Len(t, got.Children, 3)
		assert.Equal(t, blocks.Ignored{}, got.Children[1])
		assert.Len(t, blocks.Compact(got.Children), 2)
	})
}

func TestRenderer_ImageBlock(t *testing.T) {
	t.Parallel()

	r := newRenderer()
	img := blocks.Image{
		URL:             "example_image_df80dd3023.jpg",
		AlternativeText: "Image alternative text",
		Width:           480,
		Height:          320,
	}

	got := r.ImageBlock(blocks.ImageBlock{Image: img})

	assert.Equal(t, component(blocks.KindImage), got.Component)
	require.NotNil(t, got.Props.Image)
	assert.Equal(t, img, *got.Props.Image)
	assert.Empty(t, got.Children)
}

func TestRenderer_RenderBlocks(t *testing.T) {
	t.Parallel()

	r := newRenderer()

	t.Run("one output per block in order", func(t *testing.T) {
		t.Parallel()
		doc := []blocks.Block{
			blocks.HeadingBlock{Level: 1, Children: []blocks.DefaultInline{blocks.TextInline{Text: "Heading 1"}}},
			blocks.ParagraphBlock{Children: []blocks.DefaultInline{blocks.TextInline{Text: "Paragraph"}}},
			blocks.UnknownBlock{Kind: "table"},
			blocks.QuoteBlock{Children: []blocks.DefaultInline{blocks.TextInline{Text: "Quote"}}},
			blocks.CodeBlock{Children: []blocks.TextInline{{Text: "Code"}}},
			blocks.ImageBlock{},
		}

		got := r.RenderBlocks(doc)

		require.Len(t, got, len(doc))
		wantKinds := []blocks.Kind{blocks.HeadingKind(1), blocks.KindParagraph, "", blocks.KindQuote, blocks.KindCode, blocks.KindImage}
		for i, kind := range wantKinds {
			if kind == "" {
				assert.Equal(t, blocks.Ignored{}, got[i])
				continue
			}
			el, ok := got[i].(blocks.Element)
			require.True(t, ok, "position %d", i)
			assert.Equal(t, component(kind), el.Component, "position %d", i)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, r.RenderBlocks(nil))
	})

	t.Run("nil block is ignored", func(t *testing.T) {
		t.Parallel()
		got := r.RenderBlocks([]blocks.Block{nil})
		assert.Equal(t, []blocks.Output{blocks.Ignored{}}, got)
	})

	t.Run("package function matches method", func(t *testing.T) {
		t.Parallel()
		doc := []blocks.Block{blocks.ParagraphBlock{Children: []blocks.DefaultInline{blocks.TextInline{Text: "p"}}}}
		assert.Equal(t, r.RenderBlocks(doc), blocks.RenderBlocks(mock.PrefixResolver(prefix), doc))
	})
}

func TestTextInline_Style(t *testing.T) {
	t.Parallel()

	_, ok := blocks.TextInline{Text: "x"}.Style()
	assert.False(t, ok)

	kind, ok := blocks.TextInline{Italic: true, Code: true}.Style()
	assert.True(t, ok)
	assert.Equal(t, blocks.KindItalicInline, kind)
}

func TestCompact(t *testing.T) {
	t.Parallel()

	got := blocks.Compact([]blocks.Output{blocks.Text("a"), blocks.Ignored{}, nil, blocks.Text("b")})
	assert.Equal(t, []blocks.Output{blocks.Text("a"), blocks.Text("b")}, got)
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	el := blocks.Element{Children: []blocks.Output{
		blocks.Text("a"),
		blocks.Ignored{},
		blocks.Element{Children: []blocks.Output{blocks.Text("b")}},
	}}
	assert.Equal(t, "ab", blocks.TextContent(el))
	assert.Equal(t, "", blocks.TextContent(blocks.Ignored{}))
}
