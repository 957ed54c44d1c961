// Package goldmark converts Markdown into documents using goldmark for
// parsing. Constructs without a block counterpart (thematic breaks, raw HTML
// blocks) are dropped.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/blocks"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Parse converts Markdown source into a document.
func Parse(source []byte) []blocks.Block {
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	doc := md.Parser().Parse(text.NewReader(source))
	c := &converter{source: source}
	return c.blocks(doc)
}

// ParseString converts a Markdown string into a document.
func ParseString(source string) []blocks.Block {
	return Parse([]byte(source))
}

type converter struct {
	source []byte
}

func (c *converter) blocks(parent ast.Node) []blocks.Block {
	var result []blocks.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b, ok := c.block(n); ok {
			result = append(result, b)
		}
	}
	return result
}

func (c *converter) block(node ast.Node) (blocks.Block, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		return blocks.HeadingBlock{Level: n.Level, Children: c.inlines(n)}, true

	case *ast.Paragraph, *ast.TextBlock:
		if img, ok := soleImage(n); ok {
			return blocks.ImageBlock{Image: blocks.Image{
				URL:             unescape(img.Destination),
				AlternativeText: c.plain(img),
				Caption:         unescape(img.Title),
			}}, true
		}
		return blocks.ParagraphBlock{Children: c.inlines(n)}, true

	case *ast.Blockquote:
		var children []blocks.DefaultInline
		c.flatten(n, &children)
		return blocks.QuoteBlock{Children: children}, true

	case *ast.FencedCodeBlock:
		return c.code(n), true

	case *ast.CodeBlock:
		return c.code(n), true

	case *ast.List:
		return c.list(n, 0), true

	default:
		return nil, false
	}
}

func (c *converter) code(n ast.Node) blocks.CodeBlock {
	return blocks.CodeBlock{Children: []blocks.TextInline{{Text: c.codeText(n)}}}
}

func (c *converter) codeText(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// flatten appends the block content below parent to out as lines of inline
// content. Quotes hold inlines only, so code becomes code-styled text and
// list items become lines of their own.
func (c *converter) flatten(parent ast.Node, out *[]blocks.DefaultInline) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			appendLine(out, c.inlines(v)...)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if src := c.codeText(v); src != "" {
				appendLine(out, blocks.TextInline{Text: src, Code: true})
			}
		case *ast.List, *ast.ListItem, *ast.Blockquote:
			c.flatten(v, out)
		}
	}
}

func appendLine(out *[]blocks.DefaultInline, line ...blocks.DefaultInline) {
	if len(line) == 0 {
		return
	}
	if len(*out) > 0 {
		*out = append(*out, blocks.TextInline{Text: "\n"})
	}
	*out = append(*out, line...)
}

// list flattens nested lists into siblings of the item that contains them,
// which is how the CMS editor represents indentation.
func (c *converter) list(n *ast.List, depth int) blocks.ListBlock {
	format := blocks.ListUnordered
	if n.IsOrdered() {
		format = blocks.ListOrdered
	}
	l := blocks.ListBlock{Format: format, IndentLevel: depth}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		if _, ok := item.(*ast.ListItem); !ok {
			continue
		}
		var inlines []blocks.DefaultInline
		var nested []blocks.ListChild
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch v := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				appendLine(&inlines, c.inlines(v)...)
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				if src := c.codeText(v); src != "" {
					appendLine(&inlines, blocks.TextInline{Text: src, Code: true})
				}
			case *ast.Blockquote:
				c.flatten(v, &inlines)
			case *ast.List:
				nested = append(nested, c.list(v, depth+1))
			}
		}
		l.Children = append(l.Children, blocks.ListItemInline{Children: inlines})
		l.Children = append(l.Children, nested...)
	}
	return l
}

func soleImage(n ast.Node) (*ast.Image, bool) {
	if n.ChildCount() != 1 {
		return nil, false
	}
	img, ok := n.FirstChild().(*ast.Image)
	return img, ok
}

// style is the set of flags in effect while walking inline content.
type style struct {
	bold, italic, underline, strikethrough, code bool
}

func (s style) text(t string) blocks.TextInline {
	return blocks.TextInline{
		Text:          t,
		Bold:          s.bold,
		Italic:        s.italic,
		Underline:     s.underline,
		Strikethrough: s.strikethrough,
		Code:          s.code,
	}
}

func (c *converter) inlines(parent ast.Node) []blocks.DefaultInline {
	var out []blocks.DefaultInline
	var st style
	c.walkInline(parent, &st, func(n blocks.DefaultInline) {
		t, ok := n.(blocks.TextInline)
		if !ok || len(out) == 0 {
			out = append(out, n)
			return
		}
		if last, ok := out[len(out)-1].(blocks.TextInline); ok && sameStyle(last, t) {
			last.Text += t.Text
			out[len(out)-1] = last
			return
		}
		out = append(out, n)
	})
	return out
}

func sameStyle(a, b blocks.TextInline) bool {
	a.Text, b.Text = "", ""
	return a == b
}

func (c *converter) walkInline(parent ast.Node, st *style, emit func(blocks.DefaultInline)) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		c.inline(n, st, emit)
	}
}

func (c *converter) inline(node ast.Node, st *style, emit func(blocks.DefaultInline)) {
	switch n := node.(type) {
	case *ast.Text:
		t := c.text(n)
		switch {
		case n.HardLineBreak():
			t += "\n"
		case n.SoftLineBreak():
			t += " "
		}
		emit(st.text(t))

	case *ast.String:
		emit(st.text(string(n.Value)))

	case *ast.Emphasis:
		saved := *st
		if n.Level >= 2 {
			st.bold = true
		} else {
			st.italic = true
		}
		c.walkInline(n, st, emit)
		st.bold, st.italic = saved.bold, saved.italic

	case *extast.Strikethrough:
		saved := st.strikethrough
		st.strikethrough = true
		c.walkInline(n, st, emit)
		st.strikethrough = saved

	case *ast.CodeSpan:
		code := *st
		code.code = true
		emit(code.text(c.plain(n)))

	case *ast.Link:
		var children []blocks.TextInline
		c.walkInline(n, st, func(child blocks.DefaultInline) {
			t, ok := child.(blocks.TextInline)
			if !ok {
				return
			}
			if len(children) > 0 && sameStyle(children[len(children)-1], t) {
				children[len(children)-1].Text += t.Text
				return
			}
			children = append(children, t)
		})
		emit(blocks.LinkInline{URL: unescape(n.Destination), Children: children})

	case *ast.AutoLink:
		url := string(n.URL(c.source))
		emit(blocks.LinkInline{URL: url, Children: []blocks.TextInline{st.text(string(n.Label(c.source)))}})

	case *ast.Image:
		// Inline images have no counterpart; keep their alt text.
		emit(st.text(c.plain(n)))

	case *ast.RawHTML:
		var raw strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			raw.Write(seg.Value(c.source))
		}
		switch strings.ToLower(raw.String()) {
		case "<u>":
			st.underline = true
		case "</u>":
			st.underline = false
		}

	default:
		c.walkInline(node, st, emit)
	}
}

// plain returns the concatenated text below n without styles.
func (c *converter) plain(n ast.Node) string {
	var buf strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			buf.WriteString(c.text(v))
		case *ast.String:
			buf.Write(v.Value)
		default:
			buf.WriteString(c.plain(child))
		}
	}
	return buf.String()
}

// text returns the literal text of n. Code span text is raw, everything else
// has backslash escapes and character references resolved.
func (c *converter) text(n *ast.Text) string {
	v := n.Segment.Value(c.source)
	if n.IsRaw() {
		return string(v)
	}
	return unescape(v)
}

// unescape resolves backslash escapes and character references in one pass
// so an escaped ampersand is not read as the start of a reference.
func unescape(v []byte) string {
	var buf bytes.Buffer
	resolve := func(b []byte) {
		buf.Write(util.ResolveEntityNames(util.ResolveNumericReferences(b)))
	}
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) && util.IsPunct(v[i+1]) {
			resolve(v[start:i])
			buf.WriteByte(v[i+1])
			i++
			start = i + 1
		}
	}
	resolve(v[start:])
	return buf.String()
}
