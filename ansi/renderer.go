package ansi

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/blocks"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

type renderer struct {
	styles Styles
	width  int
}

func newRenderer(theme blocks.Theme, width int) *renderer {
	return &renderer{styles: NewStyles(theme), width: width}
}

func (r *renderer) render(outputs []blocks.Output) (string, error) {
	var buf strings.Builder
	for i, o := range outputs {
		s, err := r.block(o)
		if err != nil {
			return "", fmt.Errorf("output %d: %w", i, err)
		}
		if s == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(strings.TrimRight(s, "\n"))
	}
	return buf.String(), nil
}

func (r *renderer) block(o blocks.Output) (string, error) {
	switch v := o.(type) {
	case blocks.Text:
		return r.wrap(string(v), r.width), nil
	case blocks.Element:
		return r.element(v)
	default:
		return "", nil
	}
}

func (r *renderer) element(el blocks.Element) (string, error) {
	c, err := component(el.Component)
	if err != nil {
		return "", err
	}
	if level, ok := c.kind.HeadingLevel(); ok {
		return r.heading(el, level)
	}
	switch c.kind {
	case blocks.KindParagraph:
		inline, err := r.inlines(el.Children)
		if err != nil {
			return "", err
		}
		return r.wrap(inline, r.width), nil

	case blocks.KindQuote:
		inline, err := r.inlines(el.Children)
		if err != nil {
			return "", err
		}
		// Border and padding take two columns.
		return r.styles.Quote.Width(max(r.width-2, 10)).Render(inline), nil

	case blocks.KindCode:
		return r.code(el)

	case blocks.KindOrderedList, blocks.KindUnorderedList:
		var buf strings.Builder
		if err := r.list(el, c.kind == blocks.KindOrderedList, 0, &buf); err != nil {
			return "", err
		}
		return buf.String(), nil

	case blocks.KindImage:
		return r.image(el), nil

	default:
		// Inline components at block level render as a wrapped line.
		inline, err := r.inline(el)
		if err != nil {
			return "", err
		}
		return r.wrap(inline, r.width), nil
	}
}

func (r *renderer) heading(el blocks.Element, level int) (string, error) {
	inline, err := r.inlines(el.Children)
	if err != nil {
		return "", err
	}
	marker := r.styles.Muted.Render(strings.Repeat("#", max(level, 1)) + " ")
	out := r.wrap(marker+r.styles.Heading.Render(inline), r.width)
	var rule string
	switch level {
	case 1:
		rule = "═"
	case 2:
		rule = "─"
	default:
		return out, nil
	}
	n := min(uniseg.StringWidth(blocks.TextContent(el))+level+1, r.width)
	return out + "\n" + r.styles.Muted.Render(strings.Repeat(rule, n)), nil
}

func (r *renderer) code(el blocks.Element) (string, error) {
	var src strings.Builder
	for i, child := range el.Children {
		s, err := r.inlineOutput(child)
		if err != nil {
			return "", fmt.Errorf("child %d: %w", i, err)
		}
		src.WriteString(s)
	}
	gutter := r.styles.Muted.Render("│") + " "
	lines := strings.Split(strings.TrimRight(src.String(), "\n"), "\n")
	var buf strings.Builder
	for i, line := range lines {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(gutter + r.styles.Code.Render(line))
	}
	return buf.String(), nil
}

func (r *renderer) list(el blocks.Element, ordered bool, depth int, buf *strings.Builder) error {
	indent := strings.Repeat("  ", depth)
	num := 0
	for i, child := range el.Children {
		item, ok := child.(blocks.Element)
		if !ok {
			continue
		}
		c, err := component(item.Component)
		if err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
		switch c.kind {
		case blocks.KindOrderedList, blocks.KindUnorderedList:
			if err := r.list(item, c.kind == blocks.KindOrderedList, depth+1, buf); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		default:
			content, err := r.inlines(item.Children)
			if err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
			marker := "- "
			if ordered {
				num++
				marker = fmt.Sprintf("%d. ", num)
			}
			r.writeListItem(buf, indent, marker, content)
		}
	}
	return nil
}

// writeListItem writes a list item with proper continuation-line indentation.
func (r *renderer) writeListItem(buf *strings.Builder, indent, marker, content string) {
	prefix := indent + marker
	prefixWidth := runewidth.StringWidth(prefix)
	itemWidth := max(r.width-prefixWidth, 10)
	wrapped := strings.TrimRight(r.wrap(content, itemWidth), " ")
	lines := strings.Split(wrapped, "\n")
	continuation := strings.Repeat(" ", prefixWidth)
	for i, line := range lines {
		if i == 0 {
			buf.WriteString(indent + r.styles.Muted.Render(marker) + line + "\n")
		} else {
			buf.WriteString(continuation + line + "\n")
		}
	}
}

func (r *renderer) image(el blocks.Element) string {
	img := el.Props.Image
	if img == nil {
		return r.styles.Muted.Render("[image]")
	}
	label := "[image"
	if img.AlternativeText != "" {
		label += ": " + img.AlternativeText
	}
	label += "]"
	line := label + " (" + img.URL + ")"
	return r.styles.Muted.Render(runewidth.Truncate(line, r.width, "…"))
}

func (r *renderer) inlines(outputs []blocks.Output) (string, error) {
	var buf strings.Builder
	for i, o := range outputs {
		s, err := r.inlineOutput(o)
		if err != nil {
			return "", fmt.Errorf("child %d: %w", i, err)
		}
		buf.WriteString(s)
	}
	return buf.String(), nil
}

func (r *renderer) inlineOutput(o blocks.Output) (string, error) {
	switch v := o.(type) {
	case blocks.Text:
		return string(v), nil
	case blocks.Element:
		return r.inline(v)
	default:
		return "", nil
	}
}

func (r *renderer) inline(el blocks.Element) (string, error) {
	c, err := component(el.Component)
	if err != nil {
		return "", err
	}
	inner, err := r.inlines(el.Children)
	if err != nil {
		return "", err
	}
	switch c.kind {
	case blocks.KindBoldInline:
		return r.styles.Bold.Render(inner), nil
	case blocks.KindItalicInline:
		return r.styles.Italic.Render(inner), nil
	case blocks.KindUnderlineInline:
		return r.styles.Underline.Render(inner), nil
	case blocks.KindStrikethroughInline:
		return r.styles.Strikethrough.Render(inner), nil
	case blocks.KindCodeInline:
		return r.styles.Code.Render(inner), nil
	case blocks.KindLinkInline:
		link := r.styles.Link.Render(inner)
		if el.Props.URL == "" || el.Props.URL == inner {
			return link, nil
		}
		return link + " " + r.styles.Muted.Render("("+el.Props.URL+")"), nil
	default:
		return inner, nil
	}
}

func (r *renderer) wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
