// Package markdown mounts rendered documents as CommonMark text.
package markdown

import (
	"fmt"
	"strings"

	"github.com/fwojciec/blocks"
)

// Component is a Markdown component. Its kind selects the syntax.
type Component struct {
	name string
	kind blocks.Kind
}

var _ blocks.Component = (*Component)(nil)

// Name returns the component name.
func (c *Component) Name() string { return c.name }

// Kind returns the component kind.
func (c *Component) Kind() blocks.Kind { return c.kind }

// Components returns a Markdown component for every kind, named with prefix.
func Components(prefix string) blocks.ComponentSet {
	kinds := blocks.Kinds()
	set := make(blocks.ComponentSet, len(kinds))
	for _, kind := range kinds {
		name := kind.ComponentName(prefix)
		set[name] = &Component{name: name, kind: kind}
	}
	return set
}

// NewRegistry returns a registry over the Markdown components.
func NewRegistry(prefix string) (*blocks.Registry, error) {
	return blocks.NewRegistry(prefix, Components(prefix).Lookup)
}

// Render returns outputs as Markdown. Blocks are separated by a blank line
// and the result ends with a newline unless it is empty.
func Render(outputs []blocks.Output) (string, error) {
	parts := make([]string, 0, len(outputs))
	for i, o := range outputs {
		s, err := block(o)
		if err != nil {
			return "", fmt.Errorf("output %d: %w", i, err)
		}
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

func block(o blocks.Output) (string, error) {
	switch v := o.(type) {
	case blocks.Text:
		return escapeLines(escape(string(v))), nil
	case blocks.Element:
		return element(v)
	default:
		return "", nil
	}
}

func element(el blocks.Element) (string, error) {
	c, err := component(el.Component)
	if err != nil {
		return "", err
	}
	if level, ok := c.kind.HeadingLevel(); ok {
		inline, err := inlines(el.Children)
		if err != nil {
			return "", err
		}
		// A trailing # would be read as the closing sequence.
		if strings.HasSuffix(inline, "#") {
			inline = inline[:len(inline)-1] + `\#`
		}
		return strings.Repeat("#", max(level, 1)) + " " + inline, nil
	}
	switch c.kind {
	case blocks.KindParagraph:
		inline, err := inlines(el.Children)
		if err != nil {
			return "", err
		}
		return escapeLines(inline), nil
	case blocks.KindQuote:
		inline, err := inlines(el.Children)
		if err != nil {
			return "", err
		}
		return "> " + strings.ReplaceAll(escapeLines(inline), "\n", "\n> "), nil
	case blocks.KindCode:
		src := blocks.TextContent(el)
		fence := "```"
		for strings.Contains(src, fence) {
			fence += "`"
		}
		return fence + "\n" + strings.TrimRight(src, "\n") + "\n" + fence, nil
	case blocks.KindOrderedList, blocks.KindUnorderedList:
		var buf strings.Builder
		if err := list(el, c.kind == blocks.KindOrderedList, "", &buf); err != nil {
			return "", err
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	case blocks.KindImage:
		if el.Props.Image == nil {
			return "", nil
		}
		return "![" + escape(el.Props.Image.AlternativeText) + "](" + destination(el.Props.Image.URL) + ")", nil
	default:
		s, err := inline(el, c)
		if err != nil {
			return "", err
		}
		return escapeLines(s), nil
	}
}

func list(el blocks.Element, ordered bool, indent string, buf *strings.Builder) error {
	num := 0
	// Nested lists indent under the marker of the preceding item.
	childIndent := indent + "  "
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
			if err := list(item, c.kind == blocks.KindOrderedList, childIndent, buf); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		default:
			content, err := inlines(item.Children)
			if err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
			marker := "- "
			if ordered {
				num++
				marker = fmt.Sprintf("%d. ", num)
			}
			childIndent = indent + strings.Repeat(" ", len(marker))
			content = strings.ReplaceAll(escapeLines(content), "\n", "\n"+childIndent)
			buf.WriteString(indent + marker + content + "\n")
		}
	}
	return nil
}

func inlines(outputs []blocks.Output) (string, error) {
	var buf strings.Builder
	for i, o := range outputs {
		switch v := o.(type) {
		case blocks.Text:
			buf.WriteString(escape(string(v)))
		case blocks.Element:
			c, err := component(v.Component)
			if err != nil {
				return "", fmt.Errorf("child %d: %w", i, err)
			}
			s, err := inline(v, c)
			if err != nil {
				return "", fmt.Errorf("child %d: %w", i, err)
			}
			buf.WriteString(s)
		}
	}
	return buf.String(), nil
}

func inline(el blocks.Element, c *Component) (string, error) {
	if c.kind == blocks.KindCodeInline {
		return codeSpan(blocks.TextContent(el)), nil
	}
	inner, err := inlines(el.Children)
	if err != nil {
		return "", err
	}
	switch c.kind {
	case blocks.KindBoldInline:
		return "**" + inner + "**", nil
	case blocks.KindItalicInline:
		return "_" + inner + "_", nil
	case blocks.KindUnderlineInline:
		return "<u>" + inner + "</u>", nil
	case blocks.KindStrikethroughInline:
		return "~~" + inner + "~~", nil
	case blocks.KindLinkInline:
		return "[" + inner + "](" + destination(el.Props.URL) + ")", nil
	default:
		return inner, nil
	}
}

func codeSpan(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"~", `\~`,
	"&", `\&`,
)

func escape(s string) string {
	return escaper.Replace(s)
}

// escapeLines escapes the first character of every line that would
// otherwise start a heading, quote, list or thematic break. Input must
// already be inline-escaped.
func escapeLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = escapeLine(line)
	}
	return strings.Join(lines, "\n")
}

func escapeLine(line string) string {
	start := len(line) - len(strings.TrimLeft(line, " "))
	if start > 3 || start == len(line) {
		return line
	}
	switch line[start] {
	case '#', '>', '+', '-', '=':
		return line[:start] + `\` + line[start:]
	}
	// Ordered list markers escape the delimiter: 1\. or 1\).
	end := start
	for end < len(line) && end-start < 10 && line[end] >= '0' && line[end] <= '9' {
		end++
	}
	if end > start && end < len(line) && (line[end] == '.' || line[end] == ')') {
		return line[:end] + `\` + line[end:]
	}
	return line
}

// destination returns url as a link destination. URLs with spaces,
// parentheses or angle brackets use the <...> form.
func destination(url string) string {
	url = strings.ReplaceAll(url, `\`, `\\`)
	if !strings.ContainsAny(url, " ()<>") {
		return url
	}
	return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(url) + ">"
}

func component(c blocks.Component) (*Component, error) {
	switch v := c.(type) {
	case *Component:
		return v, nil
	case blocks.Unresolved:
		return nil, fmt.Errorf("%s: %w", v.Name(), blocks.ErrComponentNotFound)
	case nil:
		return nil, fmt.Errorf("nil component: %w", blocks.ErrComponentNotFound)
	default:
		return nil, fmt.Errorf("%s (%T): %w", c.Name(), c, blocks.ErrForeignComponent)
	}
}
