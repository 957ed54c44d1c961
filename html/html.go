// Package html mounts rendered documents as HTML using golang.org/x/net/html.
package html

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/fwojciec/blocks"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Component renders an element as a single HTML tag.
type Component struct {
	name string
	kind blocks.Kind
	tag  string
}

var _ blocks.Component = (*Component)(nil)

// NewComponent creates a component that mounts kind as tag under name.
func NewComponent(name string, kind blocks.Kind, tag string) *Component {
	return &Component{name: name, kind: kind, tag: tag}
}

// Name returns the component name.
func (c *Component) Name() string { return c.name }

// Kind returns the component kind.
func (c *Component) Kind() blocks.Kind { return c.kind }

// Tag returns the HTML tag name.
func (c *Component) Tag() string { return c.tag }

var defaultTags = map[blocks.Kind]string{
	blocks.KindBoldInline:          "strong",
	blocks.KindItalicInline:        "em",
	blocks.KindUnderlineInline:     "u",
	blocks.KindStrikethroughInline: "del",
	blocks.KindCodeInline:          "code",
	blocks.KindLinkInline:          "a",
	blocks.KindListItemInline:      "li",
	blocks.HeadingKind(1):          "h1",
	blocks.HeadingKind(2):          "h2",
	blocks.HeadingKind(3):          "h3",
	blocks.HeadingKind(4):          "h4",
	blocks.HeadingKind(5):          "h5",
	blocks.HeadingKind(6):          "h6",
	blocks.KindParagraph:           "p",
	blocks.KindQuote:               "blockquote",
	blocks.KindCode:                "pre",
	blocks.KindOrderedList:         "ol",
	blocks.KindUnorderedList:       "ul",
	blocks.KindImage:               "img",
}

// Components returns the default HTML component for every kind, named with
// prefix.
func Components(prefix string) blocks.ComponentSet {
	set := make(blocks.ComponentSet, len(defaultTags))
	for kind, tag := range defaultTags {
		name := kind.ComponentName(prefix)
		set[name] = NewComponent(name, kind, tag)
	}
	return set
}

// NewRegistry returns a registry over the default components.
func NewRegistry(prefix string) (*blocks.Registry, error) {
	return blocks.NewRegistry(prefix, Components(prefix).Lookup)
}

// Render writes outputs as an HTML fragment. Ignored positions write nothing.
func Render(w io.Writer, outputs []blocks.Output) error {
	for i, o := range outputs {
		n, err := Node(o)
		if err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
		if n == nil {
			continue
		}
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}
	return nil
}

// RenderString renders outputs to a string.
func RenderString(outputs []blocks.Output) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, outputs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Node converts one output into an HTML node tree. It returns nil for
// Ignored.
func Node(o blocks.Output) (*html.Node, error) {
	switch v := o.(type) {
	case blocks.Text:
		return &html.Node{Type: html.TextNode, Data: string(v)}, nil
	case blocks.Element:
		return elementNode(v)
	case blocks.Ignored, nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown output type: %T", o)
	}
}

func elementNode(el blocks.Element) (*html.Node, error) {
	c, err := component(el.Component)
	if err != nil {
		return nil, err
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     c.tag,
		DataAtom: atom.Lookup([]byte(c.tag)),
		Attr:     attributes(c.kind, el.Props),
	}
	for i, child := range el.Children {
		cn, err := Node(child)
		if err != nil {
			return nil, fmt.Errorf("%s: child %d: %w", c.name, i, err)
		}
		if cn == nil {
			continue
		}
		n.AppendChild(cn)
	}
	return n, nil
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

func attributes(kind blocks.Kind, props blocks.Props) []html.Attribute {
	switch kind {
	case blocks.KindLinkInline:
		return []html.Attribute{{Key: "href", Val: props.URL}}
	case blocks.KindImage:
		if props.Image == nil {
			return nil
		}
		img := props.Image
		attrs := []html.Attribute{
			{Key: "src", Val: img.URL},
			{Key: "alt", Val: img.AlternativeText},
		}
		if img.Width > 0 {
			attrs = append(attrs, html.Attribute{Key: "width", Val: strconv.Itoa(img.Width)})
		}
		if img.Height > 0 {
			attrs = append(attrs, html.Attribute{Key: "height", Val: strconv.Itoa(img.Height)})
		}
		return attrs
	}
	return nil
}

// Sanitize filters rendered HTML through the user-generated-content policy,
// dropping unsafe URLs such as javascript: links.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

var policy = bluemonday.UGCPolicy()
