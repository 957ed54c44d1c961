package blocks

// Renderer maps document nodes to component elements. It holds no state
// beyond its resolver and is safe for concurrent use when the resolver is.
type Renderer struct {
	resolver Resolver
}

// NewRenderer creates a Renderer that resolves components with r.
func NewRenderer(r Resolver) *Renderer {
	return &Renderer{resolver: r}
}

// RenderBlocks renders a document using r. See Renderer.RenderBlocks.
func RenderBlocks(r Resolver, blocks []Block) []Output {
	return NewRenderer(r).RenderBlocks(blocks)
}

// RenderBlocks renders each block in order. The result has exactly one
// position per input block; blocks of an unknown type yield Ignored.
func (r *Renderer) RenderBlocks(blocks []Block) []Output {
	result := make([]Output, len(blocks))
	for i, b := range blocks {
		result[i] = r.Block(b)
	}
	return result
}

// Block dispatches on the block type.
func (r *Renderer) Block(b Block) Output {
	switch n := b.(type) {
	case HeadingBlock:
		return r.HeadingBlock(n)
	case ParagraphBlock:
		return r.ParagraphBlock(n)
	case CodeBlock:
		return r.CodeBlock(n)
	case ListBlock:
		return r.ListBlock(n)
	case QuoteBlock:
		return r.QuoteBlock(n)
	case ImageBlock:
		return r.ImageBlock(n)
	default:
		return Ignored{}
	}
}

// TextInline wraps the text in the component of its highest-priority style.
// Unstyled text is returned as raw Text. Several set flags never nest: only
// the first of bold, italic, underline, strikethrough, code applies.
func (r *Renderer) TextInline(n TextInline) Output {
	kind, ok := n.Style()
	if !ok {
		return Text(n.Text)
	}
	return r.element(kind, Props{}, []Output{Text(n.Text)})
}

// LinkInline renders a link with its URL prop and text children.
func (r *Renderer) LinkInline(n LinkInline) Element {
	return r.element(KindLinkInline, Props{URL: n.URL}, r.texts(n.Children))
}

// DefaultInline dispatches an inline node to the text or link renderer.
func (r *Renderer) DefaultInline(n DefaultInline) Output {
	switch v := n.(type) {
	case LinkInline:
		return r.LinkInline(v)
	case TextInline:
		return r.TextInline(v)
	default:
		return Ignored{}
	}
}

// ListItemInline renders one list entry.
func (r *Renderer) ListItemInline(n ListItemInline) Element {
	return r.element(KindListItemInline, Props{}, r.inlines(n.Children))
}

// HeadingBlock renders a heading with the component for its level.
func (r *Renderer) HeadingBlock(n HeadingBlock) Element {
	return r.element(HeadingKind(n.Level), Props{}, r.inlines(n.Children))
}

// ParagraphBlock renders a paragraph.
func (r *Renderer) ParagraphBlock(n ParagraphBlock) Element {
	return r.element(KindParagraph, Props{}, r.inlines(n.Children))
}

// QuoteBlock renders a quotation.
func (r *Renderer) QuoteBlock(n QuoteBlock) Element {
	return r.element(KindQuote, Props{}, r.inlines(n.Children))
}

// CodeBlock renders a code block. Children go straight to TextInline since
// code never contains links.
func (r *Renderer) CodeBlock(n CodeBlock) Element {
	return r.element(KindCode, Props{}, r.texts(n.Children))
}

// ListBlock renders a list, recursing into nested lists.
func (r *Renderer) ListBlock(n ListBlock) Element {
	kind := KindUnorderedList
	if n.Ordered() {
		kind = KindOrderedList
	}
	children := make([]Output, len(n.Children))
	for i, c := range n.Children {
		switch v := c.(type) {
		case ListBlock:
			children[i] = r.ListBlock(v)
		case ListItemInline:
			children[i] = r.ListItemInline(v)
		default:
			children[i] = Ignored{}
		}
	}
	return r.element(kind, Props{}, children)
}

// ImageBlock renders an image. The descriptor is passed as the Image prop.
func (r *Renderer) ImageBlock(n ImageBlock) Element {
	img := n.Image
	return r.element(KindImage, Props{Image: &img}, nil)
}

func (r *Renderer) element(kind Kind, props Props, children []Output) Element {
	return Element{
		Component: r.resolver.Resolve(kind),
		Props:     props,
		Children:  children,
	}
}

func (r *Renderer) inlines(nodes []DefaultInline) []Output {
	result := make([]Output, len(nodes))
	for i, n := range nodes {
		result[i] = r.DefaultInline(n)
	}
	return result
}

func (r *Renderer) texts(nodes []TextInline) []Output {
	result := make([]Output, len(nodes))
	for i, n := range nodes {
		result[i] = r.TextInline(n)
	}
	return result
}
