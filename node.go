package blocks

import (
	"encoding/json"
)

// NodeType is the type discriminator carried by every node on the wire.
type NodeType string

const (
	TypeHeading   NodeType = "heading"
	TypeParagraph NodeType = "paragraph"
	TypeQuote     NodeType = "quote"
	TypeCode      NodeType = "code"
	TypeList      NodeType = "list"
	TypeImage     NodeType = "image"
	TypeText      NodeType = "text"
	TypeLink      NodeType = "link"
	TypeListItem  NodeType = "list-item"
)

// ListFormat selects between ordered and unordered lists. Any value other than
// ListOrdered renders as an unordered list.
type ListFormat string

const (
	ListOrdered   ListFormat = "ordered"
	ListUnordered ListFormat = "unordered"
)

// Block is a sealed interface representing a top-level document node.
// The unexported marker method prevents external implementations.
type Block interface {
	isBlock()
	Type() NodeType
}

// DefaultInline is a sealed interface for the inline nodes allowed inside
// headings, paragraphs, quotes and list items.
type DefaultInline interface {
	isDefaultInline()
	Type() NodeType
}

// ListChild is a sealed interface for the children of a list: list items and
// nested lists.
type ListChild interface {
	isListChild()
	Type() NodeType
}

// HeadingBlock is a heading. Level is expected to be 1-6 but is not checked.
type HeadingBlock struct {
	Level    int
	Children []DefaultInline
}

func (HeadingBlock) isBlock() {}

// Type returns TypeHeading.
func (HeadingBlock) Type() NodeType { return TypeHeading }

// ParagraphBlock is a paragraph of inline content.
type ParagraphBlock struct {
	Children []DefaultInline
}

func (ParagraphBlock) isBlock() {}

// Type returns TypeParagraph.
func (ParagraphBlock) Type() NodeType { return TypeParagraph }

// QuoteBlock is a block quotation.
type QuoteBlock struct {
	Children []DefaultInline
}

func (QuoteBlock) isBlock() {}

// Type returns TypeQuote.
func (QuoteBlock) Type() NodeType { return TypeQuote }

// CodeBlock is a preformatted code block. It only ever holds text.
type CodeBlock struct {
	Children []TextInline
}

func (CodeBlock) isBlock() {}

// Type returns TypeCode.
func (CodeBlock) Type() NodeType { return TypeCode }

// ListBlock is an ordered or unordered list. Children are list items or
// nested lists.
type ListBlock struct {
	Format      ListFormat
	IndentLevel int
	Children    []ListChild
}

func (ListBlock) isBlock()     {}
func (ListBlock) isListChild() {}

// Type returns TypeList.
func (ListBlock) Type() NodeType { return TypeList }

// Ordered reports whether the list renders as an ordered list.
func (l ListBlock) Ordered() bool { return l.Format == ListOrdered }

// ImageBlock is an image. The descriptor is passed through untouched.
type ImageBlock struct {
	Image Image
}

func (ImageBlock) isBlock() {}

// Type returns TypeImage.
func (ImageBlock) Type() NodeType { return TypeImage }

// UnknownBlock carries a block whose type tag is not one of the declared
// variants. It renders as Ignored.
type UnknownBlock struct {
	Kind NodeType
}

func (UnknownBlock) isBlock() {}

// Type returns the undeclared tag.
func (b UnknownBlock) Type() NodeType { return b.Kind }

// TextInline is a run of text with independent style flags.
type TextInline struct {
	Text          string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
}

func (TextInline) isDefaultInline() {}

// Type returns TypeText.
func (TextInline) Type() NodeType { return TypeText }

// Style returns the component kind of the highest-priority style flag that is
// set: bold, italic, underline, strikethrough, then code. It returns false for
// plain text.
func (t TextInline) Style() (Kind, bool) {
	switch {
	case t.Bold:
		return KindBoldInline, true
	case t.Italic:
		return KindItalicInline, true
	case t.Underline:
		return KindUnderlineInline, true
	case t.Strikethrough:
		return KindStrikethroughInline, true
	case t.Code:
		return KindCodeInline, true
	}
	return "", false
}

// LinkInline is a hyperlink around text runs.
type LinkInline struct {
	URL      string
	Children []TextInline
}

func (LinkInline) isDefaultInline() {}

// Type returns TypeLink.
func (LinkInline) Type() NodeType { return TypeLink }

// ListItemInline is a single list entry.
type ListItemInline struct {
	Children []DefaultInline
}

func (ListItemInline) isListChild() {}

// Type returns TypeListItem.
func (ListItemInline) Type() NodeType { return TypeListItem }

// UnknownInline carries an inline node or list child whose type tag is not
// valid at its position. It renders as Ignored.
type UnknownInline struct {
	Kind NodeType
}

func (UnknownInline) isDefaultInline() {}
func (UnknownInline) isListChild()     {}

// Type returns the undeclared tag.
func (n UnknownInline) Type() NodeType { return n.Kind }

// Image describes an uploaded media file as delivered by the CMS.
type Image struct {
	Name             string
	AlternativeText  string
	URL              string
	Caption          string
	Width            int
	Height           int
	Formats          map[string]ImageFormat
	Hash             string
	Ext              string
	Mime             string
	Size             float64
	PreviewURL       string
	Provider         string
	ProviderMetadata json.RawMessage
	CreatedAt        string
	UpdatedAt        string
}

// ImageFormat is one generated rendition of an image (thumbnail, small, ...).
type ImageFormat struct {
	Name   string
	Hash   string
	Ext    string
	Mime   string
	URL    string
	Width  int
	Height int
	Size   float64
	Path   string
}

// Interface compliance checks.
var (
	_ Block = HeadingBlock{}
	_ Block = ParagraphBlock{}
	_ Block = QuoteBlock{}
	_ Block = CodeBlock{}
	_ Block = ListBlock{}
	_ Block = ImageBlock{}
	_ Block = UnknownBlock{}

	_ DefaultInline = TextInline{}
	_ DefaultInline = LinkInline{}
	_ DefaultInline = UnknownInline{}

	_ ListChild = ListBlock{}
	_ ListChild = ListItemInline{}
	_ ListChild = UnknownInline{}
)
