package blocks

import (
	"strconv"
	"strings"
)

// Kind identifies a component by the fixed suffix of its name. The full
// component name is the configured prefix followed by the kind.
type Kind string

const (
	KindBoldInline          Kind = "BoldInlineNode"
	KindItalicInline        Kind = "ItalicInlineNode"
	KindUnderlineInline     Kind = "UnderlineInlineNode"
	KindStrikethroughInline Kind = "StrikethroughInlineNode"
	KindCodeInline          Kind = "CodeInlineNode"
	KindLinkInline          Kind = "LinkInlineNode"
	KindListItemInline      Kind = "ListItemInlineNode"
	KindParagraph           Kind = "ParagraphNode"
	KindQuote               Kind = "QuoteNode"
	KindCode                Kind = "CodeNode"
	KindOrderedList         Kind = "OrderedListNode"
	KindUnorderedList       Kind = "UnorderedListNode"
	KindImage               Kind = "ImageNode"
)

// HeadingKind returns the kind of the heading component for level. The level
// is embedded as is, so levels outside 1-6 produce kinds outside Kinds.
func HeadingKind(level int) Kind {
	return Kind("Heading" + strconv.Itoa(level) + "Node")
}

// HeadingLevel reports the level embedded in a heading kind.
func (k Kind) HeadingLevel() (int, bool) {
	s, ok := strings.CutPrefix(string(k), "Heading")
	if !ok {
		return 0, false
	}
	s, ok = strings.CutSuffix(s, "Node")
	if !ok {
		return 0, false
	}
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return level, true
}

// ComponentName returns the name a resolver looks up for k.
func (k Kind) ComponentName(prefix string) string {
	return prefix + string(k)
}

// Kinds returns the closed set of component kinds a document can need,
// including the six heading levels.
func Kinds() []Kind {
	return []Kind{
		KindBoldInline,
		KindItalicInline,
		KindUnderlineInline,
		KindStrikethroughInline,
		KindCodeInline,
		KindLinkInline,
		KindListItemInline,
		HeadingKind(1),
		HeadingKind(2),
		HeadingKind(3),
		HeadingKind(4),
		HeadingKind(5),
		HeadingKind(6),
		KindParagraph,
		KindQuote,
		KindCode,
		KindOrderedList,
		KindUnorderedList,
		KindImage,
	}
}
