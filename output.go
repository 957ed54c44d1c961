package blocks

import "strings"

// Output is a sealed interface representing the result of rendering one node.
// Every node produces exactly one Output, so sequences keep their length.
type Output interface {
	isOutput()
}

// Element is an instance of a resolved component with its props and children.
type Element struct {
	Component Component
	Props     Props
	Children  []Output
}

func (Element) isOutput() {}

// Text is raw, unwrapped text produced for a text node without styles.
type Text string

func (Text) isOutput() {}

// Ignored marks a position whose node matched no known variant.
type Ignored struct{}

func (Ignored) isOutput() {}

// Props holds the documented component props. Only links carry a URL and
// only images carry an Image.
type Props struct {
	URL   string
	Image *Image
}

// Interface compliance checks.
var (
	_ Output = Element{}
	_ Output = Text("")
	_ Output = Ignored{}
)

// Compact returns outputs without the Ignored positions. Nested children are
// left as they are.
func Compact(outputs []Output) []Output {
	result := make([]Output, 0, len(outputs))
	for _, o := range outputs {
		if _, ok := o.(Ignored); ok || o == nil {
			continue
		}
		result = append(result, o)
	}
	return result
}

// TextContent concatenates all raw text below o in document order.
func TextContent(o Output) string {
	var b strings.Builder
	writeText(&b, o)
	return b.String()
}

func writeText(b *strings.Builder, o Output) {
	switch v := o.(type) {
	case Text:
		b.WriteString(string(v))
	case Element:
		for _, c := range v.Children {
			writeText(b, c)
		}
	}
}
