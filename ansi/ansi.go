// Package ansi mounts rendered documents as ANSI-styled terminal text using
// lipgloss for styling.
package ansi

import (
	"fmt"

	"github.com/fwojciec/blocks"
)

// Component is a terminal component. Its kind selects the styling.
type Component struct {
	name string
	kind blocks.Kind
}

var _ blocks.Component = (*Component)(nil)

// Name returns the component name.
func (c *Component) Name() string { return c.name }

// Kind returns the component kind.
func (c *Component) Kind() blocks.Kind { return c.kind }

// Components returns a terminal component for every kind, named with prefix.
func Components(prefix string) blocks.ComponentSet {
	kinds := blocks.Kinds()
	set := make(blocks.ComponentSet, len(kinds))
	for _, kind := range kinds {
		name := kind.ComponentName(prefix)
		set[name] = &Component{name: name, kind: kind}
	}
	return set
}

// NewRegistry returns a registry over the terminal components.
func NewRegistry(prefix string) (*blocks.Registry, error) {
	return blocks.NewRegistry(prefix, Components(prefix).Lookup)
}

// Render returns outputs as styled terminal text. Paragraphs, quotes and
// list items are word-wrapped to width; code blocks are not reflowed. Blocks
// are separated by a blank line.
func Render(outputs []blocks.Output, width int, theme blocks.Theme) (string, error) {
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme, width)
	return r.render(outputs)
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
