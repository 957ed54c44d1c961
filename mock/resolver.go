// Package mock provides test doubles for blocks interfaces using function fields.
package mock

import "github.com/fwojciec/blocks"

// Interface compliance checks.
var (
	_ blocks.Resolver  = (*Resolver)(nil)
	_ blocks.Component = Component("")
)

// Component is a test double for blocks.Component. Its name is the string
// value itself.
type Component string

// Name returns the component name.
func (c Component) Name() string { return string(c) }

// Resolver is a test double for blocks.Resolver.
// Set ResolveFn before calling Resolve.
type Resolver struct {
	ResolveFn func(kind blocks.Kind) blocks.Component
}

// Resolve delegates to ResolveFn.
func (r *Resolver) Resolve(kind blocks.Kind) blocks.Component {
	return r.ResolveFn(kind)
}

// PrefixResolver returns a Resolver that resolves every kind to a Component
// named prefix+kind.
func PrefixResolver(prefix string) *Resolver {
	return &Resolver{
		ResolveFn: func(kind blocks.Kind) blocks.Component {
			return Component(kind.ComponentName(prefix))
		},
	}
}
