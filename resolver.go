package blocks

import (
	"fmt"
	"strings"
)

// Component is an opaque renderer resolved by name. Adapters define the
// concrete types and know how to mount them.
type Component interface {
	Name() string
}

// Resolver maps a component kind to the component that renders it.
type Resolver interface {
	Resolve(kind Kind) Component
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(kind Kind) Component

// Resolve calls f(kind).
func (f ResolverFunc) Resolve(kind Kind) Component { return f(kind) }

// Lookup finds a component by its full name.
type Lookup func(name string) (Component, bool)

// ComponentSet is a set of components keyed by full name.
type ComponentSet map[string]Component

// Lookup implements Lookup over the set.
func (s ComponentSet) Lookup(name string) (Component, bool) {
	c, ok := s[name]
	return c, ok
}

// Merge returns a new set holding s overlaid with other.
func (s ComponentSet) Merge(other ComponentSet) ComponentSet {
	result := make(ComponentSet, len(s)+len(other))
	for k, v := range s {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Unresolved stands in for a component name that the lookup did not know.
// Mounting it fails with ErrComponentNotFound.
type Unresolved struct {
	name string
}

// Name returns the name that failed to resolve.
func (u Unresolved) Name() string { return u.name }

// Registry resolves kinds against a lookup using a fixed name prefix. Every
// kind in Kinds is resolved once at construction; other kinds are looked up on
// demand. A Registry is safe for concurrent use.
type Registry struct {
	prefix     string
	lookup     Lookup
	components map[Kind]Component
}

// Interface compliance checks.
var (
	_ Resolver  = (*Registry)(nil)
	_ Resolver  = ResolverFunc(nil)
	_ Component = Unresolved{}
)

// NewRegistry resolves the closed set of kinds. It fails with
// ErrComponentNotFound naming every component the lookup is missing.
func NewRegistry(prefix string, lookup Lookup) (*Registry, error) {
	r := &Registry{
		prefix:     prefix,
		lookup:     lookup,
		components: make(map[Kind]Component),
	}
	var missing []string
	for _, k := range Kinds() {
		name := k.ComponentName(prefix)
		c, ok := lookup(name)
		if !ok || c == nil {
			missing = append(missing, name)
			continue
		}
		r.components[k] = c
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrComponentNotFound)
	}
	return r, nil
}

// Prefix returns the component name prefix.
func (r *Registry) Prefix() string { return r.prefix }

// Resolve returns the component for kind, or an Unresolved placeholder.
func (r *Registry) Resolve(kind Kind) Component {
	if c, ok := r.components[kind]; ok {
		return c
	}
	name := kind.ComponentName(r.prefix)
	if c, ok := r.lookup(name); ok && c != nil {
		return c
	}
	return Unresolved{name: name}
}
