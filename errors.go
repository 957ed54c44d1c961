package blocks

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrComponentNotFound indicates a component name has no registered component.
	ErrComponentNotFound = errors.New("component not found")

	// ErrForeignComponent indicates an element references a component that the
	// mounting adapter did not create.
	ErrForeignComponent = errors.New("foreign component")

	// ErrDecode indicates a document could not be decoded from its wire format.
	ErrDecode = errors.New("decode error")

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)
