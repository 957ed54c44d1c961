package blocks

import "fmt"

// DefaultPrefix is the component name prefix used when none is configured.
const DefaultPrefix = "StrapiBlocksText"

// Format names an output component set.
type Format string

const (
	FormatHTML     Format = "html"
	FormatANSI     Format = "ansi"
	FormatMarkdown Format = "markdown"
)

// Config holds the options shared by the renderer adapters.
type Config struct {
	// Prefix is prepended to every component kind to form a component name.
	Prefix string `yaml:"prefix"`
	// Format selects the output component set.
	Format Format `yaml:"format"`
	// Width is the wrap width for terminal output.
	Width int `yaml:"width"`
	// Sanitize runs HTML output through a sanitizing policy.
	Sanitize bool  `yaml:"sanitize"`
	Theme    Theme `yaml:"theme"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Prefix: DefaultPrefix,
		Format: FormatHTML,
		Width:  80,
		Theme:  DefaultTheme(),
	}
}

// Validate checks that the configuration can be used to render.
func (c Config) Validate() error {
	switch c.Format {
	case FormatHTML, FormatANSI, FormatMarkdown:
	default:
		return fmt.Errorf("unknown format %q: %w", c.Format, ErrInvalidConfig)
	}
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d: %w", c.Width, ErrInvalidConfig)
	}
	return nil
}
