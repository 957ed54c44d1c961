package blocks

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values. A negative
// index means no color.
type Theme struct {
	Heading int `yaml:"heading"` // Heading text
	Link    int `yaml:"link"`    // Link text
	Code    int `yaml:"code"`    // Inline code and code block text
	Quote   int `yaml:"quote"`   // Quote bar
	Muted   int `yaml:"muted"`   // URLs, list markers, code gutter
	Error   int `yaml:"error"`   // Preview status errors
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Heading: 5,
		Link:    4,
		Code:    3,
		Quote:   8,
		Muted:   8,
		Error:   1,
	}
}
