package ansi

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/blocks"
)

// Styles maps a Theme to lipgloss styles for terminal rendering.
type Styles struct {
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Underline     lipgloss.Style
	Strikethrough lipgloss.Style
	Code          lipgloss.Style
	Link          lipgloss.Style
	Heading       lipgloss.Style
	Quote         lipgloss.Style
	Muted         lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t blocks.Theme) Styles {
	return Styles{
		Bold:          lipgloss.NewStyle().Bold(true),
		Italic:        lipgloss.NewStyle().Italic(true),
		Underline:     lipgloss.NewStyle().Underline(true),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true),
		Code:          lipgloss.NewStyle().Foreground(ansiColor(t.Code)),
		Link:          lipgloss.NewStyle().Foreground(ansiColor(t.Link)).Underline(true),
		Heading:       lipgloss.NewStyle().Foreground(ansiColor(t.Heading)).Bold(true),
		Quote: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ansiColor(t.Quote)).
			PaddingLeft(1).
			Italic(true),
		Muted: lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
