package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/blocks"
)

// Styles maps a Theme to lipgloss styles for the pager chrome.
type Styles struct {
	Title lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t blocks.Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Foreground(ansiColor(t.Heading)).Bold(true),
		Muted: lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Error: lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
