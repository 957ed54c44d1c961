// Package bubbletea provides a Bubble Tea pager for previewing rendered
// documents in the terminal.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders the document for the given terminal width.
type RenderFunc func(width int) (string, error)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. When the context is cancelled, the program quits. Options are
// applied after the pager defaults.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	p := tea.NewProgram(m, opts...)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}
