package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/blocks"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the document pager.
type Model struct {
	// Viewport is the scrollable document area. Exported for test access.
	Viewport viewport.Model

	render RenderFunc
	title  string
	styles Styles

	content string
	err     error
	ready   bool
}

// New creates a pager that shows the output of render under title.
func New(render RenderFunc, title string, theme blocks.Theme) Model {
	return Model{
		render: render,
		title:  title,
		styles: NewStyles(theme),
	}
}

// Err returns the last render error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.Viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.Viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	statusHeight := 1
	borderHeight := 1 // newline between sections
	vpHeight := max(msg.Height-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	// Wrapping depends on the width, so every resize re-renders.
	m.content, m.err = m.render(msg.Width)
	m.Viewport.SetContent(m.content)
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	title := ""
	if m.title != "" {
		title = m.styles.Title.Render(m.title) + " "
	}
	pos := fmt.Sprintf("%3.f%%", m.Viewport.ScrollPercent()*100)
	return title + m.styles.Muted.Render(pos+"  q to quit")
}
