package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram builds the list browser program. The returned cleanup stops the
// address watch and cancels in-flight fetches; call it after Run returns.
func NewProgram(opts Options) (*tea.Program, func()) {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if opts.Context != nil {
		go func() {
			<-opts.Context.Done()
			p.Quit()
		}()
	}
	return p, m.Close
}
