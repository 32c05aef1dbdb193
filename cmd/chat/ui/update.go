package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-6)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			m.runner.Abort()
			return m, tea.Quit

		case tea.KeyEsc:
			if m.runner.InFlight() {
				m.runner.Abort()
			}
			return m, nil

		case tea.KeyEnter:
			text := m.input.Value()
			if m.runner.Submit(text, m.vendorCtx) {
				m.input.SetValue("")
				m.rejected = false
			} else if m.runner.InFlight() {
				m.rejected = true
			}
			return m, nil
		}

	case TurnEndMsg:
		m.rejected = false
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
