package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/benchbook/internal/constants"
)

const listWidth = 36

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.machines.SetSize(listWidth, msg.Height-6)
		return m, nil

	case tickMsg:
		if m.state != constants.StateLogin {
			m.refresh()
		}
		return m, tick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case constants.StateLogin, constants.StateChallenge:
		return m.updateForm(msg)
	case constants.StateConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Escape) {
		if m.state == constants.StateLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.state = constants.StateBrowse
		m.form = nil
		m.setStatus("Connection cancelled", false)
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == constants.StateLogin {
			if err := m.login(m.loginForm.Name, m.loginForm.ID, m.loginForm.Remember); err != nil {
				m.fail(err)
				m.startLogin()
				return m, m.form.Init()
			}
			return m, nil
		}
		m.answerChallenge()
		return m, nil
	case huh.StateAborted:
		if m.state == constants.StateLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.state = constants.StateBrowse
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Confirm):
		m.cancel()
	case key.Matches(k, m.keys.Decline), key.Matches(k, m.keys.Escape):
		m.state = constants.StateBrowse
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(k, m.keys.Up), key.Matches(k, m.keys.Down):
		var cmd tea.Cmd
		m.machines, cmd = m.machines.Update(msg)
		return m, cmd
	case key.Matches(k, m.keys.Enter):
		m.openMachine()
	case key.Matches(k, m.keys.Left):
		m.slots.Move(-1)
	case key.Matches(k, m.keys.Right):
		m.slots.Move(1)
	case key.Matches(k, m.keys.Toggle):
		m.toggleSlot()
	case key.Matches(k, m.keys.Half):
		m.slots.SetHalf(!m.slots.PM())
		m.halfChosen = true
	case key.Matches(k, m.keys.PrevDay):
		m.shiftDate(-1)
	case key.Matches(k, m.keys.NextDay):
		m.shiftDate(1)
	case key.Matches(k, m.keys.Book):
		m.book()
	case key.Matches(k, m.keys.Cancel):
		if m.current != nil && m.actions.CanCancel {
			m.state = constants.StateConfirm
		}
	case key.Matches(k, m.keys.Connect):
		m.connect()
		if m.state == constants.StateChallenge {
			return m, m.form.Init()
		}
	case key.Matches(k, m.keys.Details):
		m.showDetails = !m.showDetails
	case key.Matches(k, m.keys.Refresh):
		m.reloadMachines()
	case key.Matches(k, m.keys.Logout):
		m.current = nil
		m.slots.SetViews(nil)
		m.holder = nil
		m.halfChosen = false
		m.showDetails = false
		m.startLogin()
		return m, m.form.Init()
	}
	return m, nil
}
