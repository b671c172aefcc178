package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/benchbook/internal/constants"
	"github.com/julianstephens/benchbook/internal/inventory"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateLogin:
		content = m.viewLogin()
	case constants.StateChallenge:
		content = panelStyle.Render(m.form.View())
	case constants.StateConfirm:
		content = m.viewConfirmCancel()
	default:
		content = m.viewBrowse()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	))
}

func (m Model) viewLogin() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"Who is booking?",
		"",
		m.form.View(),
	)
}

func (m Model) viewHeader() string {
	if m.state == constants.StateLogin {
		return headerStyle.Render("benchbook")
	}

	today := m.deps.Engine.Clock().Today()
	prev, next := " ", " "
	if m.deps.Horizon.CanPrev(today, m.date) {
		prev = "‹"
	}
	if m.deps.Horizon.CanNext(today, m.date) {
		next = "›"
	}
	half := "AM"
	if m.slots.PM() {
		half = "PM"
	}

	parts := []string{
		m.identity.DisplayName,
		fmt.Sprintf("%s %s %s", prev, m.date, next),
		half,
	}
	if m.current != nil {
		parts = append(parts, m.current.Name)
	}
	return headerStyle.Render(strings.Join(parts, "  |  "))
}

func (m Model) viewBrowse() string {
	right := []string{m.slots.View()}

	if m.current != nil {
		if m.holder != nil {
			right = append(right, warningStyle.Render(fmt.Sprintf("In use now by %s", m.holder.DisplayName)))
		} else {
			right = append(right, okStyle.Render("Free right now"))
		}

		var actions []string
		if m.actions.CanCommit {
			actions = append(actions, "[b] book")
		}
		if m.actions.CanCancel {
			actions = append(actions, "[x] cancel")
		}
		actions = append(actions, "[c] connect")
		right = append(right, mutedStyle.Render(strings.Join(actions, "  ")))

		if m.showDetails {
			right = append(right, m.viewDetails())
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.machines.View(),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)
}

func (m Model) viewDetails() string {
	var lines []string
	for _, f := range inventory.Details(*m.current, m.holder) {
		value := f.Value
		switch {
		case f.Link:
			value = linkStyle.Render(value)
		case f.Alert:
			value = dangerStyle.Render(value)
		}
		lines = append(lines, fmt.Sprintf("%-22s %s", f.Key, value))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewConfirmCancel() string {
	return lipgloss.Place(m.width, m.height-6,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Cancel the selected bookings?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return dangerStyle.Render(m.status)
	}
	return okStyle.Render(m.status)
}
