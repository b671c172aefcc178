package slots

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/benchbook/internal/booking"
	"github.com/julianstephens/benchbook/internal/constants"
)

const perRow = 6

var (
	cellStyle = lipgloss.NewStyle().
			Width(constants.SlotLabelMax+2).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	stateColors = map[booking.SlotState]lipgloss.Color{
		booking.Free:     lipgloss.Color("252"),
		booking.Selected: lipgloss.Color("42"),
		booking.Booked:   lipgloss.Color("214"),
		booking.Blocked:  lipgloss.Color("238"),
	}
)

// Model draws one twelve-hour half of a day as a grid and tracks the cursor.
type Model struct {
	views  []booking.SlotView
	pm     bool
	cursor int
}

func New() Model {
	return Model{}
}

func (m *Model) SetViews(views []booking.SlotView) {
	m.views = views
}

func (m Model) Views() []booking.SlotView {
	return m.views
}

// SetHalf switches between the AM (0-11) and PM (12-23) half; the cursor
// keeps its column.
func (m *Model) SetHalf(pm bool) {
	m.pm = pm
}

func (m Model) PM() bool {
	return m.pm
}

// Move shifts the cursor within the half, stopping at its ends.
func (m *Model) Move(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= constants.SlotsPerHalf {
		m.cursor = constants.SlotsPerHalf - 1
	}
}

// CursorSlot is the slot index (0-23) under the cursor.
func (m Model) CursorSlot() int {
	return booking.HalfStart(m.pm) + m.cursor
}

// Current returns the view under the cursor.
func (m Model) Current() (booking.SlotView, bool) {
	i := m.CursorSlot()
	if i >= len(m.views) {
		return booking.SlotView{}, false
	}
	return m.views[i], true
}

func (m Model) View() string {
	half := booking.Half(m.views, m.pm)
	if half == nil {
		return "Select a machine to see its slots."
	}

	var rows []string
	for start := 0; start < len(half); start += perRow {
		var cells []string
		for _, v := range half[start : start+perRow] {
			cells = append(cells, m.cell(v))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cell(v booking.SlotView) string {
	style := cellStyle.Foreground(stateColors[v.State])
	switch {
	case v.State == booking.Selected:
		style = style.Bold(true)
	case v.InSelection && v.State == booking.Booked:
		// Booked and picked: will be cancelled
		style = style.Strikethrough(true).Bold(true)
	}
	if v.Index == m.CursorSlot() {
		style = style.BorderForeground(lipgloss.Color("205"))
	}
	return style.Render(v.Label())
}
