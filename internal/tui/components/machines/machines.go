package machines

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/benchbook/internal/inventory"
	"github.com/julianstephens/benchbook/internal/models"
)

type Item struct {
	Resource models.Resource
	Section  string
	Holder   *models.Identity
}

// Title carries the occupancy LED: filled while someone holds the current hour.
func (i Item) Title() string {
	if i.Holder != nil {
		return "● " + i.Resource.Name
	}
	return "○ " + i.Resource.Name
}

func (i Item) Description() string {
	if i.Holder != nil {
		return i.Section + " | in use by " + i.Holder.DisplayName
	}
	return i.Section
}

func (i Item) FilterValue() string { return i.Resource.Name }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Machines"
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	return Model{list: l}
}

// SetResources lists the machines section by section. The cursor stays on the
// same machine when it is still present.
func (m *Model) SetResources(resources []models.Resource, occupied map[int64]models.Identity) {
	current, hadCurrent := m.Selected()

	var items []list.Item
	cursor := 0
	for _, sec := range inventory.Group(resources) {
		for _, r := range sec.Resources {
			if hadCurrent && r.ID == current.ID {
				cursor = len(items)
			}
			items = append(items, Item{Resource: r, Section: sec.Name, Holder: holderOf(occupied, r.ID)})
		}
	}
	m.list.SetItems(items)
	m.list.Select(cursor)
}

// SetOccupancy refreshes the LEDs without touching order or cursor.
func (m *Model) SetOccupancy(occupied map[int64]models.Identity) {
	items := m.list.Items()
	for idx, it := range items {
		item, ok := it.(Item)
		if !ok {
			continue
		}
		item.Holder = holderOf(occupied, item.Resource.ID)
		m.list.SetItem(idx, item)
	}
}

func holderOf(occupied map[int64]models.Identity, id int64) *models.Identity {
	if who, ok := occupied[id]; ok {
		return &who
	}
	return nil
}

// IDs returns the ids of every listed machine.
func (m Model) IDs() []int64 {
	items := m.list.Items()
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if item, ok := it.(Item); ok {
			ids = append(ids, item.Resource.ID)
		}
	}
	return ids
}

// Selected returns the machine under the cursor.
func (m Model) Selected() (models.Resource, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Resource{}, false
	}
	return item.Resource, true
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No machines yet.\n  Add one with 'benchbook resource add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
