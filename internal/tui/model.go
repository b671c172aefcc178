package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/benchbook/internal/booking"
	"github.com/julianstephens/benchbook/internal/constants"
	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/keyring"
	"github.com/julianstephens/benchbook/internal/logger"
	"github.com/julianstephens/benchbook/internal/models"
	"github.com/julianstephens/benchbook/internal/session"
	"github.com/julianstephens/benchbook/internal/storage"
	"github.com/julianstephens/benchbook/internal/tui/components/machines"
	"github.com/julianstephens/benchbook/internal/tui/components/slots"
)

// Deps are the collaborators the TUI drives.
type Deps struct {
	Store    storage.Provider
	Engine   *booking.Engine
	Horizon  booking.Horizon
	Launcher session.Launcher
}

type LoginFormModel struct {
	Name     string
	ID       string
	Remember bool
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.RefreshPeriod, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	deps          Deps
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	form          *huh.Form
	loginForm     *LoginFormModel
	challenge     string
	access        booking.Access
	identity      models.Identity
	machines      machines.Model
	slots         slots.Model
	resources     []models.Resource
	current       *models.Resource
	date          string
	halfChosen    bool
	selection     booking.Selection
	holder        *models.Identity
	actions       booking.Actions
	showDetails   bool
	status        string
	statusIsError bool
	quitting      bool
	width         int
	height        int
}

func NewModel(deps Deps) Model {
	m := Model{
		deps:     deps,
		state:    constants.StateLogin,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		machines: machines.New(0, 0),
		slots:    slots.New(),
		date:     deps.Engine.Clock().Today(),
	}
	m.startLogin()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateConfirm:
		return []key.Binding{m.keys.Confirm, m.keys.Decline}
	case constants.StateChallenge, constants.StateLogin:
		return []key.Binding{m.keys.Escape}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), tick())
}

// startLogin shows the login form, pre-filled from the remembered identity.
func (m *Model) startLogin() {
	m.loginForm = &LoginFormModel{}
	if ident, err := keyring.GetIdentity(); err == nil {
		m.loginForm.Name = ident.DisplayName
		m.loginForm.ID = ident.NumericID
		m.loginForm.Remember = true
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Letters only, at most 50.").
				Value(&m.loginForm.Name).
				Validate(func(s string) error {
					_, err := models.NewIdentity(s, "00000000")
					return err
				}),
			huh.NewInput().
				Title("ID").
				Description("Exactly 8 digits.").
				Value(&m.loginForm.ID).
				Validate(func(s string) error {
					_, err := models.NewIdentity("x", s)
					return err
				}),
			huh.NewConfirm().
				Title("Remember me").
				Value(&m.loginForm.Remember),
		),
	).WithShowHelp(false)
	m.state = constants.StateLogin
}

// login finishes the login step and loads the machine list.
func (m *Model) login(name, id string, remember bool) error {
	ident, err := models.NewIdentity(name, id)
	if err != nil {
		return err
	}

	if remember {
		err = keyring.SetIdentity(ident)
	} else {
		err = keyring.DeleteIdentity()
	}
	if err != nil {
		logger.Warn("Could not update remembered login", "error", err)
	}

	m.identity = ident
	m.state = constants.StateBrowse
	m.form = nil
	m.setStatus(fmt.Sprintf("Logged in as %s", ident.DisplayName), false)
	m.reloadMachines()
	return nil
}

// startChallenge asks for the current holder's requester id.
func (m *Model) startChallenge(access booking.Access) {
	m.access = access
	m.challenge = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s holds this hour", access.Holder.DisplayName)).
				Description("Enter their requester ID to connect anyway.").
				Value(&m.challenge),
		),
	).WithShowHelp(false)
	m.state = constants.StateChallenge
}

// reloadMachines re-reads the inventory, then refreshes everything derived from it.
func (m *Model) reloadMachines() {
	resources, err := m.deps.Store.GetAllResources()
	if err != nil {
		m.fail(apperr.Unavailable("list machines", err))
		return
	}
	m.resources = resources
	m.machines.SetResources(resources, nil)

	if m.current != nil {
		found := false
		for _, r := range resources {
			if r.ID == m.current.ID {
				r := r
				m.current = &r
				found = true
				break
			}
		}
		if !found {
			m.current = nil
			m.slots.SetViews(nil)
		}
	}
	m.refresh()
}

// refresh re-derives LEDs, slot states and the current holder. It runs on
// every tick so elapsed hours turn blocked without user input.
func (m *Model) refresh() {
	engine := m.deps.Engine
	today := engine.Clock().Today()
	if clamped := m.deps.Horizon.Clamp(today, m.date); clamped != m.date {
		m.setDate(clamped)
	}

	occupied, err := engine.Occupancy(m.machines.IDs())
	if err != nil {
		m.fail(err)
		return
	}
	m.machines.SetOccupancy(occupied)

	if m.current == nil {
		return
	}
	views, err := engine.Classify(m.current.ID, m.date, m.selection)
	if err != nil {
		m.fail(err)
		return
	}
	m.slots.SetViews(views)
	m.actions = booking.AvailableActions(views, m.selection)

	holder, err := engine.CurrentHolder(m.current.ID)
	if err != nil {
		m.fail(err)
		return
	}
	m.holder = holder
}

// openMachine makes the machine under the list cursor the current one. The
// first time a machine is opened the grid jumps to the half holding the
// current hour.
func (m *Model) openMachine() {
	r, ok := m.machines.Selected()
	if !ok {
		return
	}
	m.current = &r
	m.selection = m.selection.For(r.ID, m.date)
	if !m.halfChosen {
		m.slots.SetHalf(booking.IsPM(m.deps.Engine.Clock().CurrentHour()))
		m.halfChosen = true
	}
	m.refresh()
}

func (m *Model) setDate(date string) {
	m.date = date
	if m.current != nil {
		m.selection = m.selection.For(m.current.ID, date)
	}
}

func (m *Model) shiftDate(delta int) {
	today := m.deps.Engine.Clock().Today()
	m.setDate(m.deps.Horizon.Shift(today, m.date, delta))
	m.refresh()
}

// toggleSlot flips the cursor slot. Elapsed slots cannot be picked.
func (m *Model) toggleSlot() {
	v, ok := m.slots.Current()
	if !ok || m.current == nil {
		return
	}
	if v.State == booking.Blocked {
		m.setStatus(fmt.Sprintf("%02d:00 has already passed", v.Index), true)
		return
	}
	m.selection = m.selection.Toggle(v.Index)
	m.refresh()
}

func (m *Model) book() {
	if m.current == nil || !m.actions.CanCommit {
		return
	}
	wanted := 0
	for _, v := range m.slots.Views() {
		if v.State == booking.Selected {
			wanted++
		}
	}

	sel, committed, err := m.deps.Engine.CommitSelection(m.identity, m.selection)
	m.selection = sel
	if err != nil {
		m.fail(err)
		m.refresh()
		return
	}
	switch {
	case len(committed) == 0:
		m.setStatus("Nothing was booked, the slots were taken", true)
	case len(committed) < wanted:
		m.setStatus(fmt.Sprintf("Booked %d of %d slots, the rest were taken", len(committed), wanted), true)
	default:
		m.setStatus(fmt.Sprintf("Booked %d slot(s) on %s", len(committed), m.current.Name), false)
	}
	m.refresh()
}

func (m *Model) cancel() {
	sel, n, err := m.deps.Engine.CancelSelection(m.identity, m.selection)
	m.selection = sel
	m.state = constants.StateBrowse
	if err != nil {
		m.fail(err)
		m.refresh()
		return
	}
	m.setStatus(fmt.Sprintf("Cancelled %d booking(s)", n), n == 0)
	m.refresh()
}

func (m *Model) connect() {
	if m.current == nil {
		return
	}
	access, err := m.deps.Engine.Authorize(m.current.ID, m.identity)
	if err != nil {
		m.fail(err)
		return
	}
	if access.Challenge {
		m.startChallenge(access)
		return
	}
	m.launch()
}

func (m *Model) answerChallenge() {
	m.state = constants.StateBrowse
	m.form = nil
	if err := m.access.Verify(m.challenge); err != nil {
		m.fail(err)
		return
	}
	m.launch()
}

func (m *Model) launch() {
	if err := m.deps.Launcher.Launch(m.current.ConnectionParams()); err != nil {
		if errors.Is(err, session.ErrViewerNotFound) {
			m.setStatus(err.Error(), true)
			return
		}
		m.fail(err)
		return
	}
	m.setStatus(fmt.Sprintf("Opening session to %s", m.current.Name), false)
}

func (m *Model) setStatus(msg string, isError bool) {
	m.status = msg
	m.statusIsError = isError
}

func (m *Model) fail(err error) {
	logger.Error("TUI action failed", "error", err)
	m.setStatus(apperr.UserMessage(err), true)
}
