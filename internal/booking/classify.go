package booking

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/constants"
	"github.com/julianstephens/benchbook/internal/models"
)

// SlotState is the derived state of one hour slot.
type SlotState int

const (
	Free SlotState = iota
	Selected
	Booked
	Blocked
)

func (s SlotState) String() string {
	switch s {
	case Free:
		return "free"
	case Selected:
		return "selected"
	case Booked:
		return "booked"
	case Blocked:
		return "blocked"
	}
	return fmt.Sprintf("SlotState(%d)", int(s))
}

// SlotView is the classification of one slot plus what the presentation needs.
type SlotView struct {
	Index int
	State SlotState
	// InSelection is set when the caller has the slot selected, including
	// booked slots picked for cancellation.
	InSelection bool
	// Holder is the requester of a booked slot; nil otherwise.
	Holder *models.Identity
}

// Label is the slot index, with " : <name>" for a booked slot, cut to 15 characters.
func (v SlotView) Label() string {
	label := fmt.Sprint(v.Index)
	if v.State == Booked && v.Holder != nil && v.Holder.DisplayName != "" {
		label += " : " + v.Holder.DisplayName
	}
	if r := []rune(label); len(r) > constants.SlotLabelMax {
		label = string(r[:constants.SlotLabelMax])
	}
	return label
}

// Classify returns the state of all 24 slots of (resourceID, date). It reads
// the store and the clock on every call. A store failure yields no views.
//
// Precedence: Blocked > Booked > Selected > Free. A slot is Blocked when date is
// today and its hour has fully elapsed. The date itself is not range-checked.
func (e *Engine) Classify(resourceID int64, date string, sel Selection) ([]SlotView, error) {
	reservations, err := e.store.GetReservations(resourceID, date)
	if err != nil {
		return nil, storeErr("classify", err)
	}
	return classify(reservations, date, e.clock.Today(), e.clock.CurrentHour(), sel.For(resourceID, date)), nil
}

func classify(reservations []models.Reservation, date, today string, hour int, sel Selection) []SlotView {
	holders := make(map[int]models.Identity, len(reservations))
	for _, r := range reservations {
		holders[r.Slot] = r.Requester()
	}

	views := make([]SlotView, constants.SlotsPerDay)
	for i := range views {
		v := SlotView{Index: i, InSelection: sel.Has(i)}
		holder, booked := holders[i]
		if booked {
			v.Holder = &holder
		}

		switch {
		case elapsed(date, today, hour, i):
			v.State = Blocked
			v.InSelection = false
			v.Holder = nil
		case booked:
			v.State = Booked
		case v.InSelection:
			v.State = Selected
		default:
			v.State = Free
		}
		views[i] = v
	}
	return views
}
