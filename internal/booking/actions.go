package booking

import "github.com/julianstephens/benchbook/internal/constants"

// Actions tells the front end which buttons to enable.
type Actions struct {
	CanCommit bool
	CanCancel bool
}

// AvailableActions enables commit when some selected, unexpired slot is free
// and cancel when some selected, unexpired slot is booked.
func AvailableActions(views []SlotView, sel Selection) Actions {
	var a Actions
	for _, v := range views {
		if !sel.Has(v.Index) {
			continue
		}
		switch v.State {
		case Selected, Free:
			a.CanCommit = true
		case Booked:
			a.CanCancel = true
		}
	}
	return a
}

// HalfStart is the first slot of the twelve-hour half shown: 0 for AM, 12 for PM.
func HalfStart(pm bool) int {
	if pm {
		return constants.SlotsPerHalf
	}
	return 0
}

// IsPM reports whether hour falls in the afternoon half.
func IsPM(hour int) bool {
	return hour >= constants.SlotsPerHalf
}

// Half returns the twelve views of the AM or PM half.
func Half(views []SlotView, pm bool) []SlotView {
	start := HalfStart(pm)
	end := start + constants.SlotsPerHalf
	if len(views) < end {
		return nil
	}
	return views[start:end]
}
