package booking

import (
	"github.com/julianstephens/benchbook/internal/constants"
	"github.com/julianstephens/benchbook/internal/models"
)

// Selection is the caller's pending set of slot indices for one resource and
// date. It is a value: every method returns a new Selection and leaves the
// receiver untouched.
type Selection struct {
	resourceID int64
	date       string
	slots      [constants.SlotsPerDay]bool
}

// NewSelection returns an empty selection bound to a resource and date.
func NewSelection(resourceID int64, date string) Selection {
	return Selection{resourceID: resourceID, date: date}
}

func (s Selection) ResourceID() int64 { return s.resourceID }
func (s Selection) Date() string      { return s.date }

// For rebinds the selection. Moving to another resource or date clears it.
func (s Selection) For(resourceID int64, date string) Selection {
	if s.resourceID == resourceID && s.date == date {
		return s
	}
	return NewSelection(resourceID, date)
}

// Has reports whether slot i is selected.
func (s Selection) Has(i int) bool {
	return models.ValidSlot(i) && s.slots[i]
}

// Toggle flips slot i. Out-of-range indices are ignored.
func (s Selection) Toggle(i int) Selection {
	if models.ValidSlot(i) {
		s.slots[i] = !s.slots[i]
	}
	return s
}

// With returns the selection with the given slots added.
func (s Selection) With(slots ...int) Selection {
	for _, i := range slots {
		if models.ValidSlot(i) {
			s.slots[i] = true
		}
	}
	return s
}

// Without returns the selection with the given slots removed.
func (s Selection) Without(slots ...int) Selection {
	for _, i := range slots {
		if models.ValidSlot(i) {
			s.slots[i] = false
		}
	}
	return s
}

// Clear drops every slot but keeps the binding.
func (s Selection) Clear() Selection {
	return NewSelection(s.resourceID, s.date)
}

// Slots returns the selected indices in ascending order.
func (s Selection) Slots() []int {
	var out []int
	for i, on := range s.slots {
		if on {
			out = append(out, i)
		}
	}
	return out
}

func (s Selection) Len() int {
	n := 0
	for _, on := range s.slots {
		if on {
			n++
		}
	}
	return n
}

func (s Selection) IsEmpty() bool {
	return s.Len() == 0
}
