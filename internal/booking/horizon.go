package booking

import (
	"github.com/julianstephens/benchbook/internal/clock"
)

// Horizon restricts which dates a caller may pick: today through today+Days.
// The engine itself accepts any date; front ends apply the horizon.
type Horizon struct {
	Days int
}

// Bounds returns the first and last selectable date.
func (h Horizon) Bounds(today string) (string, string, error) {
	last, err := clock.AddDays(today, h.Days)
	if err != nil {
		return "", "", err
	}
	return today, last, nil
}

// Contains reports whether date lies inside the horizon. Dates are YYYY-MM-DD,
// so string order is date order.
func (h Horizon) Contains(today, date string) bool {
	first, last, err := h.Bounds(today)
	if err != nil || !clock.ValidateDate(date) {
		return false
	}
	return date >= first && date <= last
}

// Clamp moves date into the horizon.
func (h Horizon) Clamp(today, date string) string {
	first, last, err := h.Bounds(today)
	if err != nil {
		return today
	}
	switch {
	case !clock.ValidateDate(date), date < first:
		return first
	case date > last:
		return last
	}
	return date
}

// Shift moves date by delta days, staying inside the horizon.
func (h Horizon) Shift(today, date string, delta int) string {
	moved, err := clock.AddDays(h.Clamp(today, date), delta)
	if err != nil {
		return h.Clamp(today, date)
	}
	return h.Clamp(today, moved)
}

func (h Horizon) CanPrev(today, date string) bool {
	return h.Clamp(today, date) > today
}

func (h Horizon) CanNext(today, date string) bool {
	_, last, err := h.Bounds(today)
	return err == nil && h.Clamp(today, date) < last
}
