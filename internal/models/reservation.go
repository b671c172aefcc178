package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/benchbook/internal/constants"
)

// Reservation is one booked hour of a resource. It is never updated in place:
// a commit creates it and a cancel deletes it.
type Reservation struct {
	ID          string
	ResourceID  int64
	Date        string // YYYY-MM-DD
	Slot        int    // hour of day, 0-23
	DisplayName string
	RequesterID string
	CreatedAt   time.Time
}

// Requester returns the identity that made the reservation.
func (r Reservation) Requester() Identity {
	return Identity{DisplayName: r.DisplayName, NumericID: r.RequesterID}
}

// ValidSlot reports whether i is an hour-of-day slot index.
func ValidSlot(i int) bool {
	return i >= 0 && i < constants.SlotsPerDay
}

// Validate checks the fields the store relies on.
func (r Reservation) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("reservation ID cannot be empty")
	}
	if r.ResourceID <= 0 {
		return fmt.Errorf("reservation resource ID must be positive")
	}
	if _, err := time.Parse(constants.DateFormat, r.Date); err != nil {
		return fmt.Errorf("invalid reservation date %q: %w", r.Date, err)
	}
	if !ValidSlot(r.Slot) {
		return fmt.Errorf("invalid reservation slot %d", r.Slot)
	}
	return nil
}
