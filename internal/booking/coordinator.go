package booking

import (
	"errors"

	"github.com/google/uuid"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/logger"
	"github.com/julianstephens/benchbook/internal/models"
)

// Commit books each requested slot for who with one insert per slot. A slot
// someone else holds, or takes concurrently, is left out of the result without
// an error; slots that have already elapsed are skipped. The returned indices
// are ascending and always a subset of slots.
//
// On a store failure the slots committed before it are returned together with
// an ErrStoreUnavailable error.
func (e *Engine) Commit(resourceID int64, date string, who models.Identity, slots []int) ([]int, error) {
	if err := who.Validate(); err != nil {
		return nil, err
	}
	slots, err := normalizeSlots(slots)
	if err != nil {
		return nil, err
	}

	today, hour := e.clock.Today(), e.clock.CurrentHour()
	var committed []int
	for _, slot := range slots {
		if elapsed(date, today, hour, slot) {
			logger.Debug("Skipping elapsed slot", "resource", resourceID, "date", date, "slot", slot)
			continue
		}

		err := e.store.AddReservation(models.Reservation{
			ID:          uuid.New().String(),
			ResourceID:  resourceID,
			Date:        date,
			Slot:        slot,
			DisplayName: who.DisplayName,
			RequesterID: who.NumericID,
		})
		switch {
		case err == nil:
			committed = append(committed, slot)
		case errors.Is(err, apperr.ErrSlotTaken):
			logger.Debug("Slot already taken", "resource", resourceID, "date", date, "slot", slot)
		default:
			err = storeErr("commit", err)
			logger.Error("Commit failed", "resource", resourceID, "date", date, "slot", slot, "error", err)
			return committed, err
		}
	}

	logger.Info("Booking committed", "resource", resourceID, "date", date, "requested", slots, "committed", committed)
	return committed, nil
}

// Cancel removes the reservations on the given slots and returns how many
// rows went away. Under CancelOwner only who's own reservations are removed.
// Cancelling slots that hold nothing returns 0 and changes nothing.
func (e *Engine) Cancel(resourceID int64, date string, who models.Identity, slots []int) (int, error) {
	removed, err := e.cancel(resourceID, date, who, slots)
	return len(removed), err
}

func (e *Engine) cancel(resourceID int64, date string, who models.Identity, slots []int) ([]int, error) {
	slots, err := normalizeSlots(slots)
	if err != nil {
		return nil, err
	}

	requesterID := ""
	if e.policy == CancelOwner {
		if err := who.Validate(); err != nil {
			return nil, err
		}
		requesterID = who.NumericID
	}

	today, hour := e.clock.Today(), e.clock.CurrentHour()
	var removed []int
	for _, slot := range slots {
		if elapsed(date, today, hour, slot) {
			continue
		}
		// One statement per slot so the removed set is known exactly.
		n, err := e.store.DeleteReservations(resourceID, date, []int{slot}, requesterID)
		if err != nil {
			err = storeErr("cancel", err)
			logger.Error("Cancel failed", "resource", resourceID, "date", date, "slot", slot, "error", err)
			return removed, err
		}
		if n > 0 {
			removed = append(removed, slot)
		}
	}

	logger.Info("Booking cancelled", "resource", resourceID, "date", date, "requested", slots, "removed", removed, "policy", string(e.policy))
	return removed, nil
}

// CommitSelection commits the selected slots and returns the selection minus
// the slots that were committed. Slots that lost a race stay selected.
func (e *Engine) CommitSelection(who models.Identity, sel Selection) (Selection, []int, error) {
	committed, err := e.Commit(sel.ResourceID(), sel.Date(), who, sel.Slots())
	return sel.Without(committed...), committed, err
}

// CancelSelection cancels the selected slots and returns the selection minus
// the slots whose reservation was removed.
func (e *Engine) CancelSelection(who models.Identity, sel Selection) (Selection, int, error) {
	removed, err := e.cancel(sel.ResourceID(), sel.Date(), who, sel.Slots())
	return sel.Without(removed...), len(removed), err
}
