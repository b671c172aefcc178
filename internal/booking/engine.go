// Package booking derives per-slot state for a machine and date, commits and
// cancels hourly reservations, and arbitrates who may use the slot that is
// active right now.
//
// The engine holds no reservation state of its own. Every call reads the store
// and the clock again, and concurrent writers are arbitrated only by the
// store's uniqueness constraint on (resource, date, slot).
package booking

import (
	"fmt"
	"sort"

	"github.com/julianstephens/benchbook/internal/clock"
	"github.com/julianstephens/benchbook/internal/constants"
	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

// Store is the part of the reservation store the engine needs.
type Store interface {
	GetReservations(resourceID int64, date string) ([]models.Reservation, error)
	GetReservation(resourceID int64, date string, slot int) (models.Reservation, error)
	AddReservation(models.Reservation) error
	DeleteReservations(resourceID int64, date string, slots []int, requesterID string) (int, error)
}

// CancelPolicy decides whose reservations a cancel may remove.
type CancelPolicy string

const (
	// CancelAnyone lets any caller cancel any booked slot they select.
	CancelAnyone CancelPolicy = constants.CancelPolicyAnyone
	// CancelOwner only removes reservations made under the caller's requester id.
	CancelOwner CancelPolicy = constants.CancelPolicyOwner
)

// ParseCancelPolicy maps a settings value to a policy. Empty means CancelAnyone.
func ParseCancelPolicy(s string) (CancelPolicy, error) {
	switch CancelPolicy(s) {
	case "", CancelAnyone:
		return CancelAnyone, nil
	case CancelOwner:
		return CancelOwner, nil
	}
	return "", fmt.Errorf("unknown cancel policy %q", s)
}

type Engine struct {
	store  Store
	clock  clock.Clock
	policy CancelPolicy
}

func New(store Store, clk clock.Clock, policy CancelPolicy) *Engine {
	if policy == "" {
		policy = CancelAnyone
	}
	return &Engine{
		store:  store,
		clock:  clk,
		policy: policy,
	}
}

func (e *Engine) Policy() CancelPolicy {
	return e.policy
}

func (e *Engine) Clock() clock.Clock {
	return e.clock
}

// elapsed reports whether slot i on date has fully passed at the given instant.
func elapsed(date, today string, hour, i int) bool {
	return date == today && hour >= i+1
}

// normalizeSlots validates indices and returns them sorted without duplicates.
func normalizeSlots(slots []int) ([]int, error) {
	seen := make(map[int]bool, len(slots))
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		if !models.ValidSlot(s) {
			return nil, fmt.Errorf("%w: %d", apperr.ErrInvalidSlot, s)
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out, nil
}

// storeErr keeps taxonomy errors from the store and files everything else
// under ErrStoreUnavailable.
func storeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case apperr.IsTaxonomy(err):
		return err
	default:
		return apperr.Unavailable(op, err)
	}
}
