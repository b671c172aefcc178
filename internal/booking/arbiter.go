package booking

import (
	"errors"
	"fmt"
	"strings"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/logger"
	"github.com/julianstephens/benchbook/internal/models"
)

// CurrentHolder returns who holds resourceID for today's current hour, or nil.
func (e *Engine) CurrentHolder(resourceID int64) (*models.Identity, error) {
	r, err := e.store.GetReservation(resourceID, e.clock.Today(), e.clock.CurrentHour())
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("current holder", err)
	}
	holder := r.Requester()
	return &holder, nil
}

// Access is the arbiter's decision for one connection attempt.
type Access struct {
	// Holder is the identity on the active slot, nil when the slot is free.
	Holder *models.Identity
	// Challenge is set when the caller is not the holder and must supply the
	// holder's requester id before connecting.
	Challenge bool
}

// Authorize decides whether caller may connect to resourceID right now.
func (e *Engine) Authorize(resourceID int64, caller models.Identity) (Access, error) {
	holder, err := e.CurrentHolder(resourceID)
	if err != nil {
		return Access{}, err
	}
	if holder == nil || strings.TrimSpace(holder.NumericID) == "" || holder.Matches(caller) {
		return Access{Holder: holder}, nil
	}
	logger.Debug("Connection needs challenge", "resource", resourceID, "holder", holder.NumericID, "caller", caller.NumericID)
	return Access{Holder: holder, Challenge: true}, nil
}

// Verify checks the challenge response. It passes when no challenge is needed
// or when response equals the holder's requester id.
func (a Access) Verify(response string) error {
	if !a.Challenge {
		return nil
	}
	if strings.TrimSpace(response) == strings.TrimSpace(a.Holder.NumericID) {
		return nil
	}
	logger.Warn("Identity challenge refused", "holder", a.Holder.NumericID)
	return fmt.Errorf("slot held by %s: %w", a.Holder.DisplayName, apperr.ErrChallengeFailed)
}

// Occupancy returns the current holder of every resource that has one.
// Resources without a holder are absent from the map.
func (e *Engine) Occupancy(resourceIDs []int64) (map[int64]models.Identity, error) {
	today, hour := e.clock.Today(), e.clock.CurrentHour()
	occupied := make(map[int64]models.Identity)
	for _, id := range resourceIDs {
		r, err := e.store.GetReservation(id, today, hour)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, storeErr("occupancy", err)
		}
		occupied[id] = r.Requester()
	}
	return occupied, nil
}
