package models

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/clock"
	"github.com/julianstephens/benchbook/internal/constants"
)

type Settings struct {
	Timezone       string
	HorizonDays    int
	CancelPolicy   string
	ViewerTemplate string
}

// DefaultSettings returns the values written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:       constants.DefaultTimezone,
		HorizonDays:    constants.DefaultHorizonDays,
		CancelPolicy:   constants.DefaultCancelPolicy,
		ViewerTemplate: constants.DefaultViewerTemplate,
	}
}

func (s Settings) Validate() error {
	if !clock.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q", s.Timezone)
	}
	if s.HorizonDays < 0 {
		return fmt.Errorf("horizon_days must be >= 0, got %d", s.HorizonDays)
	}
	switch s.CancelPolicy {
	case constants.CancelPolicyAnyone, constants.CancelPolicyOwner:
	default:
		return fmt.Errorf("cancel_policy must be %q or %q, got %q",
			constants.CancelPolicyAnyone, constants.CancelPolicyOwner, s.CancelPolicy)
	}
	return nil
}
