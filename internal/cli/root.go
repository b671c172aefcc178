package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/benchbook/internal/booking"
	"github.com/julianstephens/benchbook/internal/clock"
	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/keyring"
	"github.com/julianstephens/benchbook/internal/models"
	"github.com/julianstephens/benchbook/internal/session"
	"github.com/julianstephens/benchbook/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Engine   *booking.Engine
	Clock    clock.Clock
	Horizon  booking.Horizon
	Launcher session.Launcher
	Settings models.Settings
}

// Setup reads the stored settings and builds the clock, engine and launcher.
// A non-empty timezone overrides the stored one. A Clock or Launcher already
// set on the context is kept.
func (c *Context) Setup(timezone string) error {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if timezone != "" {
		settings.Timezone = timezone
	}

	if c.Clock == nil {
		zone, err := clock.New(settings.Timezone)
		if err != nil {
			return err
		}
		c.Clock = zone
	}

	policy, err := booking.ParseCancelPolicy(settings.CancelPolicy)
	if err != nil {
		return err
	}
	c.Engine = booking.New(c.Store, c.Clock, policy)
	c.Horizon = booking.Horizon{Days: settings.HorizonDays}
	if c.Launcher == nil {
		c.Launcher = session.NewVNC(settings.ViewerTemplate)
	}
	c.Settings = settings
	return nil
}

// IdentityFlags are embedded by every command that acts on behalf of a requester.
type IdentityFlags struct {
	Name string `help:"Display name (letters only)." env:"BENCHBOOK_NAME"`
	ID   string `name:"id" help:"8-digit requester ID." env:"BENCHBOOK_ID"`
}

// Identity validates the flags, falling back to the identity remembered by
// 'benchbook login --remember' when both are empty.
func (c *Context) Identity(f IdentityFlags) (models.Identity, error) {
	if f.Name != "" || f.ID != "" {
		return models.NewIdentity(f.Name, f.ID)
	}
	ident, err := keyring.GetIdentity()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return models.Identity{}, fmt.Errorf("%w: pass --name and --id or run 'benchbook login --remember'", apperr.ErrInvalidIdentity)
		}
		return models.Identity{}, err
	}
	return ident, nil
}

// Resource looks a machine up by its serial.
func (c *Context) Resource(name string) (models.Resource, error) {
	name = strings.TrimSpace(name)
	r, err := c.Store.GetResourceByName(name)
	if err != nil {
		if apperr.IsTaxonomy(err) {
			return models.Resource{}, err
		}
		return models.Resource{}, apperr.Unavailable("get machine", err)
	}
	return r, nil
}

// Date returns date, or today when it is empty, after checking its format.
func (c *Context) Date(date string) (string, error) {
	if date == "" {
		return c.Clock.Today(), nil
	}
	if !clock.ValidateDate(date) {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return date, nil
}

// BookableDate is Date restricted to the booking horizon.
func (c *Context) BookableDate(date string) (string, error) {
	d, err := c.Date(date)
	if err != nil {
		return "", err
	}
	today := c.Clock.Today()
	if !c.Horizon.Contains(today, d) {
		first, last, _ := c.Horizon.Bounds(today)
		return "", fmt.Errorf("date %s is outside the booking window %s to %s", d, first, last)
	}
	return d, nil
}
