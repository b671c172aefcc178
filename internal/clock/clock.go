// Package clock supplies "today" and "current hour" in a fixed civil time zone.
//
// Everything that classifies slots re-reads the clock on every call instead of
// holding on to a snapshot, so availability follows the hour roll-over without
// any user input.
package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/benchbook/internal/constants"
)

// Clock is the time source used by the booking engine.
type Clock interface {
	// Now returns the current instant in the clock's zone.
	Now() time.Time
	// Today returns the civil date (YYYY-MM-DD) in the clock's zone.
	Today() string
	// CurrentHour returns the hour of day (0-23) in the clock's zone.
	CurrentHour() int
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" it returns the system's local timezone and an
// empty name falls back to the default booking zone.
func LoadLocation(timezone string) (*time.Location, error) {
	switch timezone {
	case "":
		return time.LoadLocation(constants.DefaultTimezone)
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// Zone reads the wall clock and converts it into a fixed location.
type Zone struct {
	loc *time.Location
	now func() time.Time
}

// New returns a wall clock for the given IANA zone name.
func New(timezone string) (*Zone, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Zone{loc: loc, now: time.Now}, nil
}

func (z *Zone) Now() time.Time           { return z.now().In(z.loc) }
func (z *Zone) Today() string            { return z.Now().Format(constants.DateFormat) }
func (z *Zone) CurrentHour() int         { return z.Now().Hour() }
func (z *Zone) Location() *time.Location { return z.loc }

// Fixed is a settable clock for tests and replays.
type Fixed struct {
	mu sync.RWMutex
	t  time.Time
}

// NewFixed returns a clock frozen at t. The zone of t is the clock's zone.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.t
}

func (f *Fixed) Today() string    { return f.Now().Format(constants.DateFormat) }
func (f *Fixed) CurrentHour() int { return f.Now().Hour() }

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(constants.DateFormat, date)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// ValidateDate reports whether date is a YYYY-MM-DD calendar date.
func ValidateDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}
