package models

import (
	"fmt"
	"regexp"
	"strings"

	apperr "github.com/julianstephens/benchbook/internal/errors"
)

var (
	displayNamePattern = regexp.MustCompile(`^[A-Za-z]{1,50}$`)
	requesterIDPattern = regexp.MustCompile(`^\d{8}$`)
)

// Identity is the verified (display name, numeric id) pair supplied by the login step.
type Identity struct {
	DisplayName string
	NumericID   string
}

// NewIdentity trims and validates a login pair.
func NewIdentity(name, id string) (Identity, error) {
	ident := Identity{DisplayName: strings.TrimSpace(name), NumericID: strings.TrimSpace(id)}
	if err := ident.Validate(); err != nil {
		return Identity{}, err
	}
	return ident, nil
}

// Validate checks the display name is letters only (1-50) and the id is exactly 8 digits.
func (i Identity) Validate() error {
	if !displayNamePattern.MatchString(i.DisplayName) {
		return fmt.Errorf("%w: display name must be 1-50 letters", apperr.ErrInvalidIdentity)
	}
	if !requesterIDPattern.MatchString(i.NumericID) {
		return fmt.Errorf("%w: id must be exactly 8 digits", apperr.ErrInvalidIdentity)
	}
	return nil
}

// IsZero reports whether no identity is set.
func (i Identity) IsZero() bool {
	return i.DisplayName == "" && i.NumericID == ""
}

// Matches reports whether two identities carry the same requester id.
func (i Identity) Matches(other Identity) bool {
	return strings.TrimSpace(i.NumericID) == strings.TrimSpace(other.NumericID)
}

func (i Identity) String() string {
	return fmt.Sprintf("%s (%s)", i.DisplayName, i.NumericID)
}
