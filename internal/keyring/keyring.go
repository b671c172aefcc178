package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/benchbook/internal/constants"
	"github.com/julianstephens/benchbook/internal/models"
)

var (
	// ErrNotFound is returned when nothing is stored under the requested entry
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(user, value string) error {
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", user, err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", user, err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser)
}

// GetIdentity returns the remembered login pair, stored as "name:id".
func GetIdentity() (models.Identity, error) {
	v, err := get(constants.IdentityKeyringUser)
	if err != nil {
		return models.Identity{}, err
	}
	name, id, ok := strings.Cut(v, ":")
	if !ok {
		return models.Identity{}, fmt.Errorf("malformed identity entry in keyring")
	}
	return models.NewIdentity(name, id)
}

// SetIdentity remembers a validated login pair for the next start.
func SetIdentity(ident models.Identity) error {
	if err := ident.Validate(); err != nil {
		return err
	}
	return set(constants.IdentityKeyringUser, ident.DisplayName+":"+ident.NumericID)
}

// DeleteIdentity forgets the remembered login. Nothing stored is not an error.
func DeleteIdentity() error {
	if err := del(constants.IdentityKeyringUser); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// A read that finds nothing still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
