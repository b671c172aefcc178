package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/benchbook/internal/logger"
)

var (
	// ErrStoreUnavailable is returned when the reservation store cannot be reached or fails mid-operation.
	ErrStoreUnavailable = errors.New("reservation store unavailable")
	// ErrSlotTaken is returned by a store when a reservation already exists for the same (resource, date, slot).
	ErrSlotTaken = errors.New("slot already reserved")
	// ErrChallengeFailed is returned when the identity challenge for an occupied slot does not match.
	ErrChallengeFailed = errors.New("identity challenge failed")
	// ErrNotFound is returned when a resource or reservation does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidSlot is returned for slot indices outside 0-23.
	ErrInvalidSlot = errors.New("invalid slot index")
	// ErrInvalidIdentity is returned for a malformed display name or requester id.
	ErrInvalidIdentity = errors.New("invalid identity")
	// ErrAlreadyExists is returned when adding a resource whose name is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// Unavailable wraps a raw store failure so it matches ErrStoreUnavailable while keeping the cause.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// IsTaxonomy reports whether err already carries one of the sentinels above.
func IsTaxonomy(err error) bool {
	for _, target := range []error{ErrStoreUnavailable, ErrSlotTaken, ErrChallengeFailed, ErrNotFound, ErrInvalidSlot, ErrInvalidIdentity, ErrAlreadyExists} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// UserMessage returns a short actionable message for errors shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStoreUnavailable):
		return "Unable to reach the booking database. Check the network connection or that the database service is running, then try again."
	case errors.Is(err, ErrChallengeFailed):
		return "Requester ID does not match the current booking. Unable to connect."
	case errors.Is(err, ErrNotFound):
		return "The machine or booking could not be found. Refresh and try again."
	case errors.Is(err, ErrInvalidSlot):
		return "Slots must be hours between 0 and 23."
	case errors.Is(err, ErrInvalidIdentity):
		return "Name must be letters only (max 50) and ID must be exactly 8 digits."
	case errors.Is(err, ErrSlotTaken):
		return "That slot was just booked by someone else."
	case errors.Is(err, ErrAlreadyExists):
		return "A machine with that name already exists."
	default:
		return err.Error()
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
