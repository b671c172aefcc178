package storage

import "github.com/julianstephens/benchbook/internal/models"

// Provider is the reservation store. Every backend enforces uniqueness of
// (resource, date, slot) atomically on insert and reports a duplicate as
// errors.ErrSlotTaken; missing rows are errors.ErrNotFound.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Resources
	AddResource(models.Resource) (models.Resource, error)
	UpdateResource(models.Resource) error
	GetResource(id int64) (models.Resource, error)
	GetResourceByName(name string) (models.Resource, error)
	GetAllResources() ([]models.Resource, error)

	// Reservations
	GetReservations(resourceID int64, date string) ([]models.Reservation, error)
	// GetReservation returns the reservation for one slot, or ErrNotFound.
	GetReservation(resourceID int64, date string, slot int) (models.Reservation, error)
	// AddReservation inserts a single row. A row already present for the same
	// (resource, date, slot) yields ErrSlotTaken and leaves the store unchanged.
	AddReservation(models.Reservation) error
	// DeleteReservations removes the rows for the given slots and returns how many
	// were removed. A non-empty requesterID limits deletion to that requester's rows.
	DeleteReservations(resourceID int64, date string, slots []int, requesterID string) (int, error)

	// Utils
	SchemaVersion() (current int, latest int, err error)
	GetConfigPath() string
}
