package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

const reservationColumns = `id, machine_id, to_char(date, 'YYYY-MM-DD'), slot, display_name, requester_id, created_at`

func scanReservation(row rowScanner) (models.Reservation, error) {
	var r models.Reservation
	err := row.Scan(&r.ID, &r.ResourceID, &r.Date, &r.Slot, &r.DisplayName, &r.RequesterID, &r.CreatedAt)
	return r, err
}

func (s *Store) GetReservations(resourceID int64, date string) ([]models.Reservation, error) {
	rows, err := s.db.Query(`SELECT `+reservationColumns+`
		FROM bookings WHERE machine_id = $1 AND date = $2 ORDER BY slot`, resourceID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func (s *Store) GetReservation(resourceID int64, date string, slot int) (models.Reservation, error) {
	r, err := scanReservation(s.db.QueryRow(`SELECT `+reservationColumns+`
		FROM bookings WHERE machine_id = $1 AND date = $2 AND slot = $3`, resourceID, date, slot))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reservation{}, fmt.Errorf("booking %s/%d: %w", date, slot, apperr.ErrNotFound)
	}
	return r, err
}

// AddReservation relies on bookings_machine_date_slot_key; two sessions racing
// for the same slot get one success and one unique_violation.
func (s *Store) AddReservation(r models.Reservation) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO bookings (id, machine_id, date, slot, display_name, requester_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.ResourceID, r.Date, r.Slot, r.DisplayName, r.RequesterID, r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slot %d on %s: %w", r.Slot, r.Date, apperr.ErrSlotTaken)
		}
		return err
	}
	return nil
}

func (s *Store) DeleteReservations(resourceID int64, date string, slots []int, requesterID string) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	ints := make(pq.Int64Array, len(slots))
	for i, slot := range slots {
		ints[i] = int64(slot)
	}

	var res sql.Result
	var err error
	if requesterID == "" {
		res, err = s.db.Exec(`DELETE FROM bookings WHERE machine_id = $1 AND date = $2 AND slot = ANY($3)`,
			resourceID, date, ints)
	} else {
		res, err = s.db.Exec(`DELETE FROM bookings WHERE machine_id = $1 AND date = $2 AND slot = ANY($3) AND requester_id = $4`,
			resourceID, date, ints, requesterID)
	}
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
