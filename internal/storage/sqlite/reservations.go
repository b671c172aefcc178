package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

func scanReservation(row rowScanner) (models.Reservation, error) {
	var r models.Reservation
	var createdAt string
	if err := row.Scan(&r.ID, &r.ResourceID, &r.Date, &r.Slot, &r.DisplayName, &r.RequesterID, &createdAt); err != nil {
		return models.Reservation{}, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return r, nil
}

func (s *Store) GetReservations(resourceID int64, date string) ([]models.Reservation, error) {
	rows, err := s.db.Query(`
		SELECT id, machine_id, date, slot, display_name, requester_id, created_at
		FROM bookings WHERE machine_id = ? AND date = ? ORDER BY slot`, resourceID, date)
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
	r, err := scanReservation(s.db.QueryRow(`
		SELECT id, machine_id, date, slot, display_name, requester_id, created_at
		FROM bookings WHERE machine_id = ? AND date = ? AND slot = ?`, resourceID, date, slot))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reservation{}, fmt.Errorf("booking %s/%d: %w", date, slot, apperr.ErrNotFound)
	}
	return r, err
}

func (s *Store) AddReservation(r models.Reservation) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO bookings (id, machine_id, date, slot, display_name, requester_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ResourceID, r.Date, r.Slot, r.DisplayName, r.RequesterID, r.CreatedAt.Format(time.RFC3339))
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

	args := []any{resourceID, date}
	marks := make([]string, len(slots))
	for i, slot := range slots {
		marks[i] = "?"
		args = append(args, slot)
	}
	query := "DELETE FROM bookings WHERE machine_id = ? AND date = ? AND slot IN (" + strings.Join(marks, ", ") + ")"
	if requesterID != "" {
		query += " AND requester_id = ?"
		args = append(args, requesterID)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
