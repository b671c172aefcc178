package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

const resourceColumns = `id, sn, owner, host_name, host_account_password, remote_account,
	remote_password, note, state, ipkvm, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (models.Resource, error) {
	var r models.Resource
	err := row.Scan(&r.ID, &r.Name, &r.Owner, &r.HostName, &r.HostAccountPassword, &r.RemoteAccount,
		&r.RemotePassword, &r.Note, &r.State, &r.IPKVM, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (s *Store) AddResource(r models.Resource) (models.Resource, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	err := s.db.QueryRow(`
		INSERT INTO machines (sn, owner, host_name, host_account_password, remote_account,
		                      remote_password, note, state, ipkvm, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id`,
		r.Name, r.Owner, r.HostName, r.HostAccountPassword, r.RemoteAccount,
		r.RemotePassword, r.Note, r.State, r.IPKVM, now).Scan(&r.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Resource{}, fmt.Errorf("machine %q: %w", r.Name, apperr.ErrAlreadyExists)
		}
		return models.Resource{}, err
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	return r, nil
}

func (s *Store) UpdateResource(r models.Resource) error {
	res, err := s.db.Exec(`
		UPDATE machines SET owner = $1, host_name = $2, host_account_password = $3, remote_account = $4,
		       remote_password = $5, note = $6, state = $7, ipkvm = $8, updated_at = $9
		WHERE id = $10`,
		r.Owner, r.HostName, r.HostAccountPassword, r.RemoteAccount,
		r.RemotePassword, r.Note, r.State, r.IPKVM, time.Now().UTC(), r.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("machine %d: %w", r.ID, apperr.ErrNotFound)
	}
	return nil
}

func (s *Store) GetResource(id int64) (models.Resource, error) {
	r, err := scanResource(s.db.QueryRow("SELECT "+resourceColumns+" FROM machines WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, fmt.Errorf("machine %d: %w", id, apperr.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetResourceByName(name string) (models.Resource, error) {
	r, err := scanResource(s.db.QueryRow("SELECT "+resourceColumns+" FROM machines WHERE sn = $1", name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, fmt.Errorf("machine %q: %w", name, apperr.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetAllResources() ([]models.Resource, error) {
	rows, err := s.db.Query("SELECT " + resourceColumns + " FROM machines ORDER BY sn")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}
