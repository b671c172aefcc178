package sqlite

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
	var createdAt, updatedAt string
	err := row.Scan(&r.ID, &r.Name, &r.Owner, &r.HostName, &r.HostAccountPassword, &r.RemoteAccount,
		&r.RemotePassword, &r.Note, &r.State, &r.IPKVM, &createdAt, &updatedAt)
	if err != nil {
		return models.Resource{}, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return r, nil
}

func (s *Store) AddResource(r models.Resource) (models.Resource, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.db.Exec(`
		INSERT INTO machines (sn, owner, host_name, host_account_password, remote_account,
		                      remote_password, note, state, ipkvm, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.Owner, r.HostName, r.HostAccountPassword, r.RemoteAccount,
		r.RemotePassword, r.Note, r.State, r.IPKVM, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Resource{}, fmt.Errorf("machine %q: %w", r.Name, apperr.ErrAlreadyExists)
		}
		return models.Resource{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Resource{}, err
	}
	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now
	return r, nil
}

func (s *Store) UpdateResource(r models.Resource) error {
	res, err := s.db.Exec(`
		UPDATE machines SET owner = ?, host_name = ?, host_account_password = ?, remote_account = ?,
		       remote_password = ?, note = ?, state = ?, ipkvm = ?, updated_at = ?
		WHERE id = ?`,
		r.Owner, r.HostName, r.HostAccountPassword, r.RemoteAccount,
		r.RemotePassword, r.Note, r.State, r.IPKVM, time.Now().UTC().Format(time.RFC3339), r.ID)
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
	r, err := scanResource(s.db.QueryRow("SELECT "+resourceColumns+" FROM machines WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, fmt.Errorf("machine %d: %w", id, apperr.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetResourceByName(name string) (models.Resource, error) {
	r, err := scanResource(s.db.QueryRow("SELECT "+resourceColumns+" FROM machines WHERE sn = ?", name))
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
