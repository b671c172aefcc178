package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

func TestConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}

	connStr := "postgres://lab@db.internal:5432/benchbook?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestIdentity(t *testing.T) {
	gokeyring.MockInit()

	if _, err := GetIdentity(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetIdentity() on empty keyring error = %v, want ErrNotFound", err)
	}

	ident := models.Identity{DisplayName: "Alice", NumericID: "11111111"}
	if err := SetIdentity(ident); err != nil {
		t.Fatalf("SetIdentity() failed: %v", err)
	}
	got, err := GetIdentity()
	if err != nil {
		t.Fatalf("GetIdentity() failed: %v", err)
	}
	if got != ident {
		t.Errorf("GetIdentity() = %+v, want %+v", got, ident)
	}

	if err := SetIdentity(models.Identity{DisplayName: "Al1ce", NumericID: "1"}); !errors.Is(err, apperr.ErrInvalidIdentity) {
		t.Errorf("SetIdentity(invalid) error = %v, want ErrInvalidIdentity", err)
	}

	if err := DeleteIdentity(); err != nil {
		t.Fatalf("DeleteIdentity() failed: %v", err)
	}
	if err := DeleteIdentity(); err != nil {
		t.Errorf("DeleteIdentity() twice should be a no-op, got %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
