package system

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/benchbook/internal/cli"
	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/keyring"
)

func TestLoginCmd(t *testing.T) {
	gokeyring.MockInit()
	defer func() { _ = keyring.DeleteIdentity() }()

	t.Run("invalid identity", func(t *testing.T) {
		err := (&LoginCmd{Name: "R2D2", ID: "12345678"}).Run(&cli.Context{})
		if !errors.Is(err, apperr.ErrInvalidIdentity) {
			t.Errorf("LoginCmd.Run() error = %v, want ErrInvalidIdentity", err)
		}
	})

	t.Run("remember stores identity", func(t *testing.T) {
		if err := (&LoginCmd{Name: "Alice", ID: "11111111", Remember: true}).Run(&cli.Context{}); err != nil {
			t.Fatalf("LoginCmd.Run() error = %v", err)
		}
		ident, err := keyring.GetIdentity()
		if err != nil {
			t.Fatalf("GetIdentity() error = %v", err)
		}
		if ident.DisplayName != "Alice" || ident.NumericID != "11111111" {
			t.Errorf("remembered identity = %+v", ident)
		}
	})

	t.Run("without remember forgets identity", func(t *testing.T) {
		if err := (&LoginCmd{Name: "Bob", ID: "22222222"}).Run(&cli.Context{}); err != nil {
			t.Fatalf("LoginCmd.Run() error = %v", err)
		}
		if _, err := keyring.GetIdentity(); !errors.Is(err, keyring.ErrNotFound) {
			t.Errorf("GetIdentity() error = %v, want ErrNotFound", err)
		}
	})
}

func TestLogoutCmd(t *testing.T) {
	gokeyring.MockInit()

	if err := (&LogoutCmd{}).Run(&cli.Context{}); err != nil {
		t.Errorf("logout with nothing stored should succeed: %v", err)
	}

	if err := (&LoginCmd{Name: "Alice", ID: "11111111", Remember: true}).Run(&cli.Context{}); err != nil {
		t.Fatalf("LoginCmd.Run() error = %v", err)
	}
	if err := (&LogoutCmd{}).Run(&cli.Context{}); err != nil {
		t.Fatalf("LogoutCmd.Run() error = %v", err)
	}
	if _, err := keyring.GetIdentity(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("GetIdentity() error = %v, want ErrNotFound", err)
	}
}
