package system

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/keyring"
	"github.com/julianstephens/benchbook/internal/models"
)

// LoginCmd checks an identity pair and optionally remembers it for later commands.
type LoginCmd struct {
	Name     string `required:"" help:"Display name (letters only, max 50)."`
	ID       string `name:"id" required:"" help:"8-digit requester ID."`
	Remember bool   `help:"Store the identity in the OS keyring."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	ident, err := models.NewIdentity(c.Name, c.ID)
	if err != nil {
		return err
	}

	if !c.Remember {
		// Unticking "remember" forgets whatever was stored before
		if err := keyring.DeleteIdentity(); err != nil {
			return fmt.Errorf("failed to clear remembered login: %w", err)
		}
		fmt.Printf("✓ Identity %s is valid (not remembered)\n", ident)
		return nil
	}

	if err := keyring.SetIdentity(ident); err != nil {
		return err
	}
	fmt.Printf("✓ Logged in as %s\n", ident)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteIdentity(); err != nil {
		return fmt.Errorf("failed to clear remembered login: %w", err)
	}
	fmt.Println("✓ Remembered login cleared")
	return nil
}
