package bookings

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/booking"
	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/models"
)

type CancelCmd struct {
	Resource          string `arg:"" help:"Machine serial."`
	Slots             []int  `arg:"" help:"Hours to cancel (0-23)."`
	Date              string `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
	cli.IdentityFlags `embed:""`
}

func (c *CancelCmd) Validate() error {
	for _, s := range c.Slots {
		if !models.ValidSlot(s) {
			return fmt.Errorf("slot %d is out of range 0-23", s)
		}
	}
	return nil
}

func (c *CancelCmd) Run(ctx *cli.Context) error {
	// Under the anyone policy a cancel works without a login
	var who models.Identity
	if ctx.Engine.Policy() == booking.CancelOwner || c.Name != "" || c.ID != "" {
		ident, err := ctx.Identity(c.IdentityFlags)
		if err != nil {
			return err
		}
		who = ident
	}

	r, err := ctx.Resource(c.Resource)
	if err != nil {
		return err
	}
	date, err := ctx.BookableDate(c.Date)
	if err != nil {
		return err
	}

	n, err := ctx.Engine.Cancel(r.ID, date, who, c.Slots)
	if err != nil {
		return err
	}
	fmt.Printf("Cancelled %d booking(s) on %s for %s\n", n, r.Name, date)
	if n < len(c.Slots) && ctx.Engine.Policy() == booking.CancelOwner {
		fmt.Println("Only your own bookings can be cancelled.")
	}
	return nil
}
