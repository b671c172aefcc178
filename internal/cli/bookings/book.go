package bookings

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/constants"
	"github.com/julianstephens/benchbook/internal/models"
)

type BookCmd struct {
	Resource          string `arg:"" help:"Machine serial."`
	Slots             []int  `arg:"" help:"Hours to book (0-23)."`
	Date              string `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
	cli.IdentityFlags `embed:""`
}

func (c *BookCmd) Validate() error {
	for _, s := range c.Slots {
		if !models.ValidSlot(s) {
			return fmt.Errorf("slot %d is out of range 0-23", s)
		}
	}
	return nil
}

func (c *BookCmd) Run(ctx *cli.Context) error {
	who, err := ctx.Identity(c.IdentityFlags)
	if err != nil {
		return err
	}
	r, err := ctx.Resource(c.Resource)
	if err != nil {
		return err
	}
	date, err := ctx.BookableDate(c.Date)
	if err != nil {
		return err
	}

	committed, err := ctx.Engine.Commit(r.ID, date, who, c.Slots)
	if len(committed) > 0 {
		fmt.Printf("Booked %s on %s for %s: %s\n", r.Name, date, who.DisplayName, joinSlots(committed))
	}
	if err != nil {
		return err
	}

	missed := missing(c.Slots, committed)
	if len(missed) > 0 {
		fmt.Printf("Not booked (taken or already past): %s\n", joinSlots(missed))
	}
	if len(committed) == 0 {
		fmt.Println("Nothing was booked.")
	}
	return nil
}

// missing returns the requested slots absent from done, deduplicated and in order.
func missing(requested, done []int) []int {
	got := make(map[int]bool, len(done))
	for _, s := range done {
		got[s] = true
	}
	var out []int
	for s := 0; s < constants.SlotsPerDay; s++ {
		if got[s] {
			continue
		}
		for _, r := range requested {
			if r == s {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
