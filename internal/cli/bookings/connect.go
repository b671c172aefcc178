package bookings

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/cli"
	apperr "github.com/julianstephens/benchbook/internal/errors"
)

type HolderCmd struct {
	Resource string `arg:"" help:"Machine serial."`
}

func (c *HolderCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Resource(c.Resource)
	if err != nil {
		return err
	}
	holder, err := ctx.Engine.CurrentHolder(r.ID)
	if err != nil {
		return err
	}

	hour := ctx.Clock.CurrentHour()
	if holder == nil {
		fmt.Printf("%s is free for %02d:00-%02d:00\n", r.Name, hour, hour+1)
		return nil
	}
	fmt.Printf("%s is booked for %02d:00-%02d:00 by %s\n", r.Name, hour, hour+1, holder.DisplayName)
	return nil
}

type ConnectCmd struct {
	Resource          string `arg:"" help:"Machine serial."`
	Challenge         string `help:"Requester ID of the current holder, needed when someone else holds this hour."`
	cli.IdentityFlags `embed:""`
}

func (c *ConnectCmd) Run(ctx *cli.Context) error {
	who, err := ctx.Identity(c.IdentityFlags)
	if err != nil {
		return err
	}
	r, err := ctx.Resource(c.Resource)
	if err != nil {
		return err
	}

	access, err := ctx.Engine.Authorize(r.ID, who)
	if err != nil {
		return err
	}
	if access.Challenge && c.Challenge == "" {
		return fmt.Errorf("%s is booked by %s this hour, pass --challenge with their requester ID: %w",
			r.Name, access.Holder.DisplayName, apperr.ErrChallengeFailed)
	}
	if err := access.Verify(c.Challenge); err != nil {
		return err
	}

	if err := ctx.Launcher.Launch(r.ConnectionParams()); err != nil {
		return fmt.Errorf("failed to open session to %s: %w", r.Name, err)
	}
	fmt.Printf("Opening session to %s (%s)\n", r.Name, r.HostName)
	return nil
}
