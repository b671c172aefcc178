package resources

import (
	"fmt"
	"strings"

	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/models"
)

// ResourceFlags are shared by add and edit. Pointers distinguish "not given" from "clear".
type ResourceFlags struct {
	Owner               *string `help:"Owner of the machine."`
	Host                *string `help:"Host name or address the viewer connects to."`
	HostAccountPassword *string `name:"host-account-password" help:"Password of the host account."`
	RemoteAccount       *string `help:"Account used for the remote session."`
	RemotePassword      *string `help:"Password used for the remote session."`
	Note                *string `help:"Free-form note."`
	State               *string `help:"Machine state, e.g. ready or broken."`
	IPKVM               *string `name:"ipkvm" help:"IP-KVM address."`
}

func (f ResourceFlags) apply(r *models.Resource) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
			changed = true
		}
	}
	set(&r.Owner, f.Owner)
	set(&r.HostName, f.Host)
	set(&r.HostAccountPassword, f.HostAccountPassword)
	set(&r.RemoteAccount, f.RemoteAccount)
	set(&r.RemotePassword, f.RemotePassword)
	set(&r.Note, f.Note)
	set(&r.State, f.State)
	set(&r.IPKVM, f.IPKVM)
	return changed
}

type ResourceAddCmd struct {
	Name          string `arg:"" help:"Machine serial, e.g. LAB_01. The part before '_' is its section."`
	ResourceFlags `embed:""`
}

func (c *ResourceAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("machine name cannot be empty")
	}
	return nil
}

func (c *ResourceAddCmd) Run(ctx *cli.Context) error {
	r := models.Resource{Name: strings.TrimSpace(c.Name)}
	c.apply(&r)

	added, err := ctx.Store.AddResource(r)
	if err != nil {
		return fmt.Errorf("failed to add machine: %w", err)
	}
	fmt.Printf("Added machine %s (ID %d) in section %s\n", added.Name, added.ID, added.Section())
	return nil
}

type ResourceEditCmd struct {
	Name          string `arg:"" help:"Machine serial."`
	ResourceFlags `embed:""`
}

func (c *ResourceEditCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Resource(c.Name)
	if err != nil {
		return err
	}

	if !c.apply(&r) {
		fmt.Println("No changes specified.")
		return nil
	}
	if err := ctx.Store.UpdateResource(r); err != nil {
		return fmt.Errorf("failed to update machine: %w", err)
	}
	fmt.Printf("Updated machine %s\n", r.Name)
	return nil
}
