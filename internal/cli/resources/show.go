package resources

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/inventory"
)

type ResourceShowCmd struct {
	Name string `arg:"" help:"Machine serial."`
}

func (c *ResourceShowCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Resource(c.Name)
	if err != nil {
		return err
	}
	holder, err := ctx.Engine.CurrentHolder(r.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (section %s)\n", r.Name, r.Section())
	for _, f := range inventory.Details(r, holder) {
		marker := " "
		if f.Alert {
			marker = "!"
		}
		fmt.Printf(" %s %-22s %s\n", marker, f.Key+":", f.Value)
	}
	return nil
}
