package resources

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/inventory"
)

type ResourceListCmd struct {
	ShowIDs bool `help:"Show machine IDs." name:"show-ids"`
}

func (c *ResourceListCmd) Run(ctx *cli.Context) error {
	resources, err := ctx.Store.GetAllResources()
	if err != nil {
		return fmt.Errorf("failed to get machines: %w", err)
	}
	if len(resources) == 0 {
		fmt.Println("No machines found")
		return nil
	}

	ids := make([]int64, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	occupied, err := ctx.Engine.Occupancy(ids)
	if err != nil {
		return err
	}

	fmt.Printf("Machines (%s %02d:00):\n", ctx.Clock.Today(), ctx.Clock.CurrentHour())
	for _, sec := range inventory.Group(resources) {
		fmt.Printf("  %s\n", sec.Name)
		for _, r := range sec.Resources {
			led := "○"
			holder := ""
			if who, ok := occupied[r.ID]; ok {
				led = "●"
				holder = " - in use by " + who.DisplayName
			}

			idStr := ""
			if c.ShowIDs {
				idStr = fmt.Sprintf(" (ID: %d)", r.ID)
			}
			fmt.Printf("    %s %s%s%s\n", led, r.Name, idStr, holder)
		}
	}
	return nil
}
