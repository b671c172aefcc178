package settings

import (
	"fmt"

	"github.com/julianstephens/benchbook/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone       *string `help:"IANA time zone that decides today and the current hour."`
	HorizonDays    *int    `help:"How many days past today can be booked."`
	CancelPolicy   *string `help:"Who may cancel a booking: 'anyone' or 'owner'."`
	ViewerTemplate *string `help:"Path of a .vnc file used as the connection template (empty for built-in)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		template := settings.ViewerTemplate
		if template == "" {
			template = "(built-in)"
		}
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:        %s\n", settings.Timezone)
		fmt.Printf("  Horizon:         %d days\n", settings.HorizonDays)
		fmt.Printf("  Cancel Policy:   %s\n", settings.CancelPolicy)
		fmt.Printf("  Viewer Template: %s\n", template)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.HorizonDays != nil {
		settings.HorizonDays = *c.HorizonDays
		updated = true
	}
	if c.CancelPolicy != nil {
		settings.CancelPolicy = *c.CancelPolicy
		updated = true
	}
	if c.ViewerTemplate != nil {
		settings.ViewerTemplate = *c.ViewerTemplate
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
