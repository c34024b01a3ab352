package cli

import (
	"fmt"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Update settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	settings, err := ctx.Service().Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	fmt.Println("Current Settings:")
	fmt.Printf("  Day Start:     %02d:00\n", settings.DayStartHour)
	fmt.Printf("  Day End:       %02d:00\n", settings.DayEndHour)
	fmt.Printf("  Medium Match:  %s\n", settings.MediumMatch)
	fmt.Printf("  Timezone:      %s\n", settings.Timezone)
	return nil
}

type SettingsSetCmd struct {
	DayStart    *int    `help:"Default window start hour (0-23)."`
	DayEnd      *int    `help:"Default window end hour (1-24, exclusive)."`
	MediumMatch *string `help:"Medium-energy scoring: literal or distance."`
	Timezone    *string `help:"IANA timezone name, or Local."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	svc := ctx.Service()
	settings, err := svc.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.DayStart != nil {
		settings.DayStartHour = *c.DayStart
		updated = true
	}
	if c.DayEnd != nil {
		settings.DayEndHour = *c.DayEnd
		updated = true
	}
	if c.MediumMatch != nil {
		settings.MediumMatch = *c.MediumMatch
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use 'settings show' to view settings or flags to update them.")
		return nil
	}
	if err := svc.UpdateSettings(settings); err != nil {
		return err
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
