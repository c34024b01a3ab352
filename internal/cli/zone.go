package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/energyflow/internal/constants"
	"github.com/julianstephens/energyflow/internal/energy"
	"github.com/julianstephens/energyflow/internal/planner"
)

type ZoneCmd struct{}

func (c *ZoneCmd) Run(ctx *Context) error {
	svc := ctx.Service()
	now := svc.Now()
	z := energy.CurrentZone(now)

	fmt.Printf("%s  %s\n", now.Format(constants.TimeFormat), z.Name)
	fmt.Printf("  %s\n", z.Focus)

	p, err := svc.Profile()
	if errors.Is(err, planner.ErrProfileMissing) {
		fmt.Println(dimStyle.Render("  Take the quiz to see your expected energy."))
		return nil
	}
	if err != nil {
		return err
	}
	level := energy.Clamp(energy.EnergyAt(now.Hour(), p))
	fmt.Printf("  Expected energy: %.0f/100\n", level)
	return nil
}
