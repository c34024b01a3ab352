package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/energyflow/internal/energy"
	"github.com/julianstephens/energyflow/internal/models"
)

var (
	zoneColors = map[models.Zone]lipgloss.Color{
		models.ZoneMorning:   lipgloss.Color("214"),
		models.ZoneAfternoon: lipgloss.Color("39"),
		models.ZoneEvening:   lipgloss.Color("141"),
	}
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type ProfileCmd struct {
	Curve   bool `help:"Show the 24-hour energy curve."`
	Jitter  bool `help:"Add display jitter to the curve."`
	History int  `help:"Show the last N profiles instead of the current one."`
	JSON    bool `help:"Print as JSON."`
	Reset   bool `help:"Delete the current profile."`
	Yes     bool `short:"y" help:"Skip confirmation prompts."`
}

func (c *ProfileCmd) Run(ctx *Context) error {
	svc := ctx.Service()

	if c.Reset {
		ok, err := confirm("Delete your energy profile?", c.Yes)
		if err != nil || !ok {
			return err
		}
		if err := svc.ResetProfile(); err != nil {
			return err
		}
		fmt.Println("Profile deleted. Run 'energyflow quiz' to create a new one.")
		return nil
	}

	if c.History > 0 {
		history, err := svc.History(c.History)
		if err != nil {
			return err
		}
		if c.JSON {
			return printJSON(history)
		}
		if len(history) == 0 {
			fmt.Println("No profiles recorded yet.")
			return nil
		}
		for _, p := range history {
			fmt.Printf("%s  %-20s %-16s %s\n", p.Timestamp.Local().Format("2006-01-02 15:04"),
				p.Chronotype.Label, p.Amplitude.Label, p.Recovery.Label)
		}
		return nil
	}

	p, err := svc.Profile()
	if err != nil {
		return err
	}

	if c.Curve {
		points, err := svc.Curve(c.Jitter)
		if err != nil {
			return err
		}
		if c.JSON {
			return printJSON(points)
		}
		printCurve(points, p)
		return nil
	}

	if c.JSON {
		return printJSON(p)
	}
	printProfile(p)
	return nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

func printProfile(p models.EnergyProfile) {
	fmt.Printf("  Chronotype:  %s (peak %02d:00-%02d:00)\n", p.Chronotype.Label, p.Chronotype.PeakStart, p.Chronotype.PeakEnd)
	fmt.Printf("  Amplitude:   %s\n", p.Amplitude.Label)
	fmt.Printf("  Recovery:    %s (%d min breaks)\n", p.Recovery.Label, p.Recovery.BreakTimeMinutes)
	fmt.Printf("  Flexibility: %s\n", p.External.Label)
	fmt.Println(dimStyle.Render(fmt.Sprintf("  Taken %s", p.Timestamp.Local().Format("2006-01-02 15:04"))))
}

func printCurve(points []energy.Point, p models.EnergyProfile) {
	for _, pt := range points {
		zone := energy.ZoneForHour(pt.Hour)
		bar := lipgloss.NewStyle().Foreground(zoneColors[zone]).Render(strings.Repeat("█", pt.Energy/2))
		marker := " "
		if p.IsPeakHour(pt.Hour) {
			marker = "*"
		}
		fmt.Printf("%02d:00 %s %3d %s\n", pt.Hour, marker, pt.Energy, bar)
	}
	fmt.Println(dimStyle.Render("* peak window"))
}
