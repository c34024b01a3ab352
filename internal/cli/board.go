package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/energyflow/internal/board"
	"github.com/julianstephens/energyflow/internal/energy"
	"github.com/julianstephens/energyflow/internal/models"
)

type BoardCmd struct {
	Show   BoardShowCmd   `cmd:"" help:"Show the task board." default:"1"`
	Add    BoardAddCmd    `cmd:"" help:"Add a task to a zone."`
	Toggle BoardToggleCmd `cmd:"" help:"Toggle a task's completion."`
	Delete BoardDeleteCmd `cmd:"" help:"Delete a task."`
	Move   BoardMoveCmd   `cmd:"" help:"Move a task to another zone or position."`
	Clear  BoardClearCmd  `cmd:"" help:"Remove completed tasks."`
}

type BoardShowCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *BoardShowCmd) Run(ctx *Context) error {
	b, err := ctx.Service().Board()
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(b)
	}

	counts := board.Counts(&b)
	for _, z := range models.Zones {
		title := lipgloss.NewStyle().Bold(true).Foreground(zoneColors[z]).Render(energy.Describe(z).Name)
		cnt := counts[z]
		fmt.Printf("%s %s\n", title, dimStyle.Render(fmt.Sprintf("(%d/%d done)", cnt.Completed, cnt.Total)))
		col := *b.Column(z)
		if len(col) == 0 {
			fmt.Println(dimStyle.Render("  no tasks"))
		}
		for _, t := range col {
			check := "[ ]"
			if t.Completed {
				check = "[x]"
			}
			fmt.Printf("  %s %s  %s\n", check, dimStyle.Render(shortID(t.ID)), t.Text)
		}
		fmt.Println()
	}
	return nil
}

type BoardAddCmd struct {
	Zone string `arg:"" enum:"morning,afternoon,evening" help:"Zone (morning, afternoon, evening)."`
	Text string `arg:"" help:"Task text."`
}

func (c *BoardAddCmd) Run(ctx *Context) error {
	zone, err := models.ParseZone(c.Zone)
	if err != nil {
		return err
	}
	task, err := ctx.Service().AddTask(zone, c.Text)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s to %s: %s\n", shortID(task.ID), zone, task.Text)
	return nil
}

type BoardToggleCmd struct {
	ID string `arg:"" help:"Task id or unique prefix."`
}

func (c *BoardToggleCmd) Run(ctx *Context) error {
	id, err := lookupID(ctx, c.ID)
	if err != nil {
		return err
	}
	task, err := ctx.Service().ToggleTask(id)
	if err != nil {
		return err
	}
	state := "open"
	if task.Completed {
		state = "done"
	}
	fmt.Printf("%s marked %s: %s\n", shortID(task.ID), state, task.Text)
	return nil
}

type BoardDeleteCmd struct {
	ID string `arg:"" help:"Task id or unique prefix."`
}

func (c *BoardDeleteCmd) Run(ctx *Context) error {
	id, err := lookupID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Service().DeleteTask(id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", shortID(id))
	return nil
}

type BoardMoveCmd struct {
	ID       string `arg:"" help:"Task id or unique prefix."`
	Zone     string `arg:"" enum:"morning,afternoon,evening" help:"Target zone."`
	Position int    `help:"1-based position in the target zone (default: end)." default:"0"`
}

func (c *BoardMoveCmd) Run(ctx *Context) error {
	id, err := lookupID(ctx, c.ID)
	if err != nil {
		return err
	}
	zone, err := models.ParseZone(c.Zone)
	if err != nil {
		return err
	}
	index := c.Position - 1
	if c.Position <= 0 {
		b, err := ctx.Service().Board()
		if err != nil {
			return err
		}
		index = len(*b.Column(zone))
	}
	if _, err := ctx.Service().MoveTask(id, zone, index); err != nil {
		return err
	}
	fmt.Printf("Moved %s to %s\n", shortID(id), zone)
	return nil
}

type BoardClearCmd struct{}

func (c *BoardClearCmd) Run(ctx *Context) error {
	n, err := ctx.Service().ClearCompleted()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d completed tasks.\n", n)
	return nil
}

func lookupID(ctx *Context, prefix string) (string, error) {
	b, err := ctx.Service().Board()
	if err != nil {
		return "", err
	}
	return resolveID(b, prefix)
}
