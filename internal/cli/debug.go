package cli

import (
	"fmt"

	"github.com/julianstephens/energyflow/internal/board"
)

type DebugCmd struct {
	DBPath      *DebugDBPathCmd      `cmd:"" help:"Show database path."`
	DumpProfile *DebugDumpProfileCmd `cmd:"" help:"Dump the stored energy profile as JSON."`
	DumpBoard   *DebugDumpBoardCmd   `cmd:"" help:"Dump the task board as JSON."`
	DumpTask    *DebugDumpTaskCmd    `cmd:"" help:"Dump one board task as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpProfileCmd struct{}

func (cmd *DebugDumpProfileCmd) Run(ctx *Context) error {
	p, err := ctx.Service().Profile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	return printJSON(p)
}

type DebugDumpBoardCmd struct{}

func (cmd *DebugDumpBoardCmd) Run(ctx *Context) error {
	b, err := ctx.Service().Board()
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}
	return printJSON(b)
}

type DebugDumpTaskCmd struct {
	ID string `arg:"" help:"ID (or unique prefix) of the task to dump."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *Context) error {
	b, err := ctx.Service().Board()
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}
	id, err := resolveID(b, cmd.ID)
	if err != nil {
		return err
	}
	loc, ok := board.Find(&b, id)
	if !ok {
		return fmt.Errorf("task not found: %s", cmd.ID)
	}
	return printJSON((*b.Column(loc.Zone))[loc.Index])
}
