package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/energyflow/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete the existing store before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*storage.PostgresStore); ok {
			return fmt.Errorf("--force is not supported for PostgreSQL; drop the schema manually")
		}
		_ = ctx.Store.Close()
		path := ctx.Store.GetConfigPath()
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized energyflow storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Next: run 'energyflow quiz' to build your energy profile.")
	return nil
}
