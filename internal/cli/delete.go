package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
	if c.ID == "" && len(args) > 0 {
		c.ID = args[0]
	}
	if c.ID == "" {
		return fmt.Errorf("--id is required for delete command")
	}
	return withEnv(c.globals, func(ctx context.Context, rt *env) error {
		return c.executeWithStore(ctx, rt)
	})
}

// executeWithStore soft-deletes a record in the provided env (for testing).
func (c *DeleteCommand) executeWithStore(ctx context.Context, rt *env) error {
	if err := rt.store.DeleteRecord(ctx, c.ID); err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]any{"deleted": c.ID})
	}
	fmt.Printf("Deleted %s. Run prune to remove it for good.\n", c.ID)
	return nil
}
