package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for ReorderCommand.
func (c *ReorderCommand) Execute(args []string) error {
	if c.Date == "" {
		return fmt.Errorf("--date is required for reorder command")
	}
	if len(c.IDs) == 0 {
		return fmt.Errorf("at least one --id is required for reorder command")
	}
	return withEnv(c.globals, func(ctx context.Context, rt *env) error {
		return c.executeWithStore(ctx, rt)
	})
}

// executeWithStore reorders a date group in the provided env (for testing).
func (c *ReorderCommand) executeWithStore(ctx context.Context, rt *env) error {
	date, err := parseDayNumber(c.Date, false)
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	if err := rt.store.Reorder(ctx, date, c.IDs); err != nil {
		return fmt.Errorf("reorder %s: %w", c.Date, err)
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]any{"date": c.Date, "order": c.IDs})
	}
	fmt.Printf("Reordered %d %s on %s\n", len(c.IDs), plural(len(c.IDs), "record"), c.Date)
	return nil
}
