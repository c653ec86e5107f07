package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	return withEnv(c.globals, func(ctx context.Context, rt *env) error {
		return c.executeWithStore(ctx, rt)
	})
}

// executeWithStore prunes soft-deleted records in the provided env (for testing).
func (c *PruneCommand) executeWithStore(ctx context.Context, rt *env) error {
	var n int64
	if c.DryRun {
		stats, err := rt.store.GetStats(ctx)
		if err != nil {
			return fmt.Errorf("get stats: %w", err)
		}
		n = stats.DeletedRecords
	} else {
		var err error
		if n, err = rt.store.PruneDeleted(ctx); err != nil {
			return err
		}
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]any{"pruned": n, "dry_run": c.DryRun})
	}
	if c.DryRun {
		fmt.Printf("Would prune %d deleted %s.\n", n, plural(int(n), "record"))
	} else {
		fmt.Printf("Pruned %d deleted %s.\n", n, plural(int(n), "record"))
	}
	return nil
}
