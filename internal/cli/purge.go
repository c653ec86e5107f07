package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if err := c.confirm(); err != nil {
		return err
	}
	return withEnv(c.globals, func(ctx context.Context, rt *env) error {
		return c.executeWithStore(ctx, rt)
	})
}

// confirm checks --all and, unless --force, asks for the confirmation word.
func (c *PurgeCommand) confirm() error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}
	if c.Force {
		return nil
	}

	fmt.Println("⚠ WARNING: This will permanently delete ALL catalog data.")
	fmt.Println("  - All records, including deleted ones")
	fmt.Println("  - The audit log")
	fmt.Println()
	fmt.Println("This action cannot be undone.")
	fmt.Println()
	fmt.Print(`Type "PURGE" to confirm: `)

	var in io.Reader = os.Stdin
	if c.stdin != nil {
		in = c.stdin
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return fmt.Errorf("aborted: no input received")
	}
	if strings.TrimSpace(scanner.Text()) != "PURGE" {
		return fmt.Errorf("aborted: confirmation text did not match")
	}
	return nil
}

// executeWithStore purges the provided env (for testing).
func (c *PurgeCommand) executeWithStore(ctx context.Context, rt *env) error {
	if err := rt.store.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]any{
			"purged":  true,
			"message": "all data deleted",
		})
	}

	fmt.Println("Purged all data. The catalog is empty.")
	return nil
}
