package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/mediacat/internal/media"
)

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	if c.ID == "" && len(args) > 0 {
		c.ID = args[0]
	}
	if c.ID == "" {
		return fmt.Errorf("--id is required for show command")
	}
	return withEnv(c.globals, func(ctx context.Context, rt *env) error {
		return c.executeWithStore(ctx, rt)
	})
}

// executeWithStore prints one record from the provided env (for testing).
func (c *ShowCommand) executeWithStore(ctx context.Context, rt *env) error {
	r, err := rt.store.GetRecord(ctx, c.ID)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(toJSONRecord(r))
	}

	fmt.Printf("ID:         %s\n", r.ID)
	fmt.Printf("Title:      %s\n", media.Value(r.Title))
	fmt.Printf("Topic:      %s\n", media.Value(r.Topic))
	fmt.Printf("Location:   %s\n", media.Value(r.Location))
	fmt.Printf("People:     %s (%d)\n", media.Value(r.People), r.PeopleCount)
	fmt.Printf("Tags:       %s\n", media.Value(r.Tags))
	fmt.Printf("Albums:     %s\n", media.Value(r.Albums))
	fmt.Printf("Date:       %s (%s)\n", r.DateText, r.Precision)
	fmt.Printf("Rank:       %g\n", r.Rank)
	fmt.Printf("File:       %s %s\n", r.FileType, r.Extension)
	fmt.Printf("Privacy:    %d\n", r.PrivacyLevel)
	fmt.Printf("Created:    %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))
	if r.Status != media.StatusActive {
		fmt.Printf("Status:     %s\n", r.Status)
	}
	return nil
}
