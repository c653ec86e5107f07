package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/mediacat/internal/config"
	"github.com/runnerr0/mediacat/internal/media"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if c.Date == "" {
		return fmt.Errorf("--date is required for add command")
	}
	return withEnv(c.globals, func(ctx context.Context, rt *env) error {
		return c.executeWithStore(ctx, rt)
	})
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return media.Text(s)
}

// buildRecord turns the flags into a record ready for AddRecords.
func (c *AddCommand) buildRecord(rt *env) (*media.Record, error) {
	parts, precision, err := media.ParseLooseDate(c.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid --date: %w", err)
	}
	if c.Privacy < 0 {
		return nil, fmt.Errorf("--privacy must not be negative")
	}

	r := &media.Record{
		Title:        optional(c.Title),
		Topic:        optional(c.Topic),
		Location:     optional(c.Location),
		People:       optional(c.People),
		Tags:         optional(c.Tags),
		Albums:       optional(strings.Join(c.Album, ",")),
		DateText:     parts.Text(),
		Precision:    precision,
		Extension:    config.NormalizeExtension(c.File),
		PrivacyLevel: c.Privacy,
	}

	switch {
	case c.Type != "":
		if r.FileType, err = media.ParseFileType(c.Type); err != nil {
			return nil, err
		}
	case r.Extension != "":
		exts, err := rt.cfg.ExtensionMap()
		if err != nil {
			return nil, err
		}
		ft, ok := config.FileTypeFor(exts, r.Extension)
		if !ok {
			return nil, fmt.Errorf("unknown extension %s; pass --type", r.Extension)
		}
		r.FileType = ft
	default:
		return nil, fmt.Errorf("--type or --file is required for add command")
	}

	return r, nil
}

// executeWithStore runs the add logic against a provided env (used by tests).
func (c *AddCommand) executeWithStore(ctx context.Context, rt *env) error {
	r, err := c.buildRecord(rt)
	if err != nil {
		return err
	}

	if err := rt.store.AddRecords(ctx, r); err != nil {
		return fmt.Errorf("add record: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(toJSONRecord(r))
	}
	fmt.Printf("Added %s (%s, rank %g)\n", r.ID, r.DateText, r.Rank)
	return nil
}
