package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/runnerr0/mediacat/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string           `json:"version"`
	DatabasePath      string           `json:"database_path"`
	DatabaseSizeBytes int64            `json:"database_size_bytes"`
	TotalRecords      int64            `json:"total_records"`
	ActiveRecords     int64            `json:"active_records"`
	DeletedRecords    int64            `json:"deleted_records"`
	OldestDate        string           `json:"oldest_date,omitempty"`
	NewestDate        string           `json:"newest_date,omitempty"`
	PrivacyThreshold  int              `json:"privacy_threshold"`
	ByType            map[string]int64 `json:"by_type"`
	TopAlbums         []albumCountJSON `json:"top_albums"`
}

type albumCountJSON struct {
	Album string `json:"album"`
	Count int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	return withEnv(c.globals, func(ctx context.Context, rt *env) error {
		return c.executeWithStore(ctx, rt)
	})
}

// executeWithStore runs status against a provided env (for testing).
func (c *StatusCommand) executeWithStore(ctx context.Context, rt *env) error {
	stats, err := rt.store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	// The file on disk includes free pages; prefer it when there is one.
	if info, err := os.Stat(rt.dbPath); err == nil {
		stats.DatabaseSizeBytes = info.Size()
	}

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(rt, stats)
	}
	return c.printStatusHuman(rt, stats)
}

func (c *StatusCommand) printStatusHuman(rt *env, stats *storage.Stats) error {
	fmt.Println("mediacat Status")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", rt.dbPath, humanize.Bytes(uint64(stats.DatabaseSizeBytes)))
	fmt.Printf("Records:       %s\n", humanize.Comma(stats.ActiveRecords))
	if stats.DeletedRecords > 0 {
		fmt.Printf("Deleted:       %s (run prune to remove)\n", humanize.Comma(stats.DeletedRecords))
	}

	if stats.ActiveRecords > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestDate)
		fmt.Printf("Newest:        %s\n", stats.NewestDate)
	}
	fmt.Printf("Privacy:       up to level %d\n", rt.cfg.Catalog.PrivacyThreshold)

	if len(stats.ByType) > 0 {
		fmt.Println()
		fmt.Println("By Type:")
		for _, tc := range stats.ByType {
			fmt.Printf("  %-20s %s\n", tc.FileType, humanize.Comma(tc.Count))
		}
	}

	if len(stats.TopAlbums) > 0 {
		fmt.Println()
		fmt.Println("Top Albums:")
		for _, a := range stats.TopAlbums {
			fmt.Printf("  %-20s %s\n", a.Album, humanize.Comma(a.Count))
		}
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(rt *env, stats *storage.Stats) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      rt.dbPath,
		DatabaseSizeBytes: stats.DatabaseSizeBytes,
		TotalRecords:      stats.TotalRecords,
		ActiveRecords:     stats.ActiveRecords,
		DeletedRecords:    stats.DeletedRecords,
		OldestDate:        stats.OldestDate,
		NewestDate:        stats.NewestDate,
		PrivacyThreshold:  rt.cfg.Catalog.PrivacyThreshold,
		ByType:            make(map[string]int64, len(stats.ByType)),
		TopAlbums:         make([]albumCountJSON, len(stats.TopAlbums)),
	}

	for _, tc := range stats.ByType {
		out.ByType[tc.FileType] = tc.Count
	}
	for i, a := range stats.TopAlbums {
		out.TopAlbums[i] = albumCountJSON{Album: a.Album, Count: a.Count}
	}

	return writeJSON(out)
}
