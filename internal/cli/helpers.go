package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/runnerr0/mediacat/internal/config"
	"github.com/runnerr0/mediacat/internal/filter"
	"github.com/runnerr0/mediacat/internal/logging"
	"github.com/runnerr0/mediacat/internal/media"
	"github.com/runnerr0/mediacat/internal/storage"
)

// env is everything a command needs once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	store  *storage.SQLiteStore
	dbPath string
}

func (rt *env) close() {
	if rt.store != nil {
		rt.store.Close()
	}
	if rt.db != nil {
		rt.db.Close()
	}
}

// loadConfig reads --config, or the default config file, creating it on
// first use.
func loadConfig(g *GlobalFlags) (*config.Config, error) {
	if g != nil && g.Config != "" {
		return config.Load(g.Config)
	}
	return config.LoadOrCreate()
}

// newLogger builds the stderr logger; --verbose forces debug.
func newLogger(cfg *config.Config, g *GlobalFlags) (*slog.Logger, error) {
	lc := cfg.Logging
	if g != nil && g.Verbose {
		lc.Level = "debug"
	}
	return logging.New(lc, os.Stderr)
}

// openEnv loads config, opens the store and applies migrations.
func openEnv(ctx context.Context, g *GlobalFlags) (*env, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg, g)
	if err != nil {
		return nil, err
	}

	dbPath := ""
	if g != nil {
		dbPath = g.DB
	}
	if dbPath == "" {
		if dbPath, err = cfg.DBPath(); err != nil {
			return nil, err
		}
	}

	db, err := storage.Open(ctx, cfg.Storage.Driver, dbPath, cfg.Storage.SQLiteJournalMode)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStore(db, storage.WithLogger(logger))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Debug("store opened", slog.String("path", dbPath), slog.String("driver", cfg.Storage.Driver))
	return &env{cfg: cfg, logger: logger, db: db, store: store, dbPath: dbPath}, nil
}

// withEnv opens an env, runs fn and closes it.
func withEnv(g *GlobalFlags, fn func(ctx context.Context, rt *env) error) error {
	ctx := context.Background()
	rt, err := openEnv(ctx, g)
	if err != nil {
		return err
	}
	defer rt.close()
	return fn(ctx, rt)
}

// newEngine builds the filter engine the config describes.
func newEngine(cfg *config.Config, logger *slog.Logger) (*filter.Engine, error) {
	match, err := filter.ParseMatchStrategy(cfg.Search.MatchStrategy)
	if err != nil {
		return nil, err
	}
	parser, err := filter.NewCachingParser(filter.FirstSplitParser{}, cfg.Search.ExpressionCacheSize)
	if err != nil {
		return nil, err
	}
	return filter.NewEngine(
		filter.WithParser(parser),
		filter.WithMatchStrategy(match),
		filter.WithLogger(logger),
	), nil
}

// parseDayNumber parses a loose date and returns the day number of its
// first day, or of its last day when end is set: "2020" as an upper bound
// means 31.12.2020.
func parseDayNumber(s string, end bool) (int, error) {
	parts, p, err := media.ParseLooseDate(s)
	if err != nil {
		return 0, err
	}
	if !end || p == media.PrecisionDay {
		return parts.DayNumber(), nil
	}
	first := time.Date(parts.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if p == media.PrecisionMonth {
		first = time.Date(parts.Year, time.Month(parts.Month), 1, 0, 0, 0, 0, time.UTC)
		return media.DayNumberOf(first.AddDate(0, 1, -1)), nil
	}
	return media.DayNumberOf(first.AddDate(1, 0, -1)), nil
}

// parseTime accepts YYYY-MM-DD (local midnight, or the last instant of the
// day when end is set) or RFC 3339.
func parseTime(s string, end bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD or RFC 3339)", s)
	}
	if end {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
