package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/mediacat/internal/config"
	"github.com/runnerr0/mediacat/internal/logging"
	"github.com/runnerr0/mediacat/internal/media"
	"github.com/runnerr0/mediacat/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestEnv returns an env over a migrated in-memory store and the
// default config.
func newTestEnv(t *testing.T) *env {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.DriverCGO, ":memory:", "")
	require.NoError(t, err)

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)

	rt := &env{
		cfg:    config.DefaultConfig(),
		logger: logging.Discard(),
		db:     db,
		store:  store,
		dbPath: ":memory:",
	}
	t.Cleanup(rt.close)
	return rt
}

type seed struct {
	title, date, location, people, albums string
	fileType                              media.FileType
	privacy                               int
}

// seedRecords adds one record per seed, in order, and returns their IDs.
func seedRecords(t *testing.T, rt *env, seeds ...seed) []string {
	t.Helper()
	ids := make([]string, len(seeds))
	for i, s := range seeds {
		parts, p, err := media.ParseLooseDate(s.date)
		require.NoError(t, err)
		r := &media.Record{
			Title:        media.Text(s.title),
			DateText:     parts.Text(),
			Precision:    p,
			FileType:     media.FileImage,
			Extension:    ".jpg",
			PrivacyLevel: s.privacy,
		}
		if s.fileType != "" {
			r.FileType = s.fileType
		}
		if s.location != "" {
			r.Location = media.Text(s.location)
		}
		if s.people != "" {
			r.People = media.Text(s.people)
		}
		if s.albums != "" {
			r.Albums = media.Text(s.albums)
		}
		require.NoError(t, rt.store.AddRecords(context.Background(), r))
		ids[i] = r.ID
	}
	return ids
}
