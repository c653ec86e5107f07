package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/mediacat/internal/media"
	"github.com/runnerr0/mediacat/internal/rank"
)

// Store defines the interface for catalog data operations.
type Store interface {
	AddRecords(ctx context.Context, recs ...*media.Record) error
	GetRecord(ctx context.Context, id string) (*media.Record, error)
	Candidates(ctx context.Context, privacyThreshold int) ([]media.Record, error)
	DateGroup(ctx context.Context, date int) ([]media.Record, error)
	Reorder(ctx context.Context, date int, ids []string) error
	DeleteRecord(ctx context.Context, id string) error
	PruneDeleted(ctx context.Context) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

const recordColumns = `id, topic, title, location, people, tags, albums, date, date_text,
	precision, rank, file_type, extension, created_at, privacy_level, people_count, status`

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger

	// Prepared statements
	insertRecord *sql.Stmt
	getRecord    *sql.Stmt
	softDelete   *sql.Stmt
	insertAudit  *sql.Stmt
}

// StoreOption configures a SQLiteStore.
type StoreOption func(*SQLiteStore)

// WithLogger sets the logger rank assignments and reorders are written to.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *SQLiteStore) { s.logger = l }
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB, opts ...StoreOption) (*SQLiteStore, error) {
	s := &SQLiteStore{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertRecord, err = s.db.Prepare(`
		INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getRecord, err = s.db.Prepare(`SELECT ` + recordColumns + ` FROM records WHERE id = ?`)
	if err != nil {
		return err
	}

	s.softDelete, err = s.db.Prepare(`UPDATE records SET status = 'deleted' WHERE id = ? AND status = 'active'`)
	if err != nil {
		return err
	}

	s.insertAudit, err = s.db.Prepare(`INSERT INTO audit_log (action, detail, record_id) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// prepare validates r and fills the fields the store derives: the day
// number from the date text, the people count, the creation time and the
// status. Date components finer than the precision are zeroed.
func prepare(r *media.Record, now time.Time) error {
	if !r.Precision.Valid() {
		return fmt.Errorf("record %q: invalid precision %d", media.Value(r.Title), r.Precision)
	}
	parts, err := media.ParseDate(r.DateText)
	if err != nil {
		return fmt.Errorf("record %q: %w", media.Value(r.Title), err)
	}
	if _, err := media.ParseFileType(string(r.FileType)); err != nil {
		return fmt.Errorf("record %q: %w", media.Value(r.Title), err)
	}
	parts = parts.Truncate(r.Precision)
	r.DateText = parts.Text()
	r.Date = parts.DayNumber()
	if r.PeopleCount == 0 && r.People != nil {
		r.PeopleCount = media.PeopleCountOf(*r.People)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.Status == "" {
		r.Status = media.StatusActive
	}
	return nil
}

// AddRecords inserts recs in one transaction. Each record gets a new ID and
// the next free ranks of its date group, in argument order.
func (s *SQLiteStore) AddRecords(ctx context.Context, recs ...*media.Record) error {
	if len(recs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	byDate := make(map[int][]*media.Record)
	var dates []int
	for _, r := range recs {
		if err := prepare(r, now); err != nil {
			return err
		}
		if _, ok := byDate[r.Date]; !ok {
			dates = append(dates, r.Date)
		}
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	insert := tx.StmtContext(ctx, s.insertRecord)
	for _, date := range dates {
		group := byDate[date]

		var top sql.NullFloat64
		if err := tx.QueryRowContext(ctx, "SELECT MAX(rank) FROM records WHERE date = ?", date).Scan(&top); err != nil {
			return fmt.Errorf("read max rank: %w", err)
		}
		var existing []float64
		if top.Valid {
			existing = []float64{top.Float64}
		}
		ranks := rank.Assign(existing, len(group))

		for i, r := range group {
			r.ID = uuid.NewString()
			r.Rank = ranks[i]
			if _, err := insert.ExecContext(ctx, recordArgs(r)...); err != nil {
				return fmt.Errorf("insert record: %w", err)
			}
		}
		s.logger.Debug("ranks assigned",
			slog.Int("date", date),
			slog.Int("count", len(group)),
			slog.Float64("first", ranks[0]),
		)
	}

	if _, err := tx.StmtContext(ctx, s.insertAudit).ExecContext(ctx, "add", fmt.Sprintf("%d records", len(recs)), nil); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}

	return tx.Commit()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func recordArgs(r *media.Record) []any {
	return []any{
		r.ID, nullable(r.Topic), nullable(r.Title), nullable(r.Location),
		nullable(r.People), nullable(r.Tags), nullable(r.Albums),
		r.Date, r.DateText, int(r.Precision), r.Rank, string(r.FileType), r.Extension,
		r.CreatedAt.UTC().Format(time.RFC3339Nano), r.PrivacyLevel, r.PeopleCount, string(r.Status),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (media.Record, error) {
	var (
		r                                            media.Record
		topic, title, location, people, tags, albums sql.NullString
		precision                                    int
		fileType, status, createdAt                  string
	)
	err := row.Scan(
		&r.ID, &topic, &title, &location, &people, &tags, &albums,
		&r.Date, &r.DateText, &precision, &r.Rank, &fileType, &r.Extension,
		&createdAt, &r.PrivacyLevel, &r.PeopleCount, &status,
	)
	if err != nil {
		return media.Record{}, err
	}
	for _, f := range []struct {
		dst **string
		src sql.NullString
	}{
		{&r.Topic, topic}, {&r.Title, title}, {&r.Location, location},
		{&r.People, people}, {&r.Tags, tags}, {&r.Albums, albums},
	} {
		if f.src.Valid {
			*f.dst = media.Text(f.src.String)
		}
	}
	r.Precision = media.Precision(precision)
	r.FileType = media.FileType(fileType)
	r.Status = media.Status(status)
	r.CreatedAt, _ = parseTimestamp(createdAt)
	return r, nil
}

// GetRecord retrieves a single record by ID, deleted or not.
func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (*media.Record, error) {
	r, err := scanRecord(s.getRecord.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return &r, nil
}

// Candidates returns the active records the privacy threshold allows,
// ordered by date and rank. It is the input of a filter run.
func (s *SQLiteStore) Candidates(ctx context.Context, privacyThreshold int) ([]media.Record, error) {
	return s.scanRecords(ctx, `
		SELECT `+recordColumns+` FROM records
		WHERE status = 'active' AND privacy_level <= ?
		ORDER BY date, rank
	`, privacyThreshold)
}

// DateGroup returns the active records sharing date, in rank order.
func (s *SQLiteStore) DateGroup(ctx context.Context, date int) ([]media.Record, error) {
	return s.scanRecords(ctx, `
		SELECT `+recordColumns+` FROM records
		WHERE status = 'active' AND date = ?
		ORDER BY rank
	`, date)
}

// scanRecords executes a query and scans results into a Record slice.
func (s *SQLiteStore) scanRecords(ctx context.Context, query string, args ...any) ([]media.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []media.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Reorder overwrites the ranks of the active records dated date so that
// ids[i] gets rank i+1. ids must name every member of the group exactly
// once; otherwise nothing is written and the error wraps
// rank.ErrNotPermutation.
func (s *SQLiteStore) Reorder(ctx context.Context, date int, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	members, err := groupIDs(ctx, tx, date)
	if err != nil {
		return err
	}

	ranks, err := rank.Reorder(members, ids)
	if err != nil {
		return err
	}

	update, err := tx.PrepareContext(ctx, "UPDATE records SET rank = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("prepare rank update: %w", err)
	}
	defer update.Close()

	for _, id := range ids {
		if _, err := update.ExecContext(ctx, ranks[id], id); err != nil {
			return fmt.Errorf("update rank of %s: %w", id, err)
		}
	}

	if _, err := tx.StmtContext(ctx, s.insertAudit).ExecContext(ctx, "reorder", strings.Join(ids, ","), nil); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug("date group reordered", slog.Int("date", date), slog.Int("count", len(ids)))
	return nil
}

func groupIDs(ctx context.Context, tx *sql.Tx, date int) ([]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id FROM records WHERE status = 'active' AND date = ? ORDER BY rank", date)
	if err != nil {
		return nil, fmt.Errorf("read date group: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteRecord marks a record deleted. It disappears from Candidates and
// DateGroup but stays in the database until PruneDeleted.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.softDelete.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if _, err := s.insertAudit.ExecContext(ctx, "delete", "", id); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// PruneDeleted physically removes every soft-deleted record.
func (s *SQLiteStore) PruneDeleted(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE status = 'deleted'")
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := s.insertAudit.ExecContext(ctx, "prune", fmt.Sprintf("%d records", n), nil); err != nil {
		return n, fmt.Errorf("write audit log: %w", err)
	}
	return n, nil
}

// PurgeAll deletes all records and the audit log.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM records",
		"DELETE FROM audit_log",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// AuditLog returns the most recent audit entries, newest first.
func (s *SQLiteStore) AuditLog(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT action, detail, COALESCE(record_id, '') FROM audit_log ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.Action, &e.Detail, &e.RecordID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'deleted' THEN 1 ELSE 0 END), 0)
		FROM records`,
	).Scan(&stats.TotalRecords, &stats.ActiveRecords, &stats.DeletedRecords)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.ActiveRecords > 0 {
		for _, q := range []struct {
			dst   *string
			order string
		}{
			{&stats.OldestDate, "ASC"},
			{&stats.NewestDate, "DESC"},
		} {
			err := s.db.QueryRowContext(ctx,
				"SELECT date_text FROM records WHERE status = 'active' ORDER BY date "+q.order+", rank LIMIT 1",
			).Scan(q.dst)
			if err != nil {
				return nil, fmt.Errorf("record date range: %w", err)
			}
		}
	}

	byType, err := s.countByType(ctx)
	if err != nil {
		return nil, err
	}
	stats.ByType = byType

	albums, err := s.topAlbums(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopAlbums = albums

	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err == nil {
			stats.DatabaseSizeBytes = pageCount * pageSize
		}
	}

	return stats, nil
}

func (s *SQLiteStore) countByType(ctx context.Context) ([]TypeCount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT file_type, COUNT(*) AS cnt FROM records WHERE status = 'active' GROUP BY file_type ORDER BY cnt DESC, file_type",
	)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	defer rows.Close()

	var out []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.FileType, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// topAlbums counts album tags across active records. Albums are stored
// comma-joined, so the split happens here rather than in SQL.
func (s *SQLiteStore) topAlbums(ctx context.Context, limit int) ([]AlbumCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT albums FROM records WHERE status = 'active' AND albums IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("top albums: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var albums string
		if err := rows.Scan(&albums); err != nil {
			return nil, err
		}
		for _, a := range strings.Split(albums, ",") {
			if a = strings.TrimSpace(a); a != "" {
				counts[a]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]AlbumCount, 0, len(counts))
	for a, n := range counts {
		out = append(out, AlbumCount{Album: a, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Album < out[j].Album
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.insertRecord, s.getRecord, s.softDelete, s.insertAudit}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
