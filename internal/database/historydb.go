package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// FileName is the name of the database file inside the database directory.
const FileName = "arccms.db"

// HistoryDB provides SQLite-based storage for resolution history.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ErrNotFound is returned when the database file does not exist and
// CreateIfNotExists is false.
var ErrNotFound = errors.New("history database not found")

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist,
// ErrNotFound is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the path of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per resolved section per run
	CREATE TABLE IF NOT EXISTS resolutions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		section TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT NOT NULL,
		error TEXT,
		page_id INTEGER DEFAULT 0,
		matched TEXT,
		missing TEXT,
		view_model TEXT NOT NULL,
		duration_ms INTEGER DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_resolutions_section ON resolutions(section);
	CREATE INDEX IF NOT EXISTS idx_resolutions_timestamp ON resolutions(timestamp);

	-- One row per observed home page version
	CREATE TABLE IF NOT EXISTS page_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_id INTEGER NOT NULL,
		title TEXT,
		page_type TEXT,
		body_hash TEXT,
		block_counts TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_page ON page_snapshots(page_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Resolution is a stored section outcome.
type Resolution struct {
	ID        int64           `json:"id"`
	Section   string          `json:"section"`
	Status    resolver.Status `json:"status"`
	Reason    resolver.Reason `json:"reason"`
	Error     string          `json:"error,omitempty"`
	PageID    int             `json:"page_id,omitempty"`
	Matched   []string        `json:"matched,omitempty"`
	Missing   []string        `json:"missing,omitempty"`
	ViewModel json.RawMessage `json:"view_model,omitempty"`
	Duration  time.Duration   `json:"duration"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewResolution converts an outcome into a storable record.
func NewResolution(o resolver.Outcome) (*Resolution, error) {
	vm, err := json.Marshal(o.ViewModel)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize view model of %s: %w", o.Section, err)
	}
	return &Resolution{
		Section:   o.Section,
		Status:    o.Status,
		Reason:    o.Reason,
		Error:     o.Error,
		PageID:    o.PageID,
		Matched:   o.Matched,
		Missing:   o.Missing,
		ViewModel: vm,
		Duration:  o.Duration,
		Timestamp: o.ResolvedAt,
	}, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveResolution stores one resolution and returns its id.
func (hdb *HistoryDB) SaveResolution(ctx context.Context, r *Resolution) (int64, error) {
	return insertResolution(ctx, hdb.db, r)
}

// SaveOutcomes stores the outcomes of one run in a single transaction.
func (hdb *HistoryDB) SaveOutcomes(ctx context.Context, outcomes []resolver.Outcome) error {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after Commit

	for _, o := range outcomes {
		r, err := NewResolution(o)
		if err != nil {
			return err
		}
		if _, err := insertResolution(ctx, tx, r); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resolutions: %w", err)
	}
	return nil
}

func insertResolution(ctx context.Context, ex execer, r *Resolution) (int64, error) {
	matched, err := json.Marshal(r.Matched)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize matched blocks: %w", err)
	}
	missing, err := json.Marshal(r.Missing)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize missing blocks: %w", err)
	}

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
	INSERT INTO resolutions (section, status, reason, error, page_id, matched, missing, view_model, duration_ms, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := ex.ExecContext(ctx, query,
		r.Section,
		string(r.Status),
		string(r.Reason),
		r.Error,
		r.PageID,
		string(matched),
		string(missing),
		string(r.ViewModel),
		r.Duration.Milliseconds(),
		formatTimestamp(ts),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert resolution: %w", err)
	}
	return result.LastInsertId()
}

const resolutionColumns = `id, section, status, reason, error, page_id, matched, missing, view_model, duration_ms, timestamp`

// LatestResolutions returns the most recent resolution of every section,
// ordered by section name.
func (hdb *HistoryDB) LatestResolutions(ctx context.Context) ([]Resolution, error) {
	query := `
	SELECT ` + resolutionColumns + `
	FROM resolutions
	WHERE id IN (SELECT MAX(id) FROM resolutions GROUP BY section)
	ORDER BY section
	`
	return hdb.queryResolutions(ctx, query)
}

// SectionHistory returns the resolutions of a section, newest first.
// A non-positive limit returns the whole history.
func (hdb *HistoryDB) SectionHistory(ctx context.Context, section string, limit int) ([]Resolution, error) {
	query := `
	SELECT ` + resolutionColumns + `
	FROM resolutions
	WHERE section = ?
	ORDER BY id DESC
	`
	args := []any{section}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return hdb.queryResolutions(ctx, query, args...)
}

// ListSections returns the names of all recorded sections.
func (hdb *HistoryDB) ListSections(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx, `SELECT DISTINCT section FROM resolutions ORDER BY section`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []string
	for rows.Next() {
		var section string
		if err := rows.Scan(&section); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

func (hdb *HistoryDB) queryResolutions(ctx context.Context, query string, args ...any) ([]Resolution, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolutions: %w", err)
	}
	defer rows.Close()

	var results []Resolution
	for rows.Next() {
		var (
			r                Resolution
			status, reason   string
			errText          sql.NullString
			matched, missing sql.NullString
			viewModel        string
			durationMS       int64
			timestamp        string
		)
		if err := rows.Scan(&r.ID, &r.Section, &status, &reason, &errText, &r.PageID,
			&matched, &missing, &viewModel, &durationMS, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan resolution: %w", err)
		}

		r.Status = resolver.Status(status)
		r.Reason = resolver.Reason(reason)
		r.Error = errText.String
		r.ViewModel = json.RawMessage(viewModel)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Timestamp = parseTimestamp(timestamp)
		r.Matched = decodeStrings(matched)
		r.Missing = decodeStrings(missing)

		results = append(results, r)
	}
	return results, rows.Err()
}

// PageSnapshot records what the home page looked like at one point.
type PageSnapshot struct {
	ID          int64          `json:"id"`
	PageID      int            `json:"page_id"`
	Title       string         `json:"title"`
	PageType    string         `json:"page_type"`
	BodyHash    string         `json:"body_hash"`
	BlockCounts map[string]int `json:"block_counts"`
	Timestamp   time.Time      `json:"timestamp"`
}

// NewPageSnapshot summarises a page.
func NewPageSnapshot(page *model.Page) *PageSnapshot {
	if page == nil {
		return &PageSnapshot{BlockCounts: map[string]int{}}
	}
	return &PageSnapshot{
		PageID:      page.ID,
		Title:       page.Title,
		PageType:    page.Meta.Type,
		BodyHash:    page.BodyHash(),
		BlockCounts: resolver.CountByType(page.Body),
	}
}

// SavePageSnapshot stores a page snapshot and returns its id.
func (hdb *HistoryDB) SavePageSnapshot(ctx context.Context, s *PageSnapshot) (int64, error) {
	counts, err := json.Marshal(s.BlockCounts)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize block counts: %w", err)
	}

	ts := s.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
	INSERT INTO page_snapshots (page_id, title, page_type, body_hash, block_counts, timestamp)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := hdb.db.ExecContext(ctx, query,
		s.PageID, s.Title, s.PageType, s.BodyHash, string(counts), formatTimestamp(ts))
	if err != nil {
		return 0, fmt.Errorf("failed to insert page snapshot: %w", err)
	}
	return result.LastInsertId()
}

// LatestSnapshots returns up to limit page snapshots, newest first.
// A non-positive limit returns every snapshot.
func (hdb *HistoryDB) LatestSnapshots(ctx context.Context, limit int) ([]PageSnapshot, error) {
	query := `
	SELECT id, page_id, title, page_type, body_hash, block_counts, timestamp
	FROM page_snapshots
	ORDER BY id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query page snapshots: %w", err)
	}
	defer rows.Close()

	var results []PageSnapshot
	for rows.Next() {
		var (
			s                               PageSnapshot
			title, pageType, hash, countsJS sql.NullString
			timestamp                       string
		)
		if err := rows.Scan(&s.ID, &s.PageID, &title, &pageType, &hash, &countsJS, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan page snapshot: %w", err)
		}
		s.Title = title.String
		s.PageType = pageType.String
		s.BodyHash = hash.String
		s.Timestamp = parseTimestamp(timestamp)
		s.BlockCounts = make(map[string]int)
		if countsJS.Valid && countsJS.String != "" {
			if err := json.Unmarshal([]byte(countsJS.String), &s.BlockCounts); err != nil {
				s.BlockCounts = make(map[string]int)
			}
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

func decodeStrings(s sql.NullString) []string {
	if !s.Valid || s.String == "" || s.String == "null" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return nil
	}
	return out
}

// sqliteTimestamp is the layout timestamps are written with, in UTC.
const sqliteTimestamp = "2006-01-02 15:04:05.000"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(sqliteTimestamp)
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
