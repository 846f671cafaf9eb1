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

	"github.com/nao1215/deckkit/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "deckkit.db"

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// HistoryDB stores extraction results.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if needed.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run an extraction with --save first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
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

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		format TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		output_folder TEXT,
		embedded_count INTEGER NOT NULL DEFAULT 0,
		referenced_count INTEGER NOT NULL DEFAULT 0,
		system_count INTEGER NOT NULL DEFAULT 0,
		commercial_count INTEGER NOT NULL DEFAULT 0,
		free_count INTEGER NOT NULL DEFAULT 0,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

	CREATE TABLE IF NOT EXISTS embedded_fonts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		file_name TEXT NOT NULL,
		family TEXT,
		sha3 TEXT NOT NULL,
		size INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_fonts_sha3 ON embedded_fonts(sha3);
	CREATE INDEX IF NOT EXISTS idx_fonts_run ON embedded_fonts(run_id);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID           int64     `json:"id"`
	Source       string    `json:"source"`
	Format       string    `json:"format"`
	CreatedAt    time.Time `json:"created_at"`
	OutputFolder string    `json:"output_folder"`
	Embedded     int       `json:"embedded"`
	Referenced   int       `json:"referenced"`
	System       int       `json:"system"`
	Commercial   int       `json:"commercial"`
	Free         int       `json:"free"`
}

// SaveResult stores res and its embedded fonts in one transaction and
// returns the run ID.
func (h *HistoryDB) SaveResult(ctx context.Context, res *model.ExtractionResult) (id int64, err error) {
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize result: %w", err)
	}

	created := res.ExtractedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
	INSERT INTO runs (source, format, created_at, output_folder, embedded_count,
		referenced_count, system_count, commercial_count, free_count, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	r, err := tx.ExecContext(ctx, query,
		res.Source,
		string(res.Format),
		created.UTC().Format(time.RFC3339),
		res.OutputFolder,
		len(res.EmbeddedFonts),
		len(res.ReferencedFonts),
		len(res.SystemFonts),
		len(res.CommercialFonts),
		len(res.FreeFonts),
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	id, err = r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, f := range res.EmbeddedDetails {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO embedded_fonts (run_id, file_name, family, sha3, size) VALUES (?, ?, ?, ?, ?)`,
			id, f.FileName, f.Family, f.SHA3, f.Size,
		); err != nil {
			return 0, fmt.Errorf("failed to save embedded font: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (h *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT id, source, format, created_at, output_folder, embedded_count,
		referenced_count, system_count, commercial_count, free_count
	FROM runs
	ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var s RunSummary
		var created string
		var folder sql.NullString
		if err := rows.Scan(&s.ID, &s.Source, &s.Format, &created, &folder, &s.Embedded,
			&s.Referenced, &s.System, &s.Commercial, &s.Free); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		s.CreatedAt = parseTimestamp(created)
		s.OutputFolder = folder.String
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// GetRun returns the stored result of a run.
func (h *HistoryDB) GetRun(ctx context.Context, id int64) (*model.ExtractionResult, error) {
	var resultJSON string
	err := h.db.QueryRowContext(ctx, `SELECT result_json FROM runs WHERE id = ?`, id).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var res model.ExtractionResult
	if err := json.Unmarshal([]byte(resultJSON), &res); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}
	return &res, nil
}

// DeleteRun removes a run and its embedded font rows.
func (h *HistoryDB) DeleteRun(ctx context.Context, id int64) error {
	r, err := h.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := r.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return nil
}

// FontSighting is one occurrence of an embedded font file in a run.
type FontSighting struct {
	RunID    int64  `json:"run_id"`
	Source   string `json:"source"`
	FileName string `json:"file_name"`
	Family   string `json:"family"`
	Size     int64  `json:"size"`
}

// FindFont returns every run that embedded a font with the given digest,
// oldest first.
func (h *HistoryDB) FindFont(ctx context.Context, sha3 string) ([]FontSighting, error) {
	query := `
	SELECT f.run_id, r.source, f.file_name, f.family, f.size
	FROM embedded_fonts f
	JOIN runs r ON r.id = f.run_id
	WHERE f.sha3 = ?
	ORDER BY f.run_id, f.id
	`
	rows, err := h.db.QueryContext(ctx, query, sha3)
	if err != nil {
		return nil, fmt.Errorf("failed to query fonts: %w", err)
	}
	defer rows.Close()

	out := []FontSighting{}
	for rows.Next() {
		var s FontSighting
		var family sql.NullString
		var size sql.NullInt64
		if err := rows.Scan(&s.RunID, &s.Source, &s.FileName, &family, &size); err != nil {
			return nil, fmt.Errorf("failed to scan font: %w", err)
		}
		s.Family = family.String
		s.Size = size.Int64
		out = append(out, s)
	}
	return out, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// More specific formats come first.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp tries each known format and returns the zero time when
// none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
