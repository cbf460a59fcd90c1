package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"probpick/internal/models"
	"time"

	"github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS selected_problems (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	problem_id INTEGER NOT NULL UNIQUE,
	title TEXT NOT NULL,
	tier TEXT NOT NULL,
	selected_at TEXT NOT NULL,
	url TEXT NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &models.PersistenceError{Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, &models.PersistenceError{Op: "open", Err: err}
	}
	// a single connection keeps read-modify-write sequences ordered
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, &models.PersistenceError{Op: "migrate", Err: err}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.SelectionHistory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT problem_id, title, tier, selected_at, url FROM selected_problems ORDER BY seq`)
	if err != nil {
		return nil, &models.PersistenceError{Op: "read", Err: err}
	}
	defer rows.Close()

	h := models.NewSelectionHistory()
	for rows.Next() {
		var (
			rec        models.SelectionRecord
			selectedAt string
		)
		if err := rows.Scan(&rec.ProblemID, &rec.Title, &rec.Tier, &selectedAt, &rec.URL); err != nil {
			return nil, &models.PersistenceError{Op: "read", Err: err}
		}
		rec.SelectedAt, err = time.Parse(time.RFC3339Nano, selectedAt)
		if err != nil {
			return nil, &models.PersistenceError{Op: "decode", Err: fmt.Errorf("problem %d: %w", rec.ProblemID, err)}
		}
		h.Problems = append(h.Problems, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Op: "read", Err: err}
	}
	return h, nil
}

func (s *SQLiteStore) Append(ctx context.Context, record models.SelectionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO selected_problems (problem_id, title, tier, selected_at, url) VALUES (?, ?, ?, ?, ?)`,
		record.ProblemID, record.Title, record.Tier, record.SelectedAt.UTC().Format(time.RFC3339Nano), record.URL,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			err = fmt.Errorf("%w, problem %d", models.ErrAlreadySelected, record.ProblemID)
		}
		return &models.PersistenceError{Op: "append", Err: err}
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM selected_problems`)
	if err != nil {
		return 0, &models.PersistenceError{Op: "clear", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &models.PersistenceError{Op: "clear", Err: err}
	}
	return int(n), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
