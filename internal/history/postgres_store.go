package history

import (
	"context"
	"errors"
	"fmt"
	"probpick/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	codeUniqueConstraint = "23505"

	postgresSchema = `
CREATE TABLE IF NOT EXISTS selected_problems (
	seq BIGSERIAL PRIMARY KEY,
	problem_id INTEGER NOT NULL UNIQUE,
	title TEXT NOT NULL,
	tier TEXT NOT NULL,
	selected_at TIMESTAMPTZ NOT NULL,
	url TEXT NOT NULL
)`
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, &models.PersistenceError{Op: "open", Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &models.PersistenceError{Op: "open", Err: err}
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, &models.PersistenceError{Op: "migrate", Err: err}
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (*models.SelectionHistory, error) {
	rows, err := s.pool.Query(ctx, `SELECT problem_id, title, tier, selected_at, url FROM selected_problems ORDER BY seq`)
	if err != nil {
		return nil, &models.PersistenceError{Op: "read", Err: err}
	}
	defer rows.Close()

	h := models.NewSelectionHistory()
	for rows.Next() {
		var rec models.SelectionRecord
		if err := rows.Scan(&rec.ProblemID, &rec.Title, &rec.Tier, &rec.SelectedAt, &rec.URL); err != nil {
			return nil, &models.PersistenceError{Op: "read", Err: err}
		}
		h.Problems = append(h.Problems, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Op: "read", Err: err}
	}
	return h, nil
}

func (s *PostgresStore) Append(ctx context.Context, record models.SelectionRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO selected_problems (problem_id, title, tier, selected_at, url) VALUES ($1, $2, $3, $4, $5)`,
		record.ProblemID, record.Title, record.Tier, record.SelectedAt, record.URL,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueConstraint {
			err = fmt.Errorf("%w, problem %d", models.ErrAlreadySelected, record.ProblemID)
		}
		return &models.PersistenceError{Op: "append", Err: err}
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM selected_problems`)
	if err != nil {
		return 0, &models.PersistenceError{Op: "clear", Err: err}
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
