package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"stageai/api/internal/models"
)

type PostgresHistoryStore struct {
	pool *pgxpool.Pool
}

func NewPostgresHistoryStore(pool *pgxpool.Pool) *PostgresHistoryStore {
	return &PostgresHistoryStore{pool: pool}
}

func (r *PostgresHistoryStore) Append(ctx context.Context, entry models.HistoryEntry) error {
	const query = `
		INSERT INTO history_entries (
			id, username, kind, prompt, result, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Username,
		entry.Kind,
		entry.Prompt,
		entry.Result,
		entry.CreatedAt,
	)
	return err
}

func (r *PostgresHistoryStore) ListByUser(ctx context.Context, username string) ([]models.HistoryEntry, error) {
	// ksuid ids break the tie when two entries share a timestamp.
	const query = `
		SELECT id, username, kind, prompt, result, created_at
		FROM history_entries
		WHERE username = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Username,
			&entry.Kind,
			&entry.Prompt,
			&entry.Result,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
