package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type SearchHistoryStore struct {
	db        *sqlx.DB
	txManager *TransactionManager
}

func NewSearchHistoryStore(db *sqlx.DB) *SearchHistoryStore {
	return &SearchHistoryStore{
		db:        db,
		txManager: NewTransactionManager(db),
	}
}

// Load returns the stored queries, most recent first.
func (s *SearchHistoryStore) Load(ctx context.Context) ([]string, error) {
	queries := []string{}
	err := s.db.SelectContext(ctx, &queries, `SELECT query FROM search_history ORDER BY position`)
	if err != nil {
		return nil, err
	}
	return queries, nil
}

// Save replaces the stored history with queries in a single transaction.
func (s *SearchHistoryStore) Save(ctx context.Context, queries []string) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		if _, err := exec.ExecContext(txCtx, `DELETE FROM search_history`); err != nil {
			return fmt.Errorf("clear search history: %w", err)
		}

		if len(queries) == 0 {
			return nil
		}

		positions := make([]int64, len(queries))
		for i := range queries {
			positions[i] = int64(i)
		}

		query := `
			INSERT INTO search_history (position, query)
			SELECT * FROM unnest($1::int[], $2::text[])`

		if _, err := exec.ExecContext(txCtx, query, pq.Array(positions), pq.Array(queries)); err != nil {
			return fmt.Errorf("insert search history: %w", err)
		}
		return nil
	})
}
