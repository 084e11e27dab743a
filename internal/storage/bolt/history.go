// Package bolt keeps the search history in a local bbolt file.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	historyBucket = []byte("search_history")
	queriesKey    = []byte("queries")
)

type SearchHistoryStore struct {
	db *bolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*SearchHistoryStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &SearchHistoryStore{db: db}, nil
}

func (s *SearchHistoryStore) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queries := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(historyBucket).Get(queriesKey)
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &queries)
	})
	if err != nil {
		return nil, fmt.Errorf("read search history: %w", err)
	}
	return queries, nil
}

func (s *SearchHistoryStore) Save(ctx context.Context, queries []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if queries == nil {
		queries = []string{}
	}
	raw, err := json.Marshal(queries)
	if err != nil {
		return fmt.Errorf("marshal search history: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(historyBucket).Put(queriesKey, raw)
	})
}

func (s *SearchHistoryStore) Close() error {
	return s.db.Close()
}
