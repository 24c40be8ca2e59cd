package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kurehiro/gpt-oss"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ gptoss.SearchCache = (*CacheService)(nil)

// CacheService implements gptoss.SearchCache using SQLite. Expiry is
// enforced on read; Expire removes stale rows in bulk.
type CacheService struct {
	db  *DB
	ttl time.Duration
}

// NewCacheService creates a CacheService with the given TTL.
func NewCacheService(db *DB, ttl time.Duration) *CacheService {
	return &CacheService{db: db, ttl: ttl}
}

// Get returns the cached results for key. Expired entries are deleted and
// reported as a miss.
func (s *CacheService) Get(ctx context.Context, key string) ([]gptoss.SearchResult, bool, error) {
	var payload, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT results, created_at
		FROM search_cache
		WHERE key = ?
	`, key).Scan(&payload, &createdAt)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse created_at: %w", err)
	}

	if time.Since(created) >= s.ttl {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM search_cache WHERE key = ?`, key); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	var results []gptoss.SearchResult
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, false, fmt.Errorf("failed to parse cached results: %w", err)
	}
	return results, true, nil
}

// Put stores results under key, replacing any previous entry.
func (s *CacheService) Put(ctx context.Context, key string, results []gptoss.SearchResult) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO search_cache (id, key, results, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET results = excluded.results, created_at = excluded.created_at
	`, uuid.New().String(), key, string(payload), time.Now().UTC().Format(time.RFC3339))

	return err
}

// Expire removes all entries older than the TTL.
func (s *CacheService) Expire(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.ttl).Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `DELETE FROM search_cache WHERE created_at < ?`, cutoff)
	return err
}
