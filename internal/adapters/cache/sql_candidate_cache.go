package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
)

// SQLCandidateCache is a SQL-backed candidate cache for deployments without
// Redis. Expired rows are ignored on read and overwritten on write.
type SQLCandidateCache struct {
	DB      *sql.DB
	Dialect db.Dialect
	now     func() time.Time
}

func NewSQLCandidateCache(conn *sql.DB, dialect db.Dialect) *SQLCandidateCache {
	return &SQLCandidateCache{DB: conn, Dialect: dialect, now: time.Now}
}

func (s *SQLCandidateCache) Get(ctx context.Context, key string) (_ []domain.CandidateDestination, _ bool, err error) {
	defer obs.TimeStore(ctx, "candidates.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("candidate cache: db is nil")
	}

	q := db.Rebind(s.Dialect, `
	SELECT payload
	FROM candidate_cache
	WHERE cache_key = ? AND expires_at > ?;
	`)

	var payload string
	err = s.DB.QueryRowContext(ctx, q, key, s.now().UTC()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get candidate cache: query candidate_cache table: %w", err)
	}

	out, err := decodeCandidates([]byte(payload))
	if err != nil {
		return nil, false, fmt.Errorf("get candidate cache: %w", err)
	}
	return out, true, nil
}

func (s *SQLCandidateCache) Set(ctx context.Context, key string, candidates []domain.CandidateDestination, ttl time.Duration) (err error) {
	defer obs.TimeStore(ctx, "candidates.cache.sql.Set")(&err)

	if s.DB == nil {
		return errors.New("candidate cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("insert candidate cache: empty key")
	}

	b, err := encodeCandidates(candidates)
	if err != nil {
		return err
	}

	q := db.Rebind(s.Dialect, `
	INSERT INTO candidate_cache (cache_key, payload, expires_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = excluded.payload,
		expires_at = excluded.expires_at;
	`)

	if _, err := s.DB.ExecContext(ctx, q, key, string(b), s.now().UTC().Add(ttl)); err != nil {
		return fmt.Errorf("insert candidate cache key=%q: %w", key, err)
	}

	return nil
}

// PurgeExpired deletes expired entries and returns how many were removed.
func (s *SQLCandidateCache) PurgeExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("candidate cache: db is nil")
	}

	q := db.Rebind(s.Dialect, `DELETE FROM candidate_cache WHERE expires_at <= ?;`)
	res, err := s.DB.ExecContext(ctx, q, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge candidate cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge candidate cache: rows affected: %w", err)
	}
	return n, nil
}
