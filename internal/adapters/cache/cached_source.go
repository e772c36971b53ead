package cache

import (
	"context"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/metrics"
	"trip-planner-service/internal/ports"
)

const DefaultTTL = 10 * time.Minute

// CachedCandidateSource serves candidate searches from a cache and fills it
// from the wrapped source on a miss. Cache failures are logged and bypassed;
// source errors and empty results are never cached.
type CachedCandidateSource struct {
	Source ports.CandidateSource
	Cache  ports.CandidateCache
	TTL    time.Duration
}

func NewCachedCandidateSource(source ports.CandidateSource, c ports.CandidateCache, ttl time.Duration) *CachedCandidateSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedCandidateSource{Source: source, Cache: c, TTL: ttl}
}

func (s *CachedCandidateSource) FetchCandidates(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	limit int,
) ([]domain.CandidateDestination, error) {
	key := CandidateKey(center, radiusMeters, limit)

	hits, ok, err := s.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CandidateCacheResults.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("candidate cache read failed")
	case ok:
		metrics.CandidateCacheResults.WithLabelValues("hit").Inc()
		return hits, nil
	default:
		metrics.CandidateCacheResults.WithLabelValues("miss").Inc()
	}

	fresh, err := s.Source.FetchCandidates(ctx, center, radiusMeters, limit)
	if err != nil {
		return nil, err
	}

	if len(fresh) > 0 {
		if err := s.Cache.Set(ctx, key, fresh, s.TTL); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("candidate cache write failed")
		}
	}

	return fresh, nil
}
