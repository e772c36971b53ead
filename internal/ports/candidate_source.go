package ports

import (
	"context"
	"time"
	"trip-planner-service/internal/domain"
)

// Contract for retrieving candidate destinations around a center point.
type CandidateSource interface {
	// Return named points of interest within radiusMeters of center.
	// Implementations may fail (network, HTTP status, timeout); callers
	// treat any error as "source unavailable".
	FetchCandidates(ctx context.Context, center domain.Coordinates, radiusMeters int, limit int) ([]domain.CandidateDestination, error)
}

// Optional key/value cache for candidate lists.
type CandidateCache interface {
	Get(ctx context.Context, key string) ([]domain.CandidateDestination, bool, error)
	Set(ctx context.Context, key string, candidates []domain.CandidateDestination, ttl time.Duration) error
}
