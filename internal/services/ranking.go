package services

import (
	"slices"
	"trip-planner-service/internal/domain"
)

// Rank scores every candidate, orders them by descending score and keeps at
// most limit entries. A limit <= 0 keeps all of them.
//
// Equal scores keep their input order; callers should only rely on the
// result being non-increasing by score.
func Rank(
	candidates []domain.CandidateDestination,
	profile domain.PreferenceProfile,
	requester *domain.Coordinates,
	limit int,
) []domain.ScoredDestination {
	scored := make([]domain.ScoredDestination, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, domain.ScoredDestination{
			CandidateDestination: c,
			Score:                Score(c, profile, requester),
		})
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredDestination) int {
		return b.Score - a.Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return scored
}
