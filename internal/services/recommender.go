package services

import (
	"context"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/metrics"
	"trip-planner-service/internal/ports"
)

const (
	SourceLive     = "live"
	SourceFallback = "fallback"

	DefaultLiveLimit     = 20
	DefaultFallbackLimit = 15
	DefaultFetchLimit    = 100
)

// Search radius in meters per distance preference.
var searchRadius = map[domain.DistancePreference]int{
	domain.DistanceNearby:   20000,
	domain.DistanceModerate: 100000,
	domain.DistanceFar:      300000,
}

// SearchRadiusMeters returns the live search radius for a distance preference.
func SearchRadiusMeters(pref domain.DistancePreference) int {
	if r, ok := searchRadius[pref]; ok {
		return r
	}
	return searchRadius[domain.DistanceModerate]
}

type RecommendRequest struct {
	Profile domain.PreferenceProfile
	// Requester is the visitor's location; it centers the live search and
	// drives the distance component of the score.
	Requester domain.Coordinates
}

type RecommendResult struct {
	Recommendations []domain.ScoredDestination
	// Source is SourceLive or SourceFallback.
	Source string
	// FallbackReason is set when Source is SourceFallback.
	FallbackReason string
}

// Recommender ranks live candidates and degrades to a static set when the
// live source fails or yields nothing usable.
type Recommender struct {
	Source   ports.CandidateSource
	Fallback []domain.CandidateDestination

	LiveLimit     int
	FallbackLimit int
	FetchLimit    int
}

func NewRecommender(source ports.CandidateSource, fallback []domain.CandidateDestination) *Recommender {
	if len(fallback) == 0 {
		fallback = DefaultFallbackDestinations()
	}
	return &Recommender{
		Source:        source,
		Fallback:      fallback,
		LiveLimit:     DefaultLiveLimit,
		FallbackLimit: DefaultFallbackLimit,
		FetchLimit:    DefaultFetchLimit,
	}
}

// Recommend never fails because of the live source; an error is returned only
// for an invalid profile or a cancelled context.
func (r *Recommender) Recommend(ctx context.Context, req RecommendRequest) (RecommendResult, error) {
	if err := req.Profile.Validate(); err != nil {
		return RecommendResult{}, fmt.Errorf("recommend: %w", err)
	}

	requester := req.Requester
	radius := SearchRadiusMeters(req.Profile.Distance)

	reason := "no live source configured"
	if r.Source != nil {
		candidates, err := r.Source.FetchCandidates(ctx, requester, radius, r.FetchLimit)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return RecommendResult{}, fmt.Errorf("recommend: %w", ctxErr)
			}
			reason = err.Error()
		default:
			candidates = usable(candidates)
			if len(candidates) > 0 {
				recs := Rank(candidates, req.Profile, &requester, r.LiveLimit)
				metrics.RecommendationsTotal.WithLabelValues(SourceLive).Inc()
				logging.Ctx(ctx).Debug().
					Int("candidates", len(candidates)).
					Int("returned", len(recs)).
					Int("radius_m", radius).
					Msg("ranked live candidates")
				return RecommendResult{Recommendations: recs, Source: SourceLive}, nil
			}
			reason = "live source returned no usable candidates"
		}
	}

	fallback := r.Fallback
	if len(fallback) == 0 {
		fallback = DefaultFallbackDestinations()
	}
	recs := Rank(fallback, req.Profile, &requester, r.FallbackLimit)

	metrics.RecommendationsTotal.WithLabelValues(SourceFallback).Inc()
	logging.Ctx(ctx).Warn().
		Str("reason", reason).
		Int("returned", len(recs)).
		Msg("using fallback destinations")

	return RecommendResult{Recommendations: recs, Source: SourceFallback, FallbackReason: reason}, nil
}

func usable(in []domain.CandidateDestination) []domain.CandidateDestination {
	out := in[:0:0]
	for _, c := range in {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
