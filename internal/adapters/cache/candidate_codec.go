package cache

import (
	"fmt"
	"trip-planner-service/internal/domain"

	"github.com/goccy/go-json"
)

const keyPrefix = "candidates:"

// Wire shape for cached candidates.
type cachedCandidate struct {
	ID       string   `json:"xid"`
	Name     string   `json:"name"`
	Tags     string   `json:"kinds"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	Distance float64  `json:"dist"`
}

func encodeCandidates(in []domain.CandidateDestination) ([]byte, error) {
	out := make([]cachedCandidate, 0, len(in))
	for _, c := range in {
		cc := cachedCandidate{ID: c.ID, Name: c.Name, Tags: c.Tags, Distance: c.DistanceMeters}
		if c.Coordinates != nil {
			lat, lon := c.Coordinates.Lat, c.Coordinates.Lon
			cc.Lat, cc.Lon = &lat, &lon
		}
		out = append(out, cc)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode candidates: %w", err)
	}
	return b, nil
}

func decodeCandidates(b []byte) ([]domain.CandidateDestination, error) {
	var in []cachedCandidate
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	out := make([]domain.CandidateDestination, 0, len(in))
	for _, cc := range in {
		c := domain.CandidateDestination{ID: cc.ID, Name: cc.Name, Tags: cc.Tags, DistanceMeters: cc.Distance}
		if cc.Lat != nil && cc.Lon != nil {
			c.Coordinates = &domain.Coordinates{Lat: *cc.Lat, Lon: *cc.Lon}
		}
		out = append(out, c)
	}
	return out, nil
}

// CandidateKey builds the cache key for a candidate search. The center is
// rounded to three decimals (about 100 m) so nearby requests share entries.
func CandidateKey(center domain.Coordinates, radiusMeters, limit int) string {
	return fmt.Sprintf("%s%.3f:%.3f:%d:%d", keyPrefix, center.Lat, center.Lon, radiusMeters, limit)
}
