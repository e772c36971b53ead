package services

import (
	"fmt"
	"os"
	"strings"
	"trip-planner-service/internal/domain"

	"github.com/goccy/go-json"
)

// DefaultFallbackDestinations is the static candidate set used when the live
// source is unavailable. It covers points of interest around Kochi, Kerala.
func DefaultFallbackDestinations() []domain.CandidateDestination {
	return []domain.CandidateDestination{
		fallback("Q1234567", "Periyar Tiger Reserve", "natural,park,nature,wildlife", 9.3723, 76.8148, 25000),
		fallback("Q1234568", "Chinese Fishing Nets", "historic,cultural,monument,landmark", 9.9673, 76.2411, 10000),
		fallback("Q1234569", "Kumarakom Bird Sanctuary", "natural,park,nature,birds", 9.6125, 76.4062, 15000),
		fallback("Q1234570", "Mattancherry Palace", "historic,museum,cultural,heritage", 9.9638, 76.2671, 8000),
		fallback("Q1234571", "Athirapally Falls", "natural,waterfall,nature,scenic", 10.2342, 76.5605, 35000),
		fallback("Q1234572", "Jew Town", "historic,cultural,market,heritage", 9.9638, 76.2671, 8500),
		fallback("Q1234573", "Bolgatty Palace", "historic,palace,cultural,heritage", 9.9712, 76.2354, 6000),
		fallback("Q1234574", "Munnar Tea Gardens", "natural,agricultural,scenic,nature", 10.0844, 76.7304, 60000),
	}
}

func fallback(id, name, tags string, lat, lon, dist float64) domain.CandidateDestination {
	return domain.CandidateDestination{
		ID:             id,
		Name:           name,
		Tags:           tags,
		Coordinates:    &domain.Coordinates{Lat: lat, Lon: lon},
		DistanceMeters: dist,
	}
}

type FallbackSeed struct {
	ID       string  `json:"xid"`
	Name     string  `json:"name"`
	Kinds    string  `json:"kinds"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance"`
}

// Load a fallback candidate set from a JSON array of FallbackSeed.
// Entries without a name are rejected; an empty file is an error since the
// fallback set must never be empty.
func LoadFallbackFromFile(path string) ([]domain.CandidateDestination, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fallback: read %q: %w", path, err)
	}

	var seeds []FallbackSeed
	if err := json.Unmarshal(b, &seeds); err != nil {
		return nil, fmt.Errorf("load fallback: parse json: %w", err)
	}

	out := make([]domain.CandidateDestination, 0, len(seeds))
	for i, s := range seeds {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("load fallback: item at index %d: name cannot be empty", i+1)
		}
		out = append(out, fallback(s.ID, name, s.Kinds, s.Lat, s.Lon, s.Distance))
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("load fallback: %q contains no destinations", path)
	}

	return out, nil
}
