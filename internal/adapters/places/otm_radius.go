package places

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/goccy/go-json"
)

type radiusResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			XID   string  `json:"xid"`
			Name  string  `json:"name"`
			Kinds string  `json:"kinds"`
			Dist  float64 `json:"dist"`
		} `json:"properties"`
	} `json:"features"`
}

// FetchCandidates lists named places within radiusMeters of center
// (/0.1/en/places/radius, GeoJSON). Unnamed features are dropped.
func (c *OpenTripMapClient) FetchCandidates(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	limit int,
) (_ []domain.CandidateDestination, err error) {
	defer obs.Time(ctx, "otm.FetchCandidates")(&err)

	if radiusMeters <= 0 {
		return nil, fmt.Errorf("fetch candidates: radius must be positive, got %d", radiusMeters)
	}

	query := map[string]string{
		"radius": strconv.Itoa(radiusMeters),
		"lon":    strconv.FormatFloat(center.Lon, 'f', -1, 64),
		"lat":    strconv.FormatFloat(center.Lat, 'f', -1, 64),
		"format": "geojson",
	}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/0.1/en/places/radius", query)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	defer resp.Body.Close()

	var decoded radiusResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("fetch candidates: decode response: %w", err)
	}

	out := make([]domain.CandidateDestination, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		name := strings.TrimSpace(f.Properties.Name)
		if name == "" {
			continue
		}

		cand := domain.CandidateDestination{
			ID:             f.Properties.XID,
			Name:           name,
			Tags:           f.Properties.Kinds,
			DistanceMeters: f.Properties.Dist,
		}
		// GeoJSON order is [lon, lat].
		if coords := f.Geometry.Coordinates; len(coords) == 2 {
			cand.Coordinates = &domain.Coordinates{Lon: coords[0], Lat: coords[1]}
		}
		out = append(out, cand)
	}

	return out, nil
}
