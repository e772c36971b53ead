package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/ports"
)

// ErrInvalidInput marks request data rejected by the service layer.
var ErrInvalidInput = errors.New("invalid input")

type SaveTripRequest struct {
	SessionKey      string
	DestinationID   string
	DestinationName string
	Location        domain.Coordinates
	Kinds           string
	Description     string
	Notes           string
	Rating          *float64
	TripDate        *time.Time
}

// SaveTrip stores a destination in the session's trip list.
// The first comma-separated kind becomes the trip category.
func SaveTrip(ctx context.Context, req SaveTripRequest, repo ports.TripRepository) (int64, error) {
	name := strings.TrimSpace(req.DestinationName)
	if name == "" {
		return 0, fmt.Errorf("save trip: name is required: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(req.SessionKey) == "" {
		return 0, fmt.Errorf("save trip: session is required: %w", ErrInvalidInput)
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return 0, fmt.Errorf("save trip: rating %.1f out of range: %w", *req.Rating, ErrInvalidInput)
	}

	trip := &domain.Trip{
		SessionKey:      req.SessionKey,
		DestinationID:   strings.TrimSpace(req.DestinationID),
		DestinationName: name,
		Location:        req.Location,
		Description:     req.Description,
		Category:        firstKind(req.Kinds),
		Rating:          req.Rating,
		TripDate:        req.TripDate,
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}

	id, err := repo.CreateTrip(ctx, trip)
	if err != nil {
		return 0, fmt.Errorf("save trip: %w", err)
	}

	logging.Ctx(ctx).Info().Int64("trip_id", id).Str("xid", trip.DestinationID).Msg("trip saved")
	return id, nil
}

func firstKind(kinds string) string {
	first, _, _ := strings.Cut(kinds, ",")
	return strings.TrimSpace(first)
}

// AddFavorite marks a destination as a favorite. Repeated calls for the same
// destination return the original favorite's id.
func AddFavorite(ctx context.Context, fav domain.Favorite, repo ports.FavoriteRepository) (int64, error) {
	fav.DestinationID = strings.TrimSpace(fav.DestinationID)
	fav.DestinationName = strings.TrimSpace(fav.DestinationName)
	if fav.DestinationID == "" {
		return 0, fmt.Errorf("add favorite: xid is required: %w", ErrInvalidInput)
	}
	if fav.DestinationName == "" {
		return 0, fmt.Errorf("add favorite: name is required: %w", ErrInvalidInput)
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now().UTC()
	}

	id, err := repo.AddFavorite(ctx, &fav)
	if err != nil {
		return 0, fmt.Errorf("add favorite: %w", err)
	}
	return id, nil
}

// LoadProfile returns the session's saved profile, or the default profile
// with saved=false when none exists yet.
func LoadProfile(ctx context.Context, sessionKey string, repo ports.ProfileRepository) (profile domain.PreferenceProfile, saved bool, err error) {
	sp, err := repo.GetProfile(ctx, sessionKey)
	if errors.Is(err, ports.ErrNotFound) {
		return domain.DefaultProfile(), false, nil
	}
	if err != nil {
		return domain.PreferenceProfile{}, false, fmt.Errorf("load profile: %w", err)
	}
	return sp.Profile, true, nil
}

// DestinationInsight is a destination's details plus current weather when known.
type DestinationInsight struct {
	Details *domain.DestinationDetails
	Weather *domain.Weather
}

// GetDestinationInsight looks up a destination and, when a weather provider
// is configured and the destination has a location, its current weather.
// Weather is best effort; its failure never fails the lookup.
func GetDestinationInsight(
	ctx context.Context,
	id string,
	details ports.DetailsProvider,
	weather ports.WeatherProvider,
) (DestinationInsight, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DestinationInsight{}, fmt.Errorf("destination insight: xid is required: %w", ErrInvalidInput)
	}

	d, err := details.FetchDetails(ctx, id)
	if err != nil {
		return DestinationInsight{}, fmt.Errorf("destination insight: fetch %q: %w", id, err)
	}

	out := DestinationInsight{Details: d}
	if weather == nil || d.Point == nil {
		return out, nil
	}

	w, err := weather.CurrentWeather(ctx, *d.Point)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("xid", id).Msg("weather lookup failed")
		return out, nil
	}
	out.Weather = w

	return out, nil
}
