package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for looking up a single destination by its source identifier.
type DetailsProvider interface {
	FetchDetails(ctx context.Context, id string) (*domain.DestinationDetails, error)
}

// Contract for current weather at a location.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, at domain.Coordinates) (*domain.Weather, error)
}
