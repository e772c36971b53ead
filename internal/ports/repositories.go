package ports

import (
	"context"
	"errors"
	"trip-planner-service/internal/domain"
)

// ErrNotFound is returned by repositories when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// Port: persisted preference profiles keyed by session.
type ProfileRepository interface {
	// Create or replace the profile stored for sessionKey.
	UpsertProfile(ctx context.Context, sessionKey string, profile domain.PreferenceProfile) error
	// Return the stored profile or ErrNotFound.
	GetProfile(ctx context.Context, sessionKey string) (*domain.SavedProfile, error)
}

// Port: saved trips.
type TripRepository interface {
	CreateTrip(ctx context.Context, trip *domain.Trip) (int64, error)
	// List trips for a session, newest first.
	ListTrips(ctx context.Context, sessionKey string) ([]*domain.Trip, error)
	// Delete a session's trip; ErrNotFound when no row matched.
	DeleteTrip(ctx context.Context, sessionKey string, id int64) error
}

// Port: favorite destinations.
type FavoriteRepository interface {
	// Add a favorite. Adding an existing (session, destination) pair is a no-op
	// that returns the existing row's id.
	AddFavorite(ctx context.Context, fav *domain.Favorite) (int64, error)
	ListFavorites(ctx context.Context, sessionKey string) ([]*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, sessionKey string, destinationID string) error
}
