package domain

import "time"

// Represents a destination a visitor saved as a trip.
// Trips are owned by an anonymous session and listed newest first.
type Trip struct {
	ID              int64
	SessionKey      string
	DestinationID   string
	DestinationName string
	Location        Coordinates
	Description     string
	Category        string
	Rating          *float64
	TripDate        *time.Time
	Notes           string
	CreatedAt       time.Time
}

// Represents a favorited destination. A session holds at most one
// favorite per destination id.
type Favorite struct {
	ID              int64
	SessionKey      string
	DestinationID   string
	DestinationName string
	Location        Coordinates
	CreatedAt       time.Time
}

// ItineraryStop is one saved trip in visiting order.
type ItineraryStop struct {
	Trip         *Trip
	LegKm        float64
	CumulativeKm float64
}

type Itinerary struct {
	Start         Coordinates
	Stops         []ItineraryStop
	TotalKm       float64
	ReturnToStart bool
}
