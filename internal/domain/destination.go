package domain

// A point of interest pending scoring. Records are produced per request by a
// candidate source and are never persisted.
//
// Tags is the source's free-text category descriptor (e.g. "natural,park").
// Coordinates may be nil; scoring degrades gracefully in that case.
// DistanceMeters is the distance reported by the source, passed through as-is.
type CandidateDestination struct {
	ID             string
	Name           string
	Tags           string
	Coordinates    *Coordinates
	DistanceMeters float64
}

// A candidate together with its suitability score in [0, 100].
type ScoredDestination struct {
	CandidateDestination
	Score int
}

// Detailed information about a single destination.
type DestinationDetails struct {
	ID          string            `json:"xid"`
	Name        string            `json:"name"`
	Kinds       string            `json:"kinds"`
	Rate        string            `json:"rate,omitempty"`
	Wikipedia   string            `json:"wikipedia,omitempty"`
	Image       string            `json:"image,omitempty"`
	Description string            `json:"description,omitempty"`
	Address     map[string]string `json:"address,omitempty"`
	Point       *Coordinates      `json:"point,omitempty"`
}

// Current weather conditions at a destination.
type Weather struct {
	TempC       float64 `json:"temp_c"`
	FeelsLikeC  float64 `json:"feels_like_c"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon,omitempty"`
}
