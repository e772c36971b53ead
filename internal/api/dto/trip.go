package dto

type SaveTripRequest struct {
	XID         string   `json:"xid" validate:"max=100"`
	Name        string   `json:"name" validate:"required,max=255"`
	Lat         *float64 `json:"lat" validate:"required,latitude"`
	Lon         *float64 `json:"lon" validate:"required,longitude"`
	Kinds       string   `json:"kinds" validate:"max=500"`
	Description string   `json:"description" validate:"max=5000"`
	Notes       string   `json:"notes" validate:"max=5000"`
	// TripDate is YYYY-MM-DD.
	TripDate string   `json:"trip_date" validate:"omitempty,datetime=2006-01-02"`
	Rating   *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

type SaveTripResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TripID  int64  `json:"trip_id"`
}

type TripResponse struct {
	ID          int64    `json:"id"`
	XID         string   `json:"xid"`
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Notes       string   `json:"notes"`
	Rating      *float64 `json:"rating"`
	TripDate    *string  `json:"trip_date"`
	CreatedAt   string   `json:"created_at"`
}

type ListTripsResponse struct {
	Success bool           `json:"success"`
	Trips   []TripResponse `json:"trips"`
}

type ItineraryStopResponse struct {
	Trip         TripResponse `json:"trip"`
	LegKm        float64      `json:"leg_km"`
	CumulativeKm float64      `json:"cumulative_km"`
}

type ItineraryResponse struct {
	Success       bool                    `json:"success"`
	StartLat      float64                 `json:"start_lat"`
	StartLon      float64                 `json:"start_lon"`
	ReturnToStart bool                    `json:"return_to_start"`
	TotalKm       float64                 `json:"total_km"`
	Stops         []ItineraryStopResponse `json:"stops"`
}
