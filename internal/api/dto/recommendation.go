package dto

// RecommendationQuery holds the query string of a recommendation request
// after defaults are applied.
type RecommendationQuery struct {
	Crowd    string  `json:"crowd" validate:"oneof=quiet moderate lively"`
	Activity string  `json:"activity" validate:"oneof=relaxed balanced adventurous"`
	Distance string  `json:"distance" validate:"oneof=nearby moderate far"`
	Nature   bool    `json:"nature"`
	Culture  bool    `json:"culture"`
	Budget   bool    `json:"budget"`
	Lat      float64 `json:"lat" validate:"latitude"`
	Lon      float64 `json:"lon" validate:"longitude"`
}

type RecommendationResponse struct {
	XID      string   `json:"xid"`
	Name     string   `json:"name"`
	Kinds    string   `json:"kinds"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Score    int      `json:"score"`
	Distance float64  `json:"distance"`
}

type ProfileResponse struct {
	Crowd    string `json:"crowd"`
	Activity string `json:"activity"`
	Distance string `json:"distance"`
	Nature   bool   `json:"nature"`
	Culture  bool   `json:"culture"`
	Budget   bool   `json:"budget"`
}

type RecommendationsResponse struct {
	Success         bool                     `json:"success"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	Profile         ProfileResponse          `json:"profile"`
	// Source is live or fallback.
	Source string `json:"source"`
}

type SavedProfileResponse struct {
	Success bool            `json:"success"`
	Profile ProfileResponse `json:"profile"`
	Saved   bool            `json:"saved"`
}
