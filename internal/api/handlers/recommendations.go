package handlers

import (
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// RecommendationHandler serves personality-based recommendations and the
// session's saved profile.
type RecommendationHandler struct {
	Recommender     *services.Recommender
	Profiles        ports.ProfileRepository
	DefaultLocation domain.Coordinates
}

// Recommend scores destinations for the profile given in the query string and
// stores that profile for the session. Missing parameters take the default
// profile's values and the configured default location.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	def := domain.DefaultProfile()

	q := dto.RecommendationQuery{
		Crowd:    queryString(r, "crowd", string(def.Crowd)),
		Activity: queryString(r, "activity", string(def.Activity)),
		Distance: queryString(r, "distance", string(def.Distance)),
	}

	var err error
	if q.Nature, err = queryBool(r, "nature", def.NatureLover); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if q.Culture, err = queryBool(r, "culture", def.CultureEnthusiast); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if q.Budget, err = queryBool(r, "budget", def.BudgetConscious); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if q.Lat, err = queryFloat(r, "lat", h.DefaultLocation.Lat); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if q.Lon, err = queryFloat(r, "lon", h.DefaultLocation.Lon); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if !validateRequest(w, r, &q) {
		return
	}

	profile, err := domain.NewPreferenceProfile(q.Crowd, q.Activity, q.Distance, q.Budget, q.Nature, q.Culture)
	if err != nil {
		writeServiceError(w, r, "recommend", err)
		return
	}

	if session := SessionKeyFromContext(r.Context()); session != "" && h.Profiles != nil {
		if err := h.Profiles.UpsertProfile(r.Context(), session, profile); err != nil {
			writeServiceError(w, r, "upsert profile", err)
			return
		}
	}

	result, err := h.Recommender.Recommend(r.Context(), services.RecommendRequest{
		Profile:   profile,
		Requester: domain.Coordinates{Lat: q.Lat, Lon: q.Lon},
	})
	if err != nil {
		writeServiceError(w, r, "recommend", err)
		return
	}

	res := dto.RecommendationsResponse{
		Success:         true,
		Recommendations: make([]dto.RecommendationResponse, 0, len(result.Recommendations)),
		Profile:         profileResponse(profile),
		Source:          result.Source,
	}
	for _, d := range result.Recommendations {
		lat, lon := coordinatePtrs(d.Coordinates)
		res.Recommendations = append(res.Recommendations, dto.RecommendationResponse{
			XID:      d.ID,
			Name:     d.Name,
			Kinds:    d.Tags,
			Lat:      lat,
			Lon:      lon,
			Score:    d.Score,
			Distance: d.DistanceMeters,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Profile returns the session's saved profile, or the defaults with
// saved=false.
func (h *RecommendationHandler) Profile(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == "" {
		return
	}

	profile, saved, err := services.LoadProfile(r.Context(), session, h.Profiles)
	if err != nil {
		writeServiceError(w, r, "load profile", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SavedProfileResponse{
		Success: true,
		Profile: profileResponse(profile),
		Saved:   saved,
	})
}

func profileResponse(p domain.PreferenceProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		Crowd:    string(p.Crowd),
		Activity: string(p.Activity),
		Distance: string(p.Distance),
		Nature:   p.NatureLover,
		Culture:  p.CultureEnthusiast,
		Budget:   p.BudgetConscious,
	}
}
