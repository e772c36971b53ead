package handlers

import (
	"errors"
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/go-chi/chi/v5"
)

const (
	defaultSearchRadius = 10000
	searchLimit         = 50
)

// DestinationHandler exposes raw destination search and destination details.
type DestinationHandler struct {
	Places          ports.CandidateSource
	DetailsSource   ports.DetailsProvider
	Weather         ports.WeatherProvider
	DefaultLocation domain.Coordinates
}

// List returns named places around lat/lon without scoring.
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Places == nil {
		writeError(w, r, http.StatusServiceUnavailable, "destination search is not configured")
		return
	}

	lat, err := queryFloat(r, "lat", h.DefaultLocation.Lat)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := queryFloat(r, "lon", h.DefaultLocation.Lon)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	radius, err := queryInt(r, "radius", defaultSearchRadius)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	q := dto.DestinationsQuery{Lat: lat, Lon: lon, Radius: radius}
	if !validateRequest(w, r, &q) {
		return
	}

	center := domain.Coordinates{Lat: q.Lat, Lon: q.Lon}
	candidates, err := h.Places.FetchCandidates(r.Context(), center, q.Radius, searchLimit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("destination search failed")
		writeError(w, r, http.StatusBadGateway, "destination search failed")
		return
	}

	res := dto.ListDestinationsResponse{
		Success:      true,
		Destinations: make([]dto.DestinationResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}
		lat, lon := coordinatePtrs(c.Coordinates)
		res.Destinations = append(res.Destinations, dto.DestinationResponse{
			XID:   c.ID,
			Name:  c.Name,
			Kinds: c.Tags,
			Lat:   lat,
			Lon:   lon,
			Dist:  c.DistanceMeters,
		})
	}
	res.Count = len(res.Destinations)

	writeJSON(w, r, http.StatusOK, res)
}

// Details returns one destination with its current weather when available.
func (h *DestinationHandler) Details(w http.ResponseWriter, r *http.Request) {
	if h.DetailsSource == nil {
		writeError(w, r, http.StatusServiceUnavailable, "destination details are not configured")
		return
	}

	xid := chi.URLParam(r, "xid")
	insight, err := services.GetDestinationInsight(r.Context(), xid, h.DetailsSource, h.Weather)
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "destination not found")
		return
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "xid is required")
		return
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("xid", xid).Msg("destination details failed")
		writeError(w, r, http.StatusBadGateway, "destination details unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DestinationDetailsResponse{
		Success:     true,
		Destination: insight.Details,
		Weather:     insight.Weather,
	})
}
