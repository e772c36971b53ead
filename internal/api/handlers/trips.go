package handlers

import (
	"net/http"
	"strconv"
	"time"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/go-chi/chi/v5"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04"
)

// TripHandler manages the session's saved trips.
type TripHandler struct {
	Repo            ports.TripRepository
	DefaultLocation domain.Coordinates
}

func (h *TripHandler) Save(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == "" {
		return
	}

	var req dto.SaveTripRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	svcReq := services.SaveTripRequest{
		SessionKey:      session,
		DestinationID:   req.XID,
		DestinationName: req.Name,
		Location:        domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon},
		Kinds:           req.Kinds,
		Description:     req.Description,
		Notes:           req.Notes,
		Rating:          req.Rating,
	}
	if req.TripDate != "" {
		// Format already checked by the datetime rule.
		d, _ := time.Parse(dateLayout, req.TripDate)
		svcReq.TripDate = &d
	}

	id, err := services.SaveTrip(r.Context(), svcReq, h.Repo)
	if err != nil {
		writeServiceError(w, r, "save trip", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.SaveTripResponse{
		Success: true,
		Message: "Trip saved successfully!",
		TripID:  id,
	})
}

// List returns the session's trips, newest first.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == "" {
		return
	}

	trips, err := h.Repo.ListTrips(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, "list trips", err)
		return
	}

	res := dto.ListTripsResponse{
		Success: true,
		Trips:   make([]dto.TripResponse, 0, len(trips)),
	}
	for _, t := range trips {
		res.Trips = append(res.Trips, tripResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == "" {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	if err := h.Repo.DeleteTrip(r.Context(), session, id); err != nil {
		writeServiceError(w, r, "delete trip", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Success: true, Message: "Trip deleted"})
}

// Itinerary orders the session's trips into a visiting sequence starting at
// lat/lon (default location when omitted).
func (h *TripHandler) Itinerary(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == "" {
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
	roundTrip, err := queryBool(r, "return", false)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start := domain.Coordinates{Lat: lat, Lon: lon}
	if !start.Valid() {
		writeError(w, r, http.StatusBadRequest, "lat/lon out of range")
		return
	}

	trips, err := h.Repo.ListTrips(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, "list trips", err)
		return
	}

	plan, err := services.PlanItinerary(start, trips, roundTrip)
	if err != nil {
		writeServiceError(w, r, "plan itinerary", err)
		return
	}

	res := dto.ItineraryResponse{
		Success:       true,
		StartLat:      plan.Start.Lat,
		StartLon:      plan.Start.Lon,
		ReturnToStart: plan.ReturnToStart,
		TotalKm:       plan.TotalKm,
		Stops:         make([]dto.ItineraryStopResponse, 0, len(plan.Stops)),
	}
	for _, s := range plan.Stops {
		res.Stops = append(res.Stops, dto.ItineraryStopResponse{
			Trip:         tripResponse(s.Trip),
			LegKm:        s.LegKm,
			CumulativeKm: s.CumulativeKm,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func tripResponse(t *domain.Trip) dto.TripResponse {
	tr := dto.TripResponse{
		ID:          t.ID,
		XID:         t.DestinationID,
		Name:        t.DestinationName,
		Lat:         t.Location.Lat,
		Lon:         t.Location.Lon,
		Description: t.Description,
		Category:    t.Category,
		Notes:       t.Notes,
		Rating:      t.Rating,
		CreatedAt:   t.CreatedAt.UTC().Format(timestampLayout),
	}
	if t.TripDate != nil {
		d := t.TripDate.Format(dateLayout)
		tr.TripDate = &d
	}
	return tr
}
