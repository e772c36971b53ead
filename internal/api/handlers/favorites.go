package handlers

import (
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/go-chi/chi/v5"
)

// FavoriteHandler manages the session's favorite destinations.
type FavoriteHandler struct {
	Repo ports.FavoriteRepository
}

// Add is idempotent: favoriting the same destination twice returns the
// first favorite's id.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == "" {
		return
	}

	var req dto.AddFavoriteRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	id, err := services.AddFavorite(r.Context(), domain.Favorite{
		SessionKey:      session,
		DestinationID:   req.XID,
		DestinationName: req.Name,
		Location:        domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon},
	}, h.Repo)
	if err != nil {
		writeServiceError(w, r, "add favorite", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AddFavoriteResponse{Success: true, FavoriteID: id})
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == "" {
		return
	}

	favs, err := h.Repo.ListFavorites(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, "list favorites", err)
		return
	}

	res := dto.ListFavoritesResponse{
		Success:   true,
		Favorites: make([]dto.FavoriteResponse, 0, len(favs)),
	}
	for _, f := range favs {
		res.Favorites = append(res.Favorites, dto.FavoriteResponse{
			ID:        f.ID,
			XID:       f.DestinationID,
			Name:      f.DestinationName,
			Lat:       f.Location.Lat,
			Lon:       f.Location.Lon,
			CreatedAt: f.CreatedAt.UTC().Format(timestampLayout),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session := requireSession(w, r)
	if session == "" {
		return
	}

	if err := h.Repo.RemoveFavorite(r.Context(), session, chi.URLParam(r, "xid")); err != nil {
		writeServiceError(w, r, "remove favorite", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Success: true, Message: "Favorite removed"})
}
