package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
	"trip-planner-service/internal/validation"

	"github.com/goccy/go-json"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("encode response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Success: false, Error: msg})
}

// writeServiceError maps service errors to a status. Unexpected errors are
// logged in full and reported to the client as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *validation.RequestValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Error())
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, domain.ErrInvalidPreference):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// validateRequest writes a 400 and returns false when v fails validation.
func validateRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := validation.ValidateStruct(v); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return v, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

// queryBool accepts the strconv.ParseBool forms plus yes/no and on/off.
func queryBool(r *http.Request, name string, def bool) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name)))
	switch s {
	case "":
		return def, nil
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New(name + " must be true or false")
	}
	return v, nil
}

func queryString(r *http.Request, name, def string) string {
	s := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name)))
	if s == "" {
		return def
	}
	return s
}

func floatPtr(v float64) *float64 {
	return &v
}

// coordinatePtrs splits optional coordinates into nullable wire fields.
func coordinatePtrs(c *domain.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	return floatPtr(c.Lat), floatPtr(c.Lon)
}
