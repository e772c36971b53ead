package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

func TestQueryBool(t *testing.T) {
	tests := []struct {
		raw     string
		def     bool
		want    bool
		wantErr bool
	}{
		{"", true, true, false},
		{"", false, false, false},
		{"true", false, true, false},
		{"False", true, false, false},
		{"1", false, true, false},
		{"yes", false, true, false},
		{"off", true, false, false},
		{"maybe", true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?flag="+tt.raw, nil)
			got, err := queryBool(r, "flag", tt.def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryFloatDefault(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lat=9.5", nil)

	if v, err := queryFloat(r, "lat", 1); err != nil || v != 9.5 {
		t.Fatalf("lat = %v, %v", v, err)
	}
	if v, err := queryFloat(r, "lon", 76.2144); err != nil || v != 76.2144 {
		t.Fatalf("lon = %v, %v", v, err)
	}
}

func TestWriteServiceErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("save trip: %w", services.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("profile: %w", domain.ErrInvalidPreference), http.StatusBadRequest},
		{fmt.Errorf("delete: %w", ports.ErrNotFound), http.StatusNotFound},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "op", tt.err)
		if rec.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.want)
		}
		if !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Errorf("%v: body = %s", tt.err, rec.Body.String())
		}
	}

	rec := httptest.NewRecorder()
	writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "op", errors.New("disk full"))
	if strings.Contains(rec.Body.String(), "disk full") {
		t.Fatal("internal error text leaked to client")
	}
}
