package domain

import (
	"math"
	"testing"
)

func TestDistanceKmIdenticalPoints(t *testing.T) {
	points := []Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 10.5276, Lon: 76.2144},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: -179.9},
	}

	for _, p := range points {
		if d := DistanceKm(p.Lat, p.Lon, p.Lat, p.Lon); d != 0 {
			t.Errorf("DistanceKm(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	pairs := [][2]Coordinates{
		{{Lat: 10.5276, Lon: 76.2144}, {Lat: 9.3723, Lon: 76.8148}},
		{{Lat: 51.5074, Lon: -0.1278}, {Lat: 48.8566, Lon: 2.3522}},
		{{Lat: -33.8688, Lon: 151.2093}, {Lat: 40.7128, Lon: -74.0060}},
	}

	for _, p := range pairs {
		ab := p[0].DistanceKm(p[1])
		ba := p[1].DistanceKm(p[0])
		if ab != ba {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 {
			t.Errorf("distance negative: %v", ab)
		}
	}
}

func TestDistanceKmKnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinates
		want float64
	}{
		{"london-paris", Coordinates{Lat: 51.5074, Lon: -0.1278}, Coordinates{Lat: 48.8566, Lon: 2.3522}, 343.6},
		{"kochi-periyar", Coordinates{Lat: 10.5276, Lon: 76.2144}, Coordinates{Lat: 9.3723, Lon: 76.8148}, 144.3},
		{"kochi-fishing-nets", Coordinates{Lat: 10.5276, Lon: 76.2144}, Coordinates{Lat: 9.9673, Lon: 76.2411}, 62.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.DistanceKm(tt.b)
			if math.Abs(got-tt.want) > 0.5 {
				t.Fatalf("distance = %.2f, want ~%.1f", got, tt.want)
			}
		})
	}
}

func TestCoordinatesValid(t *testing.T) {
	tests := []struct {
		c    Coordinates
		want bool
	}{
		{Coordinates{Lat: 10.5276, Lon: 76.2144}, true},
		{Coordinates{Lat: 90, Lon: -180}, true},
		{Coordinates{Lat: 90.1, Lon: 0}, false},
		{Coordinates{Lat: 0, Lon: 181}, false},
		{Coordinates{Lat: math.NaN(), Lon: 0}, false},
	}

	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.c, got, tt.want)
		}
	}
}
