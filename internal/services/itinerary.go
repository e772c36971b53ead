package services

import (
	"fmt"
	"trip-planner-service/internal/domain"
)

// PlanItinerary orders trips with a greedy nearest-neighbor walk from start,
// using great-circle distance between stops.
//
// The walk minimizes the next leg only. It does not attempt global route
// optimization. Ties go to the lower trip id so the order is deterministic.
func PlanItinerary(start domain.Coordinates, trips []*domain.Trip, returnToStart bool) (*domain.Itinerary, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("plan itinerary: start coordinates out of range: %w", ErrInvalidInput)
	}

	plan := &domain.Itinerary{
		Start:         start,
		Stops:         []domain.ItineraryStop{},
		ReturnToStart: returnToStart,
	}
	if len(trips) == 0 {
		return plan, nil
	}

	remaining := make(map[int64]*domain.Trip, len(trips))
	for _, t := range trips {
		if t == nil {
			continue
		}
		remaining[t.ID] = t
	}

	current := start
	total := 0.0

	for len(remaining) > 0 {
		var best *domain.Trip
		bestKm := 0.0

		// Select next stop by shortest leg (greedy step).
		for _, t := range remaining {
			km := current.DistanceKm(t.Location)
			if best == nil || km < bestKm || (km == bestKm && t.ID < best.ID) {
				best = t
				bestKm = km
			}
		}

		total += bestKm
		plan.Stops = append(plan.Stops, domain.ItineraryStop{
			Trip:         best,
			LegKm:        bestKm,
			CumulativeKm: total,
		})

		delete(remaining, best.ID)
		current = best.Location
	}

	// Optionally include the leg back to start in the total.
	if returnToStart {
		total += current.DistanceKm(start)
	}
	plan.TotalKm = total

	return plan, nil
}
