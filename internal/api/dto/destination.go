package dto

import "trip-planner-service/internal/domain"

type DestinationsQuery struct {
	Lat    float64 `json:"lat" validate:"latitude"`
	Lon    float64 `json:"lon" validate:"longitude"`
	Radius int     `json:"radius" validate:"gte=1,lte=500000"`
}

type DestinationResponse struct {
	XID   string   `json:"xid"`
	Name  string   `json:"name"`
	Kinds string   `json:"kinds"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Dist  float64  `json:"dist"`
}

type ListDestinationsResponse struct {
	Success      bool                  `json:"success"`
	Destinations []DestinationResponse `json:"destinations"`
	Count        int                   `json:"count"`
}

type DestinationDetailsResponse struct {
	Success     bool                       `json:"success"`
	Destination *domain.DestinationDetails `json:"destination"`
	Weather     *domain.Weather            `json:"weather"`
}
