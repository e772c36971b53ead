package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/goccy/go-json"
)

type detailsResponse struct {
	XID       string            `json:"xid"`
	Name      string            `json:"name"`
	Kinds     string            `json:"kinds"`
	Rate      json.RawMessage   `json:"rate"`
	Wikipedia string            `json:"wikipedia"`
	Image     string            `json:"image"`
	Address   map[string]string `json:"address"`
	Preview   *struct {
		Source string `json:"source"`
	} `json:"preview"`
	WikipediaExtracts *struct {
		Text string `json:"text"`
	} `json:"wikipedia_extracts"`
	Info *struct {
		Descr string `json:"descr"`
	} `json:"info"`
	Point *struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"point"`
}

// FetchDetails returns one place by xid (/0.1/en/places/xid/{xid}).
// An unknown xid yields an error matching ports.ErrNotFound.
func (c *OpenTripMapClient) FetchDetails(ctx context.Context, id string) (_ *domain.DestinationDetails, err error) {
	defer obs.Time(ctx, "otm.FetchDetails")(&err)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("fetch details: xid must be non-empty")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/0.1/en/places/xid/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch details %q: %w", id, err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch details %q: %w", id, err)
	}
	defer resp.Body.Close()

	var d detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, fmt.Errorf("fetch details %q: decode response: %w", id, err)
	}

	out := &domain.DestinationDetails{
		ID:        d.XID,
		Name:      d.Name,
		Kinds:     d.Kinds,
		Rate:      strings.Trim(string(d.Rate), `"`),
		Wikipedia: d.Wikipedia,
		Image:     d.Image,
		Address:   d.Address,
	}
	if out.ID == "" {
		out.ID = id
	}
	if d.Preview != nil && d.Preview.Source != "" {
		out.Image = d.Preview.Source
	}
	switch {
	case d.WikipediaExtracts != nil && d.WikipediaExtracts.Text != "":
		out.Description = d.WikipediaExtracts.Text
	case d.Info != nil:
		out.Description = d.Info.Descr
	}
	if d.Point != nil {
		out.Point = &domain.Coordinates{Lat: d.Point.Lat, Lon: d.Point.Lon}
	}

	return out, nil
}
