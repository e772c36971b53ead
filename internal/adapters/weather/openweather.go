package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/goccy/go-json"
)

const DefaultOpenWeatherURL = "https://api.openweathermap.org"

// OpenWeatherClient implements WeatherProvider using OpenWeather's current
// weather endpoint with metric units.
type OpenWeatherClient struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewOpenWeatherClient(apiKey, baseURL string, timeout time.Duration) (*OpenWeatherClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openweather api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &OpenWeatherClient{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, at domain.Coordinates) (_ *domain.Weather, err error) {
	defer obs.Time(ctx, "openweather.CurrentWeather")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather", nil)
	if err != nil {
		return nil, fmt.Errorf("current weather: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("current weather: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("current weather: decode response: %w", err)
	}

	w := &domain.Weather{
		TempC:      decoded.Main.Temp,
		FeelsLikeC: decoded.Main.FeelsLike,
		Humidity:   decoded.Main.Humidity,
	}
	if len(decoded.Weather) > 0 {
		w.Description = decoded.Weather[0].Description
		w.Icon = decoded.Weather[0].Icon
	}

	return w, nil
}
