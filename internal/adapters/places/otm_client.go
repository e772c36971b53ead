package places

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultOpenTripMapURL = "https://api.opentripmap.com"
	defaultTimeout        = 10 * time.Second

	// OpenTripMap's free tier allows about 10 requests per second.
	DefaultRequestsPerSecond = 5
)

// OpenTripMapClient implements CandidateSource and DetailsProvider using the
// OpenTripMap places API.
//
// The client is safe for concurrent use.
type OpenTripMapClient struct {
	session *http.Client
	limiter *rate.Limiter
	apiKey  string
	baseURL string
}

func NewOpenTripMapClient(apiKey, baseURL string, timeout time.Duration) (*OpenTripMapClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("opentripmap api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultOpenTripMapURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &OpenTripMapClient{
		session: &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultRequestsPerSecond),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// SetRateLimit replaces the outbound request limit. rps <= 0 disables it.
func (c *OpenTripMapClient) SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}
