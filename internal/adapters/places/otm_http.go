package places

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"trip-planner-service/internal/ports"
)

// HTTPStatusError is returned for non-2xx upstream responses.
type HTTPStatusError struct {
	Code int
	Body string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}

// Unwrap maps 404 to ports.ErrNotFound so callers can use errors.Is.
func (e *HTTPStatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ports.ErrNotFound
	}
	return nil
}

func (c *OpenTripMapClient) newRequest(
	ctx context.Context,
	method string,
	path string,
	query map[string]string,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	q.Set("apikey", c.apiKey)
	req.URL.RawQuery = q.Encode()

	return req, nil
}

// do waits for the outbound rate limiter and executes req once. There is no
// retry; an unavailable upstream is handled by the caller's fallback path.
func (c *OpenTripMapClient) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &HTTPStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
