package places

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/logging"
	"trip-planner-service/internal/metrics"
	"trip-planner-service/internal/ports"

	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	Name string
	// Trip after this many consecutive failures.
	ConsecutiveFailures uint32
	// How long the breaker stays open before a half-open probe.
	OpenTimeout time.Duration
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.Name == "" {
		s.Name = "opentripmap"
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = time.Minute
	}
	return s
}

type placesAPI interface {
	ports.CandidateSource
	ports.DetailsProvider
}

// BreakerClient guards a places client with a circuit breaker so that an
// unavailable upstream fails fast. Not-found responses and cancelled requests
// do not count as failures.
type BreakerClient struct {
	client placesAPI
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

func NewBreakerClient(client placesAPI, s BreakerSettings) *BreakerClient {
	s = s.withDefaults()

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ports.ErrNotFound)
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerClient{client: client, cb: cb, name: s.Name}
}

func (b *BreakerClient) FetchCandidates(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	limit int,
) ([]domain.CandidateDestination, error) {
	return castResult[[]domain.CandidateDestination](b.cb.Execute(func() (any, error) {
		return b.client.FetchCandidates(ctx, center, radiusMeters, limit)
	}))
}

func (b *BreakerClient) FetchDetails(ctx context.Context, id string) (*domain.DestinationDetails, error) {
	return castResult[*domain.DestinationDetails](b.cb.Execute(func() (any, error) {
		return b.client.FetchDetails(ctx, id)
	}))
}

// State reports the breaker state, e.g. "closed" or "open".
func (b *BreakerClient) State() string {
	return b.cb.State().String()
}

func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
