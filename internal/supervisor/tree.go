// Package supervisor runs the long-lived parts of the server (HTTP listener,
// cache maintenance) under a suture supervisor so a crashed service is
// restarted with backoff instead of taking the process down.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/logging"

	"github.com/thejerf/suture/v4"
)

type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	FailureThreshold float64
	// FailureDecay is the rate at which failures decay in seconds.
	FailureDecay float64
	// FailureBackoff is the duration to wait when threshold is exceeded.
	FailureBackoff time.Duration
	// ShutdownTimeout is the maximum time to wait for each service to stop.
	ShutdownTimeout time.Duration
}

func (c TreeConfig) withDefaults() TreeConfig {
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = 30
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = 15 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}

// NewTree returns the root supervisor. Supervisor events go to the zerolog
// logger.
func NewTree(name string, cfg TreeConfig) *suture.Supervisor {
	cfg = cfg.withDefaults()

	return suture.New(name, suture.Spec{
		EventHook:        logEvent,
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		Timeout:          cfg.ShutdownTimeout,
	})
}

func logEvent(e suture.Event) {
	ev := logging.Warn()
	if e.Type() == suture.EventTypeResume {
		ev = logging.Info()
	}
	ev.Fields(e.Map()).Msg(e.String())
}

// Run serves tree until ctx is cancelled or the tree stops by itself. After
// cancellation it waits at most wait for the tree to finish. A clean stop
// (nil or context.Canceled) returns nil.
func Run(ctx context.Context, tree *suture.Supervisor, wait time.Duration) error {
	errCh := tree.ServeBackground(ctx)

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		logging.Info().Msg("shutting down")
		select {
		case err = <-errCh:
		case <-time.After(wait):
			return fmt.Errorf("supervisor: services still running %s after shutdown", wait)
		}
	}

	// The tree has returned, so the report no longer blocks.
	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}
	return nil
}
