package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"trip-planner-service/internal/logging"
)

// HTTPServer matches the *http.Server lifecycle methods.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server until the supervisor stops it.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{server: server, shutdownTimeout: shutdownTimeout}
}

func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// The supervisor context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}

		<-errCh
		return ctx.Err()
	}
}

func (h *HTTPServerService) String() string {
	return "http-server"
}

// CachePurger deletes expired cache entries and reports how many were removed.
type CachePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// CachePurgeService purges expired candidate cache rows on a fixed interval.
// A failed purge is logged and retried on the next tick.
type CachePurgeService struct {
	purger   CachePurger
	interval time.Duration
}

func NewCachePurgeService(purger CachePurger, interval time.Duration) *CachePurgeService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CachePurgeService{purger: purger, interval: interval}
}

func (s *CachePurgeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := s.purger.PurgeExpired(ctx)
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Msg("candidate cache purge failed")
				continue
			}
			logging.Ctx(ctx).Debug().Int64("rows", n).Msg("candidate cache purged")
		}
	}
}

func (s *CachePurgeService) String() string {
	return "cache-purge"
}
