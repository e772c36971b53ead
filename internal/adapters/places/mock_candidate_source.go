package places

import (
	"context"
	"sync"
	"trip-planner-service/internal/domain"
)

// MockCandidateSource serves a fixed candidate list or a fixed error.
// It records how many times it was called.
type MockCandidateSource struct {
	candidates []domain.CandidateDestination
	err        error

	mu    sync.Mutex
	calls int
}

func NewMockCandidateSource(candidates []domain.CandidateDestination) *MockCandidateSource {
	return &MockCandidateSource{candidates: candidates}
}

func NewFailingCandidateSource(err error) *MockCandidateSource {
	return &MockCandidateSource{err: err}
}

func (m *MockCandidateSource) FetchCandidates(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	limit int,
) ([]domain.CandidateDestination, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	out := make([]domain.CandidateDestination, 0, len(m.candidates))
	for _, c := range m.candidates {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCandidateSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
