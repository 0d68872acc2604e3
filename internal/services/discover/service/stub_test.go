package service

import (
	"context"
	"fmt"
	"sync"

	"tripmaker/internal/core/geo"
	"tripmaker/internal/core/place"
	"tripmaker/internal/core/sampler"
	"tripmaker/internal/services/discover/domain"

	"github.com/google/uuid"
)

// stubDir is an in memory directory, hooks default to empty results
type stubDir struct {
	mu       sync.Mutex
	searches int
	details  map[string]int
	points   []geo.Point

	search func(ctx context.Context, call int, p geo.Point) ([]place.Candidate, error)
	detail func(ctx context.Context, id string) (place.Detail, error)
}

func (s *stubDir) NearbySearch(ctx context.Context, p geo.Point, _ geo.Distance, _ place.Category) ([]place.Candidate, error) {
	s.mu.Lock()
	s.searches++
	call := s.searches
	s.points = append(s.points, p)
	s.mu.Unlock()
	if s.search == nil {
		return nil, nil
	}
	return s.search(ctx, call, p)
}

func (s *stubDir) Details(ctx context.Context, id string) (place.Detail, error) {
	s.mu.Lock()
	if s.details == nil {
		s.details = map[string]int{}
	}
	s.details[id]++
	s.mu.Unlock()
	if s.detail == nil {
		return place.Detail{}, fmt.Errorf("no detail for %s", id)
	}
	return s.detail(ctx, id)
}

func (s *stubDir) searchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches
}

func (s *stubDir) detailCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details[id]
}

func (s *stubDir) totalDetails() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.details {
		n += v
	}
	return n
}

// seqSource replays vals forever
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func fixedSources(vals ...float64) SourceFactory {
	return func() sampler.RandomSource { return &seqSource{vals: vals} }
}

// memLedger keeps runs in a map
type memLedger struct {
	mu   sync.Mutex
	runs map[uuid.UUID]domain.Run
	err  error
}

func (m *memLedger) InsertRun(_ context.Context, r domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.runs == nil {
		m.runs = map[uuid.UUID]domain.Run{}
	}
	if _, ok := m.runs[r.ID]; !ok {
		m.runs[r.ID] = r
	}
	return nil
}

func (m *memLedger) GetRun(_ context.Context, id uuid.UUID) (domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return domain.Run{}, fmt.Errorf("run %s not found", id)
	}
	return r, nil
}

func detailAt(id string, loc geo.Point, rating string) place.Detail {
	return place.Detail{ID: id, Name: "place " + id, RatingRaw: &rating, Location: loc}
}
