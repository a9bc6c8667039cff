package infra

import (
	"context"
	"sync"

	"crpt-client/crpt/domain"
)

type Counters struct {
	Succeeded int64
	Failed    int64
}

func (c Counters) Total() int64 { return c.Succeeded + c.Failed }

// MemoryStatsStore guarda os desfechos de envio em memória.
// Útil para testes, para o comando load e para desenvolvimento.
//
// Não faz expiração.
type MemoryStatsStore struct {
	mu            sync.Mutex
	total         Counters
	byKind        map[domain.ErrorKind]int64
	byParticipant map[string]Counters

	trackParticipants bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackParticipants(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackParticipants = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byKind:        make(map[domain.ErrorKind]int64),
		byParticipant: make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := ev.Succeeded()
	if ok {
		s.total.Succeeded++
	} else {
		s.total.Failed++
		s.byKind[ev.Kind]++
	}

	if s.trackParticipants && ev.Participant != "" {
		c := s.byParticipant[ev.Participant]
		if ok {
			c.Succeeded++
		} else {
			c.Failed++
		}
		s.byParticipant[ev.Participant] = c
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ByKind conta apenas falhas.
func (s *MemoryStatsStore) ByKind() map[domain.ErrorKind]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.ErrorKind]int64, len(s.byKind))
	for k, v := range s.byKind {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) ByParticipant() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byParticipant))
	for k, v := range s.byParticipant {
		out[k] = v
	}
	return out
}
