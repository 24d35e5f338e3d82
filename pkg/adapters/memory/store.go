package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.RunRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.RunRecord),
	}
}

// Save persists a copy of the record.
func (s *Store) Save(ctx context.Context, record *domain.RunRecord) error {
	copied := cloneRecord(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = copied
	return nil
}

// Load retrieves a copy of the record so callers cannot mutate the store.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return cloneRecord(rec), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored run IDs, most recent first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*domain.RunRecord, 0, len(s.data))
	for _, r := range s.data {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids, nil
}

func cloneRecord(r *domain.RunRecord) *domain.RunRecord {
	out := *r
	out.Commands = append([]domain.Command(nil), r.Commands...)
	out.Result.Initial = cloneConfig(r.Result.Initial)
	out.Result.Final = cloneConfig(r.Result.Final)
	out.Result.Trace = make(domain.Trace, len(r.Result.Trace))
	for i, e := range r.Result.Trace {
		e.StackBefore = append([]domain.Symbol(nil), e.StackBefore...)
		e.StackAfter = append([]domain.Symbol(nil), e.StackAfter...)
		if e.Rule != nil {
			rule := *e.Rule
			e.Rule = &rule
		}
		out.Result.Trace[i] = e
	}
	return &out
}

func cloneConfig(c domain.Configuration) domain.Configuration {
	return domain.Configuration{State: c.State, Stack: append([]domain.Symbol(nil), c.Stack...)}
}
