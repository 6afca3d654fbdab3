package journal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps records in-process. It is the default driver and the
// one tests use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Append(_ context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("nil record")
	}
	if rec.Tool == "" {
		return fmt.Errorf("record missing tool name")
	}
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("record %s already exists", rec.ID)
	}
	clone := *rec
	s.records[rec.ID] = &clone
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("record %s not found", id)
	}
	clone := *rec
	return &clone, nil
}

func (s *MemoryStore) List(_ context.Context, filter Filter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, rec := range s.records {
		if filter.Tool != "" && rec.Tool != filter.Tool {
			continue
		}
		if filter.Network != "" && rec.Network != filter.Network {
			continue
		}
		if filter.ProjectID != "" && rec.ProjectID != filter.ProjectID {
			continue
		}
		clone := *rec
		out = append(out, &clone)
	}

	// Newest first.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
