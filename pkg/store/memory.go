package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/observability"
)

// Memory is an in-process diagram store. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	diagrams map[string]diagram.Diagram
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{diagrams: make(map[string]diagram.Diagram)}
}

// Put saves a diagram, assigning an id if needed.
func (s *Memory) Put(ctx context.Context, d diagram.Diagram) (string, error) {
	assignID(&d)

	s.mu.Lock()
	s.diagrams[d.ID] = d
	s.mu.Unlock()

	observability.Store().OnPut(ctx, "memory", len(d.Nodes))
	return d.ID, nil
}

// Get loads a diagram by id.
func (s *Memory) Get(ctx context.Context, id string) (diagram.Diagram, error) {
	s.mu.RLock()
	d, ok := s.diagrams[id]
	s.mu.RUnlock()

	observability.Store().OnGet(ctx, "memory", ok)
	if !ok {
		return diagram.Diagram{}, notFound(id)
	}
	return d, nil
}

// List returns summaries of all stored diagrams, ordered by id.
func (s *Memory) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.diagrams))
	for id, d := range s.diagrams {
		entries = append(entries, Entry{ID: id, Name: d.Name, Nodes: len(d.Nodes)})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Delete removes a diagram by id.
func (s *Memory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.diagrams[id]
	delete(s.diagrams, id)
	s.mu.Unlock()

	if !ok {
		return notFound(id)
	}
	observability.Store().OnDelete(ctx, "memory")
	return nil
}

// Close does nothing for the in-memory store.
func (s *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
