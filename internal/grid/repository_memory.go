package grid

import (
	"context"
	"encoding/json"
	"sync"
)

// InMemoryRepository stores grids as marshaled documents so tests exercise
// the same serialization round-trip the jsonb column does.
type InMemoryRepository struct {
	mu    sync.Mutex
	grids map[string][]byte
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		grids: make(map[string][]byte),
	}
}

func (r *InMemoryRepository) FindByUser(ctx context.Context, username string) (*Grid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok := r.grids[username]
	if !ok {
		return nil, nil
	}

	g := NewGrid(username)
	if err := json.Unmarshal(raw, &g.Days); err != nil {
		return nil, err
	}

	return g, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, g *Grid) error {
	raw, err := json.Marshal(g.Days)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.grids[g.Username] = raw
	return nil
}
