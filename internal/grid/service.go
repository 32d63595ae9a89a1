package grid

import (
	"context"
	"time"

	"github.com/kenmaca/frrand-api/internal/keymutex"
	"github.com/kenmaca/frrand-api/internal/users"
)

type Service struct {
	repo      Repository
	directory users.Directory
	locks     *keymutex.KeyMutex
}

func NewService(repo Repository, directory users.Directory) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		locks:     keymutex.New(),
	}
}

// Get returns the user's grid, creating and persisting an empty one on
// first access for a valid user. Unknown users get (nil, nil).
func (s *Service) Get(ctx context.Context, username string) (*Grid, error) {
	g, err := s.repo.FindByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if g != nil {
		return g, nil
	}

	exists, err := s.directory.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	g = NewGrid(username)
	if err := s.repo.Upsert(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// Insert records a location report into the weekday/hour bucket derived
// from reportedAt. A report already counted for the same calendar hour is
// a no-op, but the grid is persisted either way.
func (s *Service) Insert(ctx context.Context, g *Grid, locationID string, reportedAt time.Time) error {
	t := reportedAt.UTC()

	if !g.HasBeenReported(locationID, t) {
		h := g.ensureHour(isoWeekday(t), t.Hour())
		e := h.ensureEntry(locationID)
		e.Reported = append(e.Reported, t)
		h.sortEntries()
	}

	return s.repo.Upsert(ctx, g)
}

// LocationsReportedAt returns the entries recorded for (weekday, hour),
// most frequently reported first, or nil if the bucket is empty.
func (s *Service) LocationsReportedAt(g *Grid, weekday, hour int) []*Entry {
	h := g.HourAt(weekday, hour)
	if h == nil {
		return nil
	}
	return h.Entries
}

// Record is the entry point the deduplication store drives on every
// accepted report: fetch (or lazily create) the grid and insert, all under
// a per-user lock so the read-mutate-persist cycle cannot interleave.
func (s *Service) Record(ctx context.Context, username, locationID string, reportedAt time.Time) error {
	unlock := s.locks.Lock(username)
	defer unlock()

	g, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}

	return s.Insert(ctx, g, locationID, reportedAt)
}
