package location

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kenmaca/frrand-api/internal/keymutex"
	"github.com/kenmaca/frrand-api/internal/users"
)

// Aggregator consumes reported-location updates, one per accepted report.
type Aggregator interface {
	Record(ctx context.Context, username, locationID string, reportedAt time.Time) error
}

type Service struct {
	repo       Repository
	directory  users.Directory
	aggregator Aggregator
	locks      *keymutex.KeyMutex
	now        func() time.Time
}

func NewService(repo Repository, directory users.Directory, aggregator Aggregator) *Service {
	return &Service{
		repo:       repo,
		directory:  directory,
		aggregator: aggregator,
		locks:      keymutex.New(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Report resolves a raw (longitude, latitude) report into either a repeat
// of a nearby existing location or a fresh record. Reports for unknown
// users are dropped silently: the result is (nil, nil).
//
// The find-nearest / upsert pair runs under a per-user lock, so two
// concurrent reports from the same spot cannot both create a record.
func (s *Service) Report(ctx context.Context, username string, longitude, latitude float64) (*ReportedLocation, error) {
	unlock := s.locks.Lock(username)
	defer unlock()

	loc, err := s.repo.FindNearest(ctx, username, longitude, latitude, PointAccuracy)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if loc != nil {
		// reported again within PointAccuracy meters of a known point
		loc.Reported = append(loc.Reported, now)
	} else {
		exists, err := s.directory.Exists(ctx, username)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, nil
		}

		loc = &ReportedLocation{
			ID:        uuid.New().String(),
			Username:  username,
			Longitude: longitude,
			Latitude:  latitude,
			Reported:  []time.Time{now},
			CreatedAt: now,
		}
	}

	if err := s.repo.Upsert(ctx, loc); err != nil {
		return nil, err
	}

	if s.aggregator != nil {
		if err := s.aggregator.Record(ctx, username, loc.ID, loc.LastReported()); err != nil {
			return nil, err
		}
	}

	return loc, nil
}

// History returns every reported location for a user, unfiltered. Time
// windowing belongs to the route builder.
func (s *Service) History(ctx context.Context, username string) ([]*ReportedLocation, error) {
	return s.repo.FindAllByUser(ctx, username)
}
