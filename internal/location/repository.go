package location

import "context"

// Repository is the persistence contract for reported locations.
// FindNearest returns (nil, nil) when no record lies within radiusMeters.
type Repository interface {
	FindNearest(ctx context.Context, username string, longitude, latitude, radiusMeters float64) (*ReportedLocation, error)
	Upsert(ctx context.Context, loc *ReportedLocation) error
	FindAllByUser(ctx context.Context, username string) ([]*ReportedLocation, error)
}
