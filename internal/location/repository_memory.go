package location

import (
	"context"
	"math"
	"sync"
)

const earthRadius = 6371000 // meters

// haversineMeters is the great-circle distance between two WGS 84 points.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// InMemoryRepository backs tests with a linear haversine scan in place of
// the PostGIS nearest-within-radius query.
type InMemoryRepository struct {
	mu        sync.Mutex
	locations map[string][]*ReportedLocation
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		locations: make(map[string][]*ReportedLocation),
	}
}

func (r *InMemoryRepository) FindNearest(
	ctx context.Context,
	username string,
	longitude, latitude, radiusMeters float64,
) (*ReportedLocation, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var nearest *ReportedLocation
	best := radiusMeters

	for _, loc := range r.locations[username] {
		d := haversineMeters(latitude, longitude, loc.Latitude, loc.Longitude)
		if d <= best {
			nearest = loc
			best = d
		}
	}

	return nearest, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, loc *ReportedLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.locations[loc.Username]
	for i, candidate := range existing {
		if candidate.ID == loc.ID {
			existing[i] = loc
			return nil
		}
	}

	r.locations[loc.Username] = append(existing, loc)
	return nil
}

func (r *InMemoryRepository) FindAllByUser(ctx context.Context, username string) ([]*ReportedLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*ReportedLocation(nil), r.locations[username]...), nil
}
