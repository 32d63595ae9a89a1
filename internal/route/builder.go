package route

import (
	"context"
	"sort"
	"time"

	"github.com/kenmaca/frrand-api/internal/location"
)

// HistorySource yields a user's full report history; in production this is
// the location service backed by the deduplication store.
type HistorySource interface {
	History(ctx context.Context, username string) ([]*location.ReportedLocation, error)
}

// Point is one visit on a route: a location and the moment it was reported.
type Point struct {
	Time     time.Time                  `json:"time"`
	Location *location.ReportedLocation `json:"location"`
}

// Route is a chronologically ordered, adjacent-deduplicated sequence of
// visits, built fresh per request.
type Route struct {
	Points []Point `json:"points"`
}

// LineString is the standard line-geometry object callers render.
type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type Builder struct {
	source HistorySource
}

func NewBuilder(source HistorySource) *Builder {
	return &Builder{source: source}
}

// Build reconstructs the route a user traveled, optionally bounded to the
// half-open window [start, end). A nil bound leaves that side open. Users
// with no history produce an empty route.
func (b *Builder) Build(ctx context.Context, username string, start, end *time.Time) (*Route, error) {
	history, err := b.source.History(ctx, username)
	if err != nil {
		return nil, err
	}

	// flatten every (location, reported timestamp) pair, keeping only
	// those inside the window
	var points []Point
	for _, loc := range history {
		for _, reportedAt := range loc.Reported {
			if start != nil && reportedAt.Before(*start) {
				continue
			}
			if end != nil && !reportedAt.Before(*end) {
				continue
			}
			points = append(points, Point{Time: reportedAt, Location: loc})
		}
	}

	// chronological order; equal timestamps keep flattening order
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})

	// collapse immediately-consecutive repeats of the same location;
	// returning to a place later keeps it on the route
	route := &Route{}
	for _, p := range points {
		if n := len(route.Points); n > 0 && route.Points[n-1].Location.ID == p.Location.ID {
			continue
		}
		route.Points = append(route.Points, p)
	}

	return route, nil
}

// LineString projects the route into a connected line in visiting order.
func (r *Route) LineString() LineString {
	coordinates := make([][]float64, 0, len(r.Points))
	for _, p := range r.Points {
		coordinates = append(coordinates, []float64{p.Location.Longitude, p.Location.Latitude})
	}

	return LineString{
		Type:        "LineString",
		Coordinates: coordinates,
	}
}
