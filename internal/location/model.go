package location

import "time"

// PointAccuracy is the distance (in meters) between reportable points. Two
// reports for one user closer together than this collapse into one record.
const PointAccuracy = 10

// ReportedLocation is a geographic point one user has reported from,
// carrying every timestamp it was reported at.
type ReportedLocation struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Longitude float64     `json:"longitude"`
	Latitude  float64     `json:"latitude"`
	Reported  []time.Time `json:"reported"`
	CreatedAt time.Time   `json:"created"`
}

// LastReported returns the most recent report timestamp. Reported is
// append-only and never empty after creation.
func (l *ReportedLocation) LastReported() time.Time {
	return l.Reported[len(l.Reported)-1]
}
