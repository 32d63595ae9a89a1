package grid

import (
	"sort"
	"time"
)

// Grid is one user's 7x24 frequency structure: ISO weekday (Mon=1..Sun=7)
// -> hour of day (0-23) -> reported locations, most frequent first.
type Grid struct {
	Username string       `json:"username"`
	Days     map[int]*Day `json:"days"`
}

type Day struct {
	Hours map[int]*Hour `json:"hours"`
}

// Hour keeps its entries as an ordered slice rather than a map so the
// most-frequently-reported location always sorts first.
type Hour struct {
	Entries []*Entry `json:"entries"`
}

type Entry struct {
	LocationID string      `json:"locationId"`
	Reported   []time.Time `json:"reported"`
}

// NewGrid returns an empty grid for a user.
func NewGrid(username string) *Grid {
	return &Grid{
		Username: username,
		Days:     make(map[int]*Day),
	}
}

// isoWeekday converts Go's Sunday-based weekday to ISO (Monday=1..Sunday=7).
func isoWeekday(t time.Time) int {
	w := int(t.Weekday())
	if w == 0 {
		return 7
	}
	return w
}

// HourAt returns the bucket for (weekday, hour), or nil if nothing was
// ever recorded there.
func (g *Grid) HourAt(weekday, hour int) *Hour {
	day, ok := g.Days[weekday]
	if !ok {
		return nil
	}
	return day.Hours[hour]
}

// ensureHour walks day -> hour with get-or-insert semantics at each level.
func (g *Grid) ensureHour(weekday, hour int) *Hour {
	day, ok := g.Days[weekday]
	if !ok {
		day = &Day{Hours: make(map[int]*Hour)}
		g.Days[weekday] = day
	}

	h, ok := day.Hours[hour]
	if !ok {
		h = &Hour{}
		day.Hours[hour] = h
	}

	return h
}

func (h *Hour) entry(locationID string) *Entry {
	for _, e := range h.Entries {
		if e.LocationID == locationID {
			return e
		}
	}
	return nil
}

func (h *Hour) ensureEntry(locationID string) *Entry {
	if e := h.entry(locationID); e != nil {
		return e
	}

	e := &Entry{LocationID: locationID}
	h.Entries = append(h.Entries, e)
	return e
}

// sortEntries orders by descending report count; equal counts order
// ascending by location id to keep the result deterministic.
func (h *Hour) sortEntries() {
	sort.Slice(h.Entries, func(i, j int) bool {
		if len(h.Entries[i].Reported) != len(h.Entries[j].Reported) {
			return len(h.Entries[i].Reported) > len(h.Entries[j].Reported)
		}
		return h.Entries[i].LocationID < h.Entries[j].LocationID
	})
}

// HasBeenReported reports whether locationID already holds a timestamp in
// the same weekday/hour bucket falling on the same calendar date and hour
// as reportedAt. The bucket spans all weeks; this check is what stops one
// specific hour of one specific day from counting twice.
func (g *Grid) HasBeenReported(locationID string, reportedAt time.Time) bool {
	t := reportedAt.UTC()

	h := g.HourAt(isoWeekday(t), t.Hour())
	if h == nil {
		return false
	}

	e := h.entry(locationID)
	if e == nil {
		return false
	}

	for _, prev := range e.Reported {
		if sameCalendarHour(prev.UTC(), t) {
			return true
		}
	}

	return false
}

func sameCalendarHour(a, b time.Time) bool {
	return a.Year() == b.Year() &&
		a.Month() == b.Month() &&
		a.Day() == b.Day() &&
		a.Hour() == b.Hour()
}
