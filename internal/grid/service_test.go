package grid

import (
	"context"
	"testing"
	"time"

	"github.com/kenmaca/frrand-api/internal/users"
)

func newTestService() *Service {
	directory := users.NewInMemoryDirectory()
	directory.Add(&users.User{Username: "alice", Password: "x"})

	return NewService(NewInMemoryRepository(), directory)
}

// mondayAt returns a Monday (ISO weekday 1) at the given hour, weeks weeks
// after 2025-06-02.
func mondayAt(hour, weeks int) time.Time {
	return time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC).AddDate(0, 0, 7*weeks)
}

func TestGetCreatesEmptyGridLazily(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	g, err := service.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g == nil {
		t.Fatal("expected a grid for a valid user")
	}
	if len(g.Days) != 0 {
		t.Fatalf("expected empty grid, got %d days", len(g.Days))
	}

	// the lazily created grid must have been persisted
	persisted, err := service.repo.FindByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if persisted == nil {
		t.Fatal("expected lazily created grid to be persisted")
	}
}

func TestGetUnknownUserYieldsNothing(t *testing.T) {
	service := newTestService()

	g, err := service.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g != nil {
		t.Fatalf("expected no grid for unknown user, got %+v", g)
	}
}

func TestInsertPlacesReportInWeekdayHourBucket(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	g, _ := service.Get(ctx, "alice")

	reportedAt := mondayAt(9, 0)
	if err := service.Insert(ctx, g, "loc-1", reportedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := service.LocationsReportedAt(g, 1, 9)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry in Monday/09 bucket, got %d", len(entries))
	}
	if entries[0].LocationID != "loc-1" {
		t.Fatalf("expected loc-1, got %s", entries[0].LocationID)
	}

	if got := service.LocationsReportedAt(g, 1, 10); got != nil {
		t.Fatalf("expected empty bucket for Monday/10, got %v", got)
	}
}

func TestInsertDedupsSameCalendarHour(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	g, _ := service.Get(ctx, "alice")

	first := mondayAt(9, 0).Add(5 * time.Minute)
	again := mondayAt(9, 0).Add(45 * time.Minute)

	if err := service.Insert(ctx, g, "loc-1", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// same location, same calendar date, same hour: must not count twice
	if err := service.Insert(ctx, g, "loc-1", again); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := service.LocationsReportedAt(g, 1, 9)
	if len(entries[0].Reported) != 1 {
		t.Fatalf("expected 1 timestamp after duplicate insert, got %d", len(entries[0].Reported))
	}
}

func TestInsertCountsSameSlotAcrossWeeks(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	g, _ := service.Get(ctx, "alice")

	// Monday 09:00 on two different weeks lands in the same bucket twice
	if err := service.Insert(ctx, g, "loc-1", mondayAt(9, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.Insert(ctx, g, "loc-1", mondayAt(9, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := service.LocationsReportedAt(g, 1, 9)
	if len(entries[0].Reported) != 2 {
		t.Fatalf("expected 2 timestamps across weeks, got %d", len(entries[0].Reported))
	}
}

func TestMostFrequentLocationSortsFirst(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	g, _ := service.Get(ctx, "alice")

	for week := 0; week < 3; week++ {
		if err := service.Insert(ctx, g, "loc-a", mondayAt(18, week)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := service.Insert(ctx, g, "loc-b", mondayAt(18, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := service.LocationsReportedAt(g, 1, 18)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].LocationID != "loc-a" {
		t.Fatalf("expected loc-a (3 reports) first, got %s", entries[0].LocationID)
	}
	if entries[1].LocationID != "loc-b" {
		t.Fatalf("expected loc-b (1 report) second, got %s", entries[1].LocationID)
	}
}

func TestEqualCountsOrderByLocationID(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	g, _ := service.Get(ctx, "alice")

	if err := service.Insert(ctx, g, "loc-b", mondayAt(12, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.Insert(ctx, g, "loc-a", mondayAt(12, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := service.LocationsReportedAt(g, 1, 12)
	if entries[0].LocationID != "loc-a" || entries[1].LocationID != "loc-b" {
		t.Fatalf("expected tie to order by id, got [%s %s]",
			entries[0].LocationID, entries[1].LocationID)
	}
}

func TestRecordFetchesInsertsAndPersists(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	reportedAt := time.Date(2025, 6, 1, 22, 15, 0, 0, time.UTC) // Sunday -> ISO 7
	if err := service.Record(ctx, "alice", "loc-1", reportedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, err := service.repo.FindByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g == nil {
		t.Fatal("expected grid to be persisted by Record")
	}

	entries := service.LocationsReportedAt(g, 7, 22)
	if len(entries) != 1 || entries[0].LocationID != "loc-1" {
		t.Fatalf("expected loc-1 in Sunday/22 bucket, got %v", entries)
	}
}

func TestRecordUnknownUserIsNoOp(t *testing.T) {
	service := newTestService()

	if err := service.Record(context.Background(), "nobody", "loc-1", mondayAt(9, 0)); err != nil {
		t.Fatalf("expected silent no-op, got error: %v", err)
	}
}

func TestGridSurvivesSerializationRoundTrip(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	g, _ := service.Get(ctx, "alice")
	if err := service.Insert(ctx, g, "loc-1", mondayAt(9, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the in-memory repo round-trips through JSON like the jsonb column
	reloaded, err := service.repo.FindByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := service.LocationsReportedAt(reloaded, 1, 9)
	if len(entries) != 1 || entries[0].LocationID != "loc-1" {
		t.Fatalf("expected loc-1 after reload, got %v", entries)
	}
	if !entries[0].Reported[0].Equal(mondayAt(9, 0)) {
		t.Fatalf("expected timestamp to survive round trip, got %v", entries[0].Reported[0])
	}
}
