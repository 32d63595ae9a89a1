package location

import (
	"context"
	"testing"
	"time"

	"github.com/kenmaca/frrand-api/internal/users"
)

func newTestService(aggregator Aggregator) (*Service, *users.InMemoryDirectory) {
	directory := users.NewInMemoryDirectory()
	directory.Add(&users.User{Username: "alice", Password: "x"})

	service := NewService(NewInMemoryRepository(), directory, aggregator)
	return service, directory
}

func atTime(service *Service, t time.Time) {
	service.now = func() time.Time { return t }
}

func TestReportWithinAccuracyIncrementsExisting(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	t0 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(30 * time.Minute)

	atTime(service, t0)
	first, err := service.Report(ctx, "alice", -79.38, 43.65)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// roughly 1.4m away, well within the 10m accuracy
	atTime(service, t1)
	second, err := service.Report(ctx, "alice", -79.37999, 43.64999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected repeat report to reuse location %s, got %s", first.ID, second.ID)
	}

	if len(second.Reported) != 2 {
		t.Fatalf("expected 2 report timestamps, got %d", len(second.Reported))
	}

	history, err := service.History(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected a single location record, got %d", len(history))
	}
}

func TestReportBeyondAccuracyCreatesDistinct(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	atTime(service, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	first, err := service.Report(ctx, "alice", -79.38, 43.65)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// about 111m north
	second, err := service.Report(ctx, "alice", -79.38, 43.651)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("expected distinct locations for points beyond the accuracy radius")
	}

	history, _ := service.History(ctx, "alice")
	if len(history) != 2 {
		t.Fatalf("expected 2 location records, got %d", len(history))
	}
}

func TestReportUnknownUserIsNoOp(t *testing.T) {
	service, _ := newTestService(nil)

	loc, err := service.Report(context.Background(), "nobody", -79.38, 43.65)
	if err != nil {
		t.Fatalf("expected silent no-op, got error: %v", err)
	}
	if loc != nil {
		t.Fatalf("expected no record for unknown user, got %+v", loc)
	}
}

type recordingAggregator struct {
	usernames   []string
	locationIDs []string
	reportedAt  []time.Time
}

func (a *recordingAggregator) Record(ctx context.Context, username, locationID string, reportedAt time.Time) error {
	a.usernames = append(a.usernames, username)
	a.locationIDs = append(a.locationIDs, locationID)
	a.reportedAt = append(a.reportedAt, reportedAt)
	return nil
}

func TestReportPropagatesToAggregator(t *testing.T) {
	aggregator := &recordingAggregator{}
	service, _ := newTestService(aggregator)
	ctx := context.Background()

	t0 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	atTime(service, t0)
	loc, err := service.Report(ctx, "alice", -79.38, 43.65)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	atTime(service, t1)
	if _, err := service.Report(ctx, "alice", -79.38, 43.65); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(aggregator.locationIDs) != 2 {
		t.Fatalf("expected 2 aggregator events, got %d", len(aggregator.locationIDs))
	}

	for _, id := range aggregator.locationIDs {
		if id != loc.ID {
			t.Fatalf("expected aggregator to receive %s, got %s", loc.ID, id)
		}
	}

	if !aggregator.reportedAt[1].Equal(t1) {
		t.Fatalf("expected second event at %v, got %v", t1, aggregator.reportedAt[1])
	}
}

func TestFindNearestPicksClosestCandidate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	far := &ReportedLocation{
		ID: "far", Username: "alice",
		Longitude: -79.38008, Latitude: 43.65,
		Reported: []time.Time{base}, CreatedAt: base,
	}
	near := &ReportedLocation{
		ID: "near", Username: "alice",
		Longitude: -79.38001, Latitude: 43.65,
		Reported: []time.Time{base}, CreatedAt: base,
	}

	if err := repo.Upsert(ctx, far); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Upsert(ctx, near); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// both candidates sit inside the radius; the closer one must win
	got, err := repo.FindNearest(ctx, "alice", -79.38, 43.65, PointAccuracy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != "near" {
		t.Fatalf("expected nearest candidate 'near', got %+v", got)
	}
}
