package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/domain"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub plane repository
// ---------------------------------------------------------------------------

type stubPlaneRepo struct {
	records   []*domain.PlaneRecord
	nextID    int
	insertErr error
}

func newStubPlaneRepo() *stubPlaneRepo {
	return &stubPlaneRepo{}
}

func (r *stubPlaneRepo) Insert(_ context.Context, record *domain.PlaneRecord) (string, error) {
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.nextID++
	clone := *record
	clone.ID = fmt.Sprintf("plane-%d", r.nextID)
	r.records = append(r.records, &clone)
	return clone.ID, nil
}

// FindByAirport mirrors the case-insensitive exact match of the Mongo query.
func (r *stubPlaneRepo) FindByAirport(_ context.Context, airport, airline string) ([]*domain.PlaneRecord, error) {
	var matched []*domain.PlaneRecord
	for _, rec := range r.records {
		if !strings.EqualFold(rec.Airport, airport) {
			continue
		}
		if airline != "" && !strings.EqualFold(rec.Airline, airline) {
			continue
		}
		clone := *rec
		matched = append(matched, &clone)
	}
	return matched, nil
}

func (r *stubPlaneRepo) DistinctAirlines(_ context.Context, airport string) ([]string, error) {
	seen := make(map[string]struct{})
	var airlines []string
	for _, rec := range r.records {
		if !strings.EqualFold(rec.Airport, airport) {
			continue
		}
		if _, ok := seen[rec.Airline]; ok {
			continue
		}
		seen[rec.Airline] = struct{}{}
		airlines = append(airlines, rec.Airline)
	}
	return airlines, nil
}

func (r *stubPlaneRepo) DeleteByOwner(_ context.Context, ownerEmail string) (int64, error) {
	var kept []*domain.PlaneRecord
	var deleted int64
	for _, rec := range r.records {
		if rec.OwnerEmail == ownerEmail {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return deleted, nil
}

// stubCounter records enqueued owner emails.
type stubCounter struct {
	enqueued []string
}

func (c *stubCounter) Enqueue(ownerEmail string) {
	c.enqueued = append(c.enqueued, ownerEmail)
}

func newTestPlaneService(planes *stubPlaneRepo, users *stubUserRepo, counter *stubCounter) *PlaneService {
	return NewPlaneService(planes, users, counter, zerolog.Nop())
}

func seedUser(repo *stubUserRepo, username, email string) {
	repo.users[email] = &domain.User{
		ID:        email,
		Email:     email,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}

func sightingInput(airport, airline string) ports.PlaneInput {
	return ports.PlaneInput{
		Airport:      airport,
		Airline:      airline,
		PlaneModel:   "A320",
		Registration: "9A-CTA",
	}
}

// ---------------------------------------------------------------------------
// AddPlane
// ---------------------------------------------------------------------------

func TestPlaneService_Add_Success(t *testing.T) {
	planes := newStubPlaneRepo()
	users := newStubUserRepo()
	counter := &stubCounter{}
	svc := newTestPlaneService(planes, users, counter)
	seedUser(users, "A", "a@x.com")

	id, err := svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "Croatia Airlines"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a record id")
	}
	if len(counter.enqueued) != 1 || counter.enqueued[0] != "a@x.com" {
		t.Fatalf("expected one counter update for owner, got %v", counter.enqueued)
	}

	stored := planes.records[0]
	if stored.OwnerEmail != "a@x.com" {
		t.Fatalf("owner not stored: %q", stored.OwnerEmail)
	}
	if stored.ArrivalDate.IsZero() || stored.DepartureDate.IsZero() {
		t.Fatal("dates must default to submission time")
	}
}

func TestPlaneService_Add_Validation(t *testing.T) {
	svc := newTestPlaneService(newStubPlaneRepo(), newStubUserRepo(), &stubCounter{})

	cases := []ports.PlaneInput{
		{Airline: "OU", PlaneModel: "A320", Registration: "9A-CTA"},
		{Airport: "LDZA", PlaneModel: "A320", Registration: "9A-CTA"},
		{Airport: "LDZA", Airline: "OU", Registration: "9A-CTA"},
		{Airport: "LDZA", Airline: "OU", PlaneModel: "A320"},
	}
	for i, in := range cases {
		if _, err := svc.AddPlane(context.Background(), "a@x.com", in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestPlaneService_Add_KeepsProvidedDates(t *testing.T) {
	planes := newStubPlaneRepo()
	svc := newTestPlaneService(planes, newStubUserRepo(), &stubCounter{})

	arrival := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	departure := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in := sightingInput("LDZA", "OU")
	in.ArrivalDate = arrival
	in.DepartureDate = departure

	if _, err := svc.AddPlane(context.Background(), "a@x.com", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := planes.records[0]
	if !stored.ArrivalDate.Equal(arrival) || !stored.DepartureDate.Equal(departure) {
		t.Fatalf("caller-supplied dates overwritten: %v / %v", stored.ArrivalDate, stored.DepartureDate)
	}
}

func TestPlaneService_Add_RepoError_NoCounterUpdate(t *testing.T) {
	planes := newStubPlaneRepo()
	planes.insertErr = errors.New("db unavailable")
	counter := &stubCounter{}
	svc := newTestPlaneService(planes, newStubUserRepo(), counter)

	if _, err := svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "OU")); err == nil {
		t.Fatal("expected error when repo fails")
	}
	if len(counter.enqueued) != 0 {
		t.Fatalf("counter must not be updated on failed insert, got %v", counter.enqueued)
	}
}

// ---------------------------------------------------------------------------
// ListPlanes
// ---------------------------------------------------------------------------

func TestPlaneService_List_EnrichesUsername(t *testing.T) {
	planes := newStubPlaneRepo()
	users := newStubUserRepo()
	svc := newTestPlaneService(planes, users, &stubCounter{})
	seedUser(users, "A", "a@x.com")
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "Croatia Airlines"))

	views, err := svc.ListPlanes(context.Background(), "LDZA", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 record, got %d", len(views))
	}
	if views[0].Username != "A" {
		t.Fatalf("expected username A, got %q", views[0].Username)
	}
	if views[0].Registration != "9A-CTA" {
		t.Fatalf("unexpected registration: %q", views[0].Registration)
	}
}

func TestPlaneService_List_CaseInsensitiveAirport(t *testing.T) {
	planes := newStubPlaneRepo()
	users := newStubUserRepo()
	svc := newTestPlaneService(planes, users, &stubCounter{})
	seedUser(users, "A", "a@x.com")
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("ZAGREB", "OU"))

	upper, err := svc.ListPlanes(context.Background(), "ZAGREB", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lower, err := svc.ListPlanes(context.Background(), "zagreb", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upper) != 1 || len(lower) != 1 {
		t.Fatalf("case-insensitive match broken: %d vs %d", len(upper), len(lower))
	}
	if upper[0].ID != lower[0].ID {
		t.Fatal("expected the same record for both casings")
	}
}

func TestPlaneService_List_MissingOwnerIsUnknown(t *testing.T) {
	planes := newStubPlaneRepo()
	users := newStubUserRepo()
	svc := newTestPlaneService(planes, users, &stubCounter{})
	seedUser(users, "A", "a@x.com")
	seedUser(users, "B", "b@x.com")
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "OU"))
	_, _ = svc.AddPlane(context.Background(), "b@x.com", sightingInput("LDZA", "OU"))

	// Simulate an orphaned record: the owner account disappears.
	delete(users.users, "b@x.com")

	views, err := svc.ListPlanes(context.Background(), "LDZA", "")
	if err != nil {
		t.Fatalf("a single missing owner must not abort the batch: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 records, got %d", len(views))
	}

	byOwner := map[string]bool{}
	for _, v := range views {
		byOwner[v.Username] = true
	}
	if !byOwner["A"] || !byOwner[domain.UnknownOwner] {
		t.Fatalf("expected usernames A and %q, got %v", domain.UnknownOwner, byOwner)
	}
}

func TestPlaneService_List_AirlineFilter(t *testing.T) {
	planes := newStubPlaneRepo()
	users := newStubUserRepo()
	svc := newTestPlaneService(planes, users, &stubCounter{})
	seedUser(users, "A", "a@x.com")
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "Croatia Airlines"))
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "Lufthansa"))

	views, err := svc.ListPlanes(context.Background(), "ldza", "croatia airlines")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 record, got %d", len(views))
	}
	if views[0].Airline != "Croatia Airlines" {
		t.Fatalf("unexpected airline: %q", views[0].Airline)
	}
}

func TestPlaneService_List_NoMatchesIsEmptyNotError(t *testing.T) {
	svc := newTestPlaneService(newStubPlaneRepo(), newStubUserRepo(), &stubCounter{})

	views, err := svc.ListPlanes(context.Background(), "LDSP", "")
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no records, got %d", len(views))
	}
}

// ---------------------------------------------------------------------------
// ListAirlines
// ---------------------------------------------------------------------------

func TestPlaneService_Airlines_Distinct(t *testing.T) {
	planes := newStubPlaneRepo()
	users := newStubUserRepo()
	svc := newTestPlaneService(planes, users, &stubCounter{})
	seedUser(users, "A", "a@x.com")
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "Croatia Airlines"))
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "Croatia Airlines"))
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "Lufthansa"))
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDSP", "Ryanair"))

	airlines, err := svc.ListAirlines(context.Background(), "ldza")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(airlines) != 2 {
		t.Fatalf("expected 2 distinct airlines, got %v", airlines)
	}
}

func TestPlaneService_Airlines_EmptyIsNotNil(t *testing.T) {
	svc := newTestPlaneService(newStubPlaneRepo(), newStubUserRepo(), &stubCounter{})

	airlines, err := svc.ListAirlines(context.Background(), "LDZA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if airlines == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

// ---------------------------------------------------------------------------
// Profile / SetProfileImage
// ---------------------------------------------------------------------------

func TestPlaneService_Profile(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestPlaneService(newStubPlaneRepo(), users, &stubCounter{})
	seedUser(users, "A", "a@x.com")
	users.users["a@x.com"].NumberOfPlanes = 3
	users.users["a@x.com"].ProfileImagePath = "/uploads/a.jpg"

	profile, err := svc.Profile(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Username != "A" || profile.NumberOfPlanes != 3 || profile.ProfileImagePath != "/uploads/a.jpg" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestPlaneService_Profile_NotFound(t *testing.T) {
	svc := newTestPlaneService(newStubPlaneRepo(), newStubUserRepo(), &stubCounter{})

	if _, err := svc.Profile(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPlaneService_SetProfileImage(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestPlaneService(newStubPlaneRepo(), users, &stubCounter{})
	seedUser(users, "A", "a@x.com")

	if err := svc.SetProfileImage(context.Background(), "a@x.com", "/uploads/pic.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.users["a@x.com"].ProfileImagePath != "/uploads/pic.png" {
		t.Fatal("profile image path not persisted")
	}
}

// ---------------------------------------------------------------------------
// DeleteAccount
// ---------------------------------------------------------------------------

func TestPlaneService_DeleteAccount_Cascades(t *testing.T) {
	planes := newStubPlaneRepo()
	users := newStubUserRepo()
	svc := newTestPlaneService(planes, users, &stubCounter{})
	seedUser(users, "A", "a@x.com")
	seedUser(users, "B", "b@x.com")
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDZA", "OU"))
	_, _ = svc.AddPlane(context.Background(), "a@x.com", sightingInput("LDSP", "FR"))
	_, _ = svc.AddPlane(context.Background(), "b@x.com", sightingInput("LDZA", "LH"))

	if err := svc.DeleteAccount(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := users.users["a@x.com"]; ok {
		t.Fatal("user not deleted")
	}
	for _, airport := range []string{"LDZA", "LDSP"} {
		views, err := svc.ListPlanes(context.Background(), airport, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, v := range views {
			if v.Username == "A" {
				t.Fatalf("deleted owner's record survived at %s", airport)
			}
		}
	}

	// The other account's records are untouched.
	remaining, _ := svc.ListPlanes(context.Background(), "LDZA", "")
	if len(remaining) != 1 || remaining[0].Username != "B" {
		t.Fatalf("expected only B's record to remain, got %+v", remaining)
	}
}
